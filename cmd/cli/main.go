package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/circuitgo/internal/app"
	"github.com/vk/circuitgo/internal/cli"
	"github.com/vk/circuitgo/internal/hcl"
)

// main is the entrypoint for the circuitgo binary.
func main() {
	// Minimal logger until the configured one takes over inside the app.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run holds the application logic so tests can drive it with an in-memory
// writer and argument list.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, parseErr := cli.Parse(args, outW)
	if parseErr != nil {
		return parseErr
	}
	if shouldExit {
		return nil
	}

	// Circuit loading panics on unreadable or malformed files; recover it
	// into an ordinary error so the user gets a clean message.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	loader := hcl.NewLoader()
	circuitApp := app.NewApp(outW, appConfig, loader)

	return circuitApp.Run(context.Background())
}
