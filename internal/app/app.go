package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/ctxlog"
	"github.com/vk/circuitgo/internal/registry"
)

// Loader abstracts circuit-file loading so the app does not depend on the
// concrete HCL implementation.
type Loader interface {
	Load(ctx context.Context, path string) (*circuit.Model, error)
}

// App encapsulates the application's dependencies and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	// model is the loaded circuit description; nil means the built-in
	// example circuit is run instead.
	model   *circuit.Model
	workers int
}

// NewApp constructs the application: configures its isolated logger, loads
// the circuit description through loader when a path was given, and prepares
// the hint registry. The loader may be nil when no circuit path is
// configured. A failure to load the circuit is a fatal startup error and
// panics; the CLI entrypoint recovers it into a clean exit.
func NewApp(outW io.Writer, cfg *Config, loader Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var model *circuit.Model
	if cfg.CircuitPath != "" {
		if loader == nil {
			panic(fmt.Errorf("no circuit loader configured for path %q", cfg.CircuitPath))
		}
		m, err := loader.Load(ctx, cfg.CircuitPath)
		if err != nil {
			panic(fmt.Errorf("failed to load circuit: %w", err))
		}
		model = m
		logger.Debug("Circuit description loaded.", "path", cfg.CircuitPath)
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: registry.New(),
		model:    model,
		workers:  cfg.WorkerCount,
	}
}

// Registry returns the application's hint-function registry, so embedders
// can add functions before Run.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
