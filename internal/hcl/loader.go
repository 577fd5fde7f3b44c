package hcl

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/circuitgo/internal/circuit"
	"github.com/vk/circuitgo/internal/ctxlog"
	"github.com/vk/circuitgo/internal/schema"
)

// Loader parses circuit description files.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a loader with a fresh parser.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads the circuit description at path, which may be a single .hcl
// file or a directory of them, and returns the merged format-agnostic model.
func (l *Loader) Load(ctx context.Context, path string) (*circuit.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl circuit files found at %q", path)
	}
	logger.Debug("Circuit files discovered.", "count", len(files), "path", path)

	model := &circuit.Model{}
	for _, file := range files {
		cfg, err := l.parseFile(file)
		if err != nil {
			return nil, err
		}
		if err := translate(cfg, model); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	}

	logger.Debug("Circuit model loaded.",
		"inputs", len(model.Inputs), "consts", len(model.Consts),
		"gates", len(model.Gates), "hints", len(model.Hints),
		"asserts", len(model.Asserts))
	return model, nil
}

// parseFile parses and decodes one circuit file.
func (l *Loader) parseFile(path string) (*schema.CircuitConfig, error) {
	hclFile, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}

	var cfg schema.CircuitConfig
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", path, diags)
	}
	return &cfg, nil
}

// findFiles resolves path into a sorted list of .hcl files.
func findFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("circuit path %q: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".hcl") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking circuit directory %q: %w", path, err)
	}
	sort.Strings(files)
	return files, nil
}
