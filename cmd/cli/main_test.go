package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_BuiltinExample(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, []string{"-log-level", "error"})

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Constraints Satisfied")
}

func TestRun_CircuitFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// f(a) = (a + 1) / 8 with a = 7, verified by reconstruction.
	circuitHCL := `
		input "a" {
			value = 7
		}
		const "one" {
			value = 1
		}
		const "eight" {
			value = 8
		}
		gate "b" {
			op    = "add"
			left  = "a"
			right = "one"
		}
		hint "c" {
			of = "b"
			fn = "div"
			by = 8
		}
		gate "c_times_8" {
			op    = "mul"
			left  = "c"
			right = "eight"
		}
		assert_equal {
			a = "b"
			b = "c_times_8"
		}
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(circuitHCL), 0600))
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, []string{"-log-level", "error", filePath})

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Constraints Satisfied")
}

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A syntax error in the circuit file causes a panic inside app
	// construction, which run must recover into an error.
	invalidHCL := `
		gate "y" {
			op = "add"
		// Missing closing brace here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0600))
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, []string{filePath})

	// --- Assert ---
	require.Error(t, runErr)
	assert.Contains(t, runErr.Error(), "application startup panicked")
	assert.Contains(t, runErr.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})

	require.NoError(t, err, "help request should exit cleanly")
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
