package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegrid/internal/cli"
)

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// An HCL file with a syntax error fails inside app.NewApp().
	invalidHCL := `
		composition "main" {
			width = 10
		// Missing closing brace here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	args := []string{"render", filePath}
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, logs, args)

	// --- Assert ---
	require.Error(t, runErr, "run() should return the loader error")
	require.Contains(t, runErr.Error(), "failed to load document")
	require.Contains(t, runErr.Error(), "failed to parse HCL file")
	require.Empty(t, out.String(), "nothing should be rendered")
}

func TestRun_RendersDocument(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	doc := `
composition "main" {
  width  = 100
  height = 100
  length = 10
}

layer "dot" {
  composition = "main"
  properties  = ["dot_tf"]
}

group "dot_tf" {
  layer      = "dot"
  name       = "Transform"
  properties = ["dot_px"]
}

property "dot_px" {
  layer = "dot"
  name  = "PositionX"
  type  = number
  value = 12
}
`
	filePath := filepath.Join(t.TempDir(), "doc.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(doc), 0600))

	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, logs, []string{"render", "-d", filePath, "-f", "4", "--log-format", "text"})

	// --- Assert ---
	require.NoError(t, err)

	var values map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &values), "stdout must hold only the JSON result")
	require.Equal(t, "main", values["compositionId"])
	require.Equal(t, 4.0, values["frameIndex"])
	require.Contains(t, logs.String(), "Evaluation finished.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"render", "--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}
