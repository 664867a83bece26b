package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// An HCL file with a syntax error is guaranteed to make snapshot loading
	// panic inside app.NewApp().
	invalidHCL := `
		concept "x:Assets" {
			abstract =
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "broken.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	args := []string{filePath}
	out := &bytes.Buffer{}

	runErr := run(out, args)

	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")

	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"), "The error message should indicate that a panic was recovered.")
	require.True(t, strings.Contains(errStr, "failed to parse"), "The error message should contain the underlying reason for the panic.")
}

func TestRun_Extracts(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	snapshotFile := filepath.Join(tempDir, "taxonomy.hcl")
	require.NoError(t, os.WriteFile(snapshotFile, []byte(`
concept "x:Assets" {
  abstract = true
}
concept "x:Cash" {}
relationship {
  arcrole = "http://www.xbrl.org/2003/arcrole/parent-child"
  from    = "x:Assets"
  to      = "x:Cash"
}
`), 0600))
	outFile := filepath.Join(tempDir, "result.json")

	out := &bytes.Buffer{}
	err := run(out, []string{"--out", outFile, "--log-level", "error", snapshotFile})
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	require.Contains(t, string(data), `"presentation_relationships"`)
	require.Contains(t, string(data), `"x:Cash"`)
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
