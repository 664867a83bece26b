// Package export serializes extraction results to JSON.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vk/texo/internal/ctxlog"
	"github.com/vk/texo/internal/extract"
)

// Write encodes the result as indented JSON to w.
func Write(w io.Writer, result *extract.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// WriteTo writes the result to the named file, or to fallback when path is
// empty or "-". Files are created with 0644 and truncated if present.
func WriteTo(ctx context.Context, path string, fallback io.Writer, result *extract.Result) error {
	if path == "" || path == "-" {
		return Write(fallback, result)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := Write(f, result); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to flush output file: %w", err)
	}

	ctxlog.FromContext(ctx).Info("Result written", "path", path)
	return nil
}
