// Package fs provides file-system output for the merged document.
package fs

import (
	"os"
	"path/filepath"

	"github.com/docfold/docfold"
)

// Ensure Writer implements docfold.DocumentWriter at compile time.
var _ docfold.DocumentWriter = (*Writer)(nil)

// Writer writes the merged document atomically: content goes to a
// temporary file in the target directory first and is renamed into
// place, so no reader ever observes a half-written document.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteDocument writes content to path, creating parent directories as
// needed.
func (w *Writer) WriteDocument(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".docfold-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	// CreateTemp files are 0600; the document is a normal artifact.
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
