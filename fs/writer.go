// Package fs writes scraped documents to the local filesystem.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/mnrules"
)

// Ensure Writer implements mnrules.DocumentWriter at compile time.
var _ mnrules.DocumentWriter = (*Writer)(nil)

// Writer writes a rendered document to a single UTF-8 markdown file.
// The file is written to a temporary sibling and renamed into place, so a
// failed write never leaves a truncated document behind.
type Writer struct {
	path string
}

// NewWriter creates a new Writer for the given output path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// WriteDocument renders doc and replaces the output file with it. A done
// context does not stop the write.
func (w *Writer) WriteDocument(_ context.Context, doc *mnrules.Document) error {
	if doc == nil {
		return mnrules.Errorf(mnrules.EINVALID, "document required")
	}
	if w.path == "" {
		return mnrules.Errorf(mnrules.EINVALID, "output path required")
	}
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(doc.Markdown()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, w.path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return nil
}
