package gen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteTo writes the serialized document to w.
func (g *Generator) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, g.Serialize())
	if err != nil {
		return int64(n), fmt.Errorf("writing document: %w", err)
	}

	return int64(n), nil
}

// WriteFile writes the serialized document to path, creating parent
// directories as needed.
func (g *Generator) WriteFile(path string) error {
	err := os.MkdirAll(filepath.Dir(path), dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if _, err := g.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	return nil
}
