// Package file provides a filesystem-backed raw ledger source.
package file

import (
	"context"
	"fmt"
	"os"
)

// Source reads the raw ledger document from a file on disk.
type Source struct {
	path string
}

// NewSource creates a new Source for the given path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Read returns the file contents.
func (s *Source) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger file %s: %w", s.path, err)
	}
	return data, nil
}
