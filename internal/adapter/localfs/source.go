package localfs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const csvExtension = ".csv"

// Source reads raw exports from a single directory.
// It implements pipeline.Source.
type Source struct {
	dir string
}

// NewSource creates a Source rooted at dir.
func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// List returns the names of regular .csv files directly inside the directory,
// sorted lexicographically for deterministic processing order. Subdirectories
// are not descended into.
func (s *Source) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(e.Name()), csvExtension) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Open opens a file by the name returned from List.
func (s *Source) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dir, name))
}
