package tables

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Loader produces one of the input tables
type Loader interface {
	Name() string
	Load() (*Table, error)
}

// FileLoader reads a CSV file from disk
type FileLoader struct {
	Path string
}

func (fl FileLoader) Name() string {
	return filepath.Base(fl.Path)
}

func (fl FileLoader) Load() (*Table, error) {
	f, err := os.Open(fl.Path)
	if err != nil {
		return nil, errors.Wrap(err, "problem opening input table")
	}
	defer f.Close()
	return ReadCSV(f, fl.Name())
}
