package textmetrics

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

const (
	compressedResource = "resources/default-widths.json.gz"
	rawResource        = "resources/default-widths.json"
)

//go:embed resources
var resources embed.FS

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the table shipped with the module.
// It is loaded on first use and shared by every caller afterwards.
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = loadDefault(resources)
	})
	return defaultTable, defaultErr
}

func loadDefault(fsys fs.FS) (*Table, error) {
	if file, err := fsys.Open(compressedResource); err == nil {
		defer file.Close()
		return LoadCompressed(file)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("opening %s: %w", compressedResource, err)
	}

	if file, err := fsys.Open(rawResource); err == nil {
		defer file.Close()
		return Load(file)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("opening %s: %w", rawResource, err)
	}
	return nil, fmt.Errorf("%w: could not load default-widths.json", ErrResourceMissing)
}
