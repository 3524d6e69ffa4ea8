package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-modsave/internal/store"
)

const (
	backendFile   = "file"
	backendSqlite = "sqlite"
)

type StorageConfig struct {
	// Backend selects the object store implementation: "file" keeps one
	// JSON document per store file under Path (a directory), "sqlite"
	// keeps everything in a single database at Path.
	Backend string `json:"backend"`
	Path    string `json:"path"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()

	if c.Path == "" {
		el.Add(fmt.Errorf("path is required"))
	}

	switch c.Backend {
	case backendFile:
		if c.Path != "" {
			if _, err := os.Stat(c.Path); err != nil {
				el.Add(fmt.Errorf("invalid path %q: %w", c.Path, err))
			}
		}
	case backendSqlite:
	case "":
		el.Add(fmt.Errorf("backend is required"))
	default:
		el.Add(fmt.Errorf("unknown backend %q", c.Backend))
	}

	return el.Err()
}

func (c *StorageConfig) BuildObjectStore() (store.ObjectStore, error) {
	switch c.Backend {
	case backendFile:
		return store.NewFileStore(c.Path)
	case backendSqlite:
		return store.OpenSqliteStore(c.Path)
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}
