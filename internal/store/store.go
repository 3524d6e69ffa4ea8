package store

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks programmer misuse of the low-level store
// primitives (empty key or file name). Every other failure mode is soft:
// callers above this layer log and fall back to defaults.
var ErrInvalidArgument = errors.New("invalid argument")

// ObjectStore is a keyed object store partitioned into named logical
// files. Values are serialized as JSON. Implementations must be safe for
// concurrent use.
type ObjectStore interface {
	// Exists reports whether key is present in file.
	Exists(key, file string) (bool, error)

	// Read decodes the value at key in file into out, which must be a
	// non-nil pointer. The first return is false if the key is absent.
	Read(key, file string, out any) (bool, error)

	// Write stores value at key in file, creating the file as needed.
	Write(key string, value any, file string) error

	// DeleteFile removes an entire logical file. Deleting a file that
	// does not exist is not an error.
	DeleteFile(file string) error
}

func checkArgs(key, file string) error {
	if key == "" {
		return fmt.Errorf("%w: key must not be empty", ErrInvalidArgument)
	}
	if file == "" {
		return fmt.Errorf("%w: file must not be empty", ErrInvalidArgument)
	}
	return nil
}
