package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const fileExtension = ".modsav"

// document is the on-disk envelope for one logical store file.
type document struct {
	Version uint                       `json:"version"`
	Data    map[string]json.RawMessage `json:"data"`
}

// FileStore keeps each logical store file as a single JSON document on
// disk. Documents are cached after first access and written through on
// every Write with an atomic tmp+rename.
type FileStore struct {
	path string

	mu   sync.RWMutex
	docs map[string]*document
}

func NewFileStore(path string) (*FileStore, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("checking store path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("store path %q is not a directory", path)
	}

	return &FileStore{
		path: path,
		docs: map[string]*document{},
	}, nil
}

func (s *FileStore) Exists(key, file string) (bool, error) {
	if err := checkArgs(key, file); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.doc(file)
	if err != nil {
		return false, err
	}

	_, ok := doc.Data[key]
	return ok, nil
}

func (s *FileStore) Read(key, file string, out any) (bool, error) {
	if err := checkArgs(key, file); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.doc(file)
	if err != nil {
		return false, err
	}

	raw, ok := doc.Data[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshalling key %q: %w", key, err)
	}
	return true, nil
}

func (s *FileStore) Write(key string, value any, file string) error {
	if err := checkArgs(key, file); err != nil {
		return err
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshalling key %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.doc(file)
	if err != nil {
		return err
	}

	doc.Data[key] = json.RawMessage(b)

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshalling store file: %w", err)
	}

	return atomicWrite(s.filePath(file), jsonData, 0644)
}

func (s *FileStore) DeleteFile(file string) error {
	if file == "" {
		return fmt.Errorf("%w: file must not be empty", ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, file)

	err := os.Remove(s.filePath(file))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing store file: %w", err)
	}
	return nil
}

// doc returns the cached document for file, loading it from disk on
// first access. Callers must hold the write lock.
func (s *FileStore) doc(file string) (*document, error) {
	if doc, ok := s.docs[file]; ok {
		return doc, nil
	}

	doc := &document{Version: 1, Data: map[string]json.RawMessage{}}

	jsonData, err := os.ReadFile(s.filePath(file))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading store file: %w", err)
		}
	} else if err := json.Unmarshal(jsonData, doc); err != nil {
		return nil, fmt.Errorf("unmarshalling store file %q: %w", file, err)
	}

	if doc.Data == nil {
		doc.Data = map[string]json.RawMessage{}
	}

	s.docs[file] = doc
	return doc, nil
}

func (s *FileStore) filePath(file string) string {
	return filepath.Join(s.path, file+fileExtension)
}

// atomicWrite writes data to a temp file then renames it to the target path.
// This prevents partial or empty files if the process is interrupted.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
