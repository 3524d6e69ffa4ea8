package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestNewFileStore_NonExistentDirectory(t *testing.T) {
	_, err := NewFileStore("/nonexistent/path/that/does/not/exist")
	if err == nil {
		t.Error("expected error for non-existent directory")
	}
}

func TestFileStore_WriteReadExists(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := s.Exists("mod-a.State.Counter", "save-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "exists before write", found, false)

	err = s.Write("mod-a.State.Counter", 7, "save-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err = s.Exists("mod-a.State.Counter", "save-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "exists after write", found, true)

	var v int
	found, err = s.Read("mod-a.State.Counter", "save-1", &v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found", found, true)
	testutil.AssertEqual(t, "value", v, 7)
}

func TestFileStore_FilesAreIsolated(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Write("k", 1, "save-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := s.Exists("k", "general")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "isolated", found, false)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	s1, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s1.Write("k", "hello", "general"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Fresh store over the same directory sees the write
	s2, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var v string
	found, err := s2.Read("k", "general", &v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found", found, true)
	testutil.AssertEqual(t, "value", v, "hello")
}

func TestFileStore_CompositeValues(t *testing.T) {
	type loadout struct {
		Name  string   `json:"name"`
		Perks []string `json:"perks"`
	}

	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := loadout{Name: "scout", Perks: []string{"darkvision", "haste"}}
	if err := s.Write("k", in, "save-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out loadout
	found, err := s.Read("k", "save-1", &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found", found, true)
	testutil.AssertEqual(t, "name", out.Name, "scout")
	testutil.AssertEqual(t, "perk count", len(out.Perks), 2)
}

func TestFileStore_DeleteFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Write("k", 1, "save-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.DeleteFile("save-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := s.Exists("k", "save-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "exists after delete", found, false)

	if _, err := os.Stat(filepath.Join(dir, "save-1"+fileExtension)); !os.IsNotExist(err) {
		t.Error("expected store file to be removed from disk")
	}

	// Deleting a file that does not exist is fine
	if err := s.DeleteFile("save-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFileStore_InvalidArguments(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Write("", 1, "save-1"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if err := s.Write("k", 1, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := s.Read("", "save-1", new(int)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := s.Exists("k", ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if err := s.DeleteFile(""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestFileStore_CorruptDocument(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "save-1"+fileExtension), []byte(`{bad json`), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = s.Exists("k", "save-1")
	testutil.AssertErrorContains(t, err, "unmarshalling store file")
}
