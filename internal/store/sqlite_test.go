package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

func newTestSqliteStore(t *testing.T) *SqliteStore {
	t.Helper()

	s, err := OpenSqliteStore(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("opening sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestOpenSqliteStore_RequiresPath(t *testing.T) {
	_, err := OpenSqliteStore("")
	testutil.AssertErrorContains(t, err, "path is required")
}

func TestSqliteStore_WriteReadExists(t *testing.T) {
	s := newTestSqliteStore(t)

	found, err := s.Exists("mod-a.State.Counter", "save-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "exists before write", found, false)

	if err := s.Write("mod-a.State.Counter", 7, "save-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var v int
	found, err = s.Read("mod-a.State.Counter", "save-1", &v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found", found, true)
	testutil.AssertEqual(t, "value", v, 7)
}

func TestSqliteStore_Overwrite(t *testing.T) {
	s := newTestSqliteStore(t)

	if err := s.Write("k", 1, "save-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Write("k", 2, "save-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var v int
	found, err := s.Read("k", "save-1", &v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found", found, true)
	testutil.AssertEqual(t, "value", v, 2)
}

func TestSqliteStore_DeleteFile(t *testing.T) {
	s := newTestSqliteStore(t)

	if err := s.Write("k", 1, "save-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Write("k", 2, "general"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.DeleteFile("save-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := s.Exists("k", "save-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "deleted file", found, false)

	found, err = s.Exists("k", "general")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "other file untouched", found, true)
}

func TestSqliteStore_InvalidArguments(t *testing.T) {
	s := newTestSqliteStore(t)

	if err := s.Write("", 1, "save-1"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := s.Read("k", "", new(int)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
