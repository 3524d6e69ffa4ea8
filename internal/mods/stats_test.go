package mods

import (
	"context"
	"testing"

	"github.com/pixil98/go-modsave/internal/persist"
	"github.com/pixil98/go-modsave/internal/registry"
	"github.com/pixil98/go-modsave/internal/session"
	"github.com/pixil98/go-modsave/internal/store"
	"github.com/pixil98/go-testutil"
)

func TestStatsMod_LaunchCountAccumulates(t *testing.T) {
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}

	sess := session.New(true)
	acc := persist.NewAccessor(st, sess)

	// First launch: nothing persisted yet, counter becomes 1
	reg := registry.New()
	reg.SetLoader(acc)
	mod := &StatsMod{}
	if err := NewModManager(reg).Register(context.Background(), mod); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "first launch", mod.TotalLaunches, 1)

	// Persist as an on-save trigger would
	for _, e := range reg.Entries() {
		if e.Config().Save.Has(registry.SaveOnSave) && e.Config().Target == registry.TargetGlobal {
			testutil.AssertEqual(t, "saved", acc.SaveEntry(e), true)
		}
	}

	// Second launch over the same store: on-register load picks up the
	// previous count before the increment
	reg2 := registry.New()
	reg2.SetLoader(acc)
	mod2 := &StatsMod{}
	if err := NewModManager(reg2).Register(context.Background(), mod2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "second launch", mod2.TotalLaunches, 2)
}
