package registry

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestSaveTrigger_Has(t *testing.T) {
	tests := []struct {
		name    string
		trigger SaveTrigger
		bit     SaveTrigger
		exp     bool
	}{
		{"on-save matches on-save", SaveOnSave, SaveOnSave, true},
		{"on-save misses autosave", SaveOnSave, SaveOnAutoSave, false},
		{"both match autosave", SaveOnSave | SaveOnAutoSave, SaveOnAutoSave, true},
		{"manual never matches manual bit", SaveManual, SaveManual, false},
		{"combined never matches manual bit", SaveOnSave, SaveManual, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, "has", tt.trigger.Has(tt.bit), tt.exp)
		})
	}
}

func TestTriggers_ManualSentinel(t *testing.T) {
	testutil.AssertEqual(t, "save manual", SaveManual.Manual(), true)
	testutil.AssertEqual(t, "save non-manual", SaveOnSave.Manual(), false)
	testutil.AssertEqual(t, "load manual", LoadManual.Manual(), true)
	testutil.AssertEqual(t, "load non-manual", (LoadOnLoad | LoadOnRegister).Manual(), false)
	testutil.AssertEqual(t, "reset manual", ResetManual.Manual(), true)
	testutil.AssertEqual(t, "reset non-manual", ResetOnGameOver.Manual(), false)
}

func TestStoreTarget_String(t *testing.T) {
	testutil.AssertEqual(t, "current", TargetCurrentSave.String(), "current-save")
	testutil.AssertEqual(t, "global", TargetGlobal.String(), "global")
}
