// Package lifecycle reacts to the host game's save/load lifecycle,
// fanning each event out over the registry. Failures on one entry are
// logged and never stop the rest of the batch.
package lifecycle

import (
	"context"
	"log/slog"

	"github.com/pixil98/go-modsave/internal/persist"
	"github.com/pixil98/go-modsave/internal/registry"
	"github.com/pixil98/go-modsave/internal/session"
)

type Dispatcher struct {
	reg  *registry.Registry
	acc  *persist.Accessor
	sess *session.Session
}

func NewDispatcher(reg *registry.Registry, acc *persist.Accessor, sess *session.Session) *Dispatcher {
	return &Dispatcher{reg: reg, acc: acc, sess: sess}
}

// OnSave handles a completed manual save by the host.
func (d *Dispatcher) OnSave(ctx context.Context, challenge bool, file string) {
	d.trackSave(file)

	n := 0
	for _, e := range d.reg.Entries() {
		if e.Config().Save.Has(registry.SaveOnSave) {
			if d.acc.SaveEntry(e) {
				n++
			}
		}
	}
	slog.InfoContext(ctx, "dispatched save", "file", file, "challenge", challenge, "saved", n)
}

// OnAutoSave handles a host autosave.
func (d *Dispatcher) OnAutoSave(ctx context.Context, challenge bool, file string) {
	d.trackSave(file)

	n := 0
	for _, e := range d.reg.Entries() {
		if e.Config().Save.Has(registry.SaveOnAutoSave) {
			if d.acc.SaveEntry(e) {
				n++
			}
		}
	}
	slog.InfoContext(ctx, "dispatched autosave", "file", file, "challenge", challenge, "saved", n)
}

// OnLoad handles the host loading a save file.
func (d *Dispatcher) OnLoad(ctx context.Context, challenge bool, file string) {
	d.trackSave(file)

	n := 0
	for _, e := range d.reg.Entries() {
		if e.Config().Load.Has(registry.LoadOnLoad) {
			if d.acc.LoadEntry(e) {
				n++
			}
		}
	}
	slog.InfoContext(ctx, "dispatched load", "file", file, "challenge", challenge, "loaded", n)
}

// OnDeleteSave handles the host deleting a save slot by removing the
// paired store file.
func (d *Dispatcher) OnDeleteSave(ctx context.Context, slot int) {
	if d.acc.DeleteSaveSlot(slot) {
		slog.InfoContext(ctx, "deleted save slot store", "slot", slot)
	}
}

// OnGameOver restores every reset-on-game-over entry to its
// registration-time value.
func (d *Dispatcher) OnGameOver(ctx context.Context) {
	n := 0
	for _, e := range d.reg.Entries() {
		if e.Config().Reset.Has(registry.ResetOnGameOver) {
			if e.RestoreOriginal() {
				n++
			}
		}
	}
	slog.InfoContext(ctx, "dispatched game-over reset", "reset", n)
}

// FlushManualSaves saves exactly the entries whose save trigger is the
// manual sentinel. It is the only path that touches them; the automatic
// handlers never do.
func (d *Dispatcher) FlushManualSaves(ctx context.Context) int {
	n := 0
	for _, e := range d.reg.Entries() {
		if e.Config().Save.Manual() {
			if d.acc.SaveEntry(e) {
				n++
			}
		}
	}
	slog.InfoContext(ctx, "flushed manual saves", "saved", n)
	return n
}

// FlushManualLoads is the manual counterpart for load triggers.
func (d *Dispatcher) FlushManualLoads(ctx context.Context) int {
	n := 0
	for _, e := range d.reg.Entries() {
		if e.Config().Load.Manual() {
			if d.acc.LoadEntry(e) {
				n++
			}
		}
	}
	slog.InfoContext(ctx, "flushed manual loads", "loaded", n)
	return n
}

// trackSave records the active save file named by an event so later
// current-save access resolves against it.
func (d *Dispatcher) trackSave(file string) {
	if file != "" {
		d.sess.SetCurrentSave(file)
	}
}
