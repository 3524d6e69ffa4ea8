// Package persist resolves registered keys and store targets down to
// reads and writes against the keyed object store. Store failures never
// propagate out of this package: saves report false, loads leave the
// caller's default in place.
package persist

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/pixil98/go-modsave/internal/registry"
	"github.com/pixil98/go-modsave/internal/session"
	"github.com/pixil98/go-modsave/internal/store"
)

// GeneralFile is the fixed logical file backing the global store.
const GeneralFile = "general"

type Accessor struct {
	store   store.ObjectStore
	session *session.Session
}

func NewAccessor(st store.ObjectStore, sess *session.Session) *Accessor {
	return &Accessor{store: st, session: sess}
}

// Save writes value under key in the target store. When autoPrefix is
// set and key does not already carry the owner's prefix, "owner." is
// prepended. Returns false when the target cannot be resolved (no
// active save, non-host) or the store write fails.
func (a *Accessor) Save(value any, key string, target registry.StoreTarget, owner string, autoPrefix bool) bool {
	file, ok := a.resolveFile(target)
	if !ok {
		return false
	}

	k := applyPrefix(key, owner, autoPrefix)
	if err := a.store.Write(k, value, file); err != nil {
		slog.Error("writing key failed", "key", k, "file", file, "error", err)
		return false
	}
	return true
}

// Load reads the value under key in the target store into out, a
// non-nil pointer. When the key is absent, the target cannot be
// resolved, or the read fails, out is left untouched so callers keep
// whatever default they preloaded.
func (a *Accessor) Load(key string, target registry.StoreTarget, out any, owner string, autoPrefix bool) bool {
	file, ok := a.resolveFile(target)
	if !ok {
		return false
	}

	k := applyPrefix(key, owner, autoPrefix)

	found, err := a.store.Exists(k, file)
	if err != nil {
		slog.Error("checking key failed", "key", k, "file", file, "error", err)
		return false
	}
	if !found {
		return false
	}

	if _, err := a.store.Read(k, file, out); err != nil {
		slog.Error("reading key failed", "key", k, "file", file, "error", err)
		return false
	}
	return true
}

// SaveEntry persists a registered entry: storage key from the registry
// metadata, value through the key's getter.
func (a *Accessor) SaveEntry(e *registry.Entry) bool {
	k, err := e.StorageKey()
	if err != nil {
		slog.Warn("cannot resolve storage key", "error", err)
		return false
	}

	v, ok := e.Key().TryGet()
	if !ok {
		slog.Warn("key has no getter, skipping save",
			"type", e.Key().DeclaringType(), "member", e.Key().Member())
		return false
	}

	return a.Save(v, k, e.Config().Target, e.Owner(), false)
}

// LoadEntry restores a registered entry. A key without a setter is a
// silent skip: read-only members are routinely registered for save
// without load-restore.
func (a *Accessor) LoadEntry(e *registry.Entry) bool {
	k, err := e.StorageKey()
	if err != nil {
		slog.Warn("cannot resolve storage key", "error", err)
		return false
	}

	out := reflect.New(e.Key().ValueType())
	if !a.Load(k, e.Config().Target, out.Interface(), e.Owner(), false) {
		return false
	}

	if !e.Key().TrySet(out.Elem().Interface()) {
		slog.Debug("key has no setter, skipping load",
			"type", e.Key().DeclaringType(), "member", e.Key().Member())
		return false
	}
	return true
}

// DeleteSaveSlot removes the store file paired to a host save slot.
func (a *Accessor) DeleteSaveSlot(slot int) bool {
	file, err := session.SlotFile(slot)
	if err != nil {
		slog.Warn("cannot resolve save slot", "slot", slot, "error", err)
		return false
	}

	if err := a.store.DeleteFile(file); err != nil {
		slog.Error("deleting store file failed", "file", file, "error", err)
		return false
	}
	return true
}

// resolveFile maps a store target to a concrete logical file. Global
// always resolves; current-save requires an active save and host
// authority over the session.
func (a *Accessor) resolveFile(target registry.StoreTarget) (string, bool) {
	if target == registry.TargetGlobal {
		return GeneralFile, true
	}

	if !a.session.IsHost() {
		// Expected on non-host participants, not a fault.
		slog.Debug("declining current-save access on non-host")
		return "", false
	}

	file, ok := a.session.CurrentSave()
	if !ok {
		slog.Warn("no active save, declining current-save access")
		return "", false
	}
	return file, true
}

func applyPrefix(key, owner string, autoPrefix bool) string {
	if !autoPrefix || owner == "" || strings.HasPrefix(key, owner+".") {
		return key
	}
	return owner + "." + key
}
