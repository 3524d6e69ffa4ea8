package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/pixil98/go-modsave/internal/keys"
)

// Loader performs the load side of an on-register trigger. The
// dispatcher's accessor satisfies it; the indirection keeps this package
// free of store concerns.
type Loader interface {
	LoadEntry(e *Entry) bool
}

// Registry maps registered keys to their persistence metadata. It is
// safe for concurrent registration and dispatch.
type Registry struct {
	mu      sync.RWMutex
	entries map[Handle]*Entry
	byID    map[keys.ID]Handle
	next    Handle

	loader Loader
}

func New() *Registry {
	return &Registry{
		entries: map[Handle]*Entry{},
		byID:    map[keys.ID]Handle{},
		next:    1,
	}
}

// SetLoader binds the loader used for on-register loads. It is wired
// once at startup, before any mod registers.
func (r *Registry) SetLoader(l Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loader = l
}

// Register adds a key with its configuration and returns its handle.
// Registering an identity already present is a logged no-op that leaves
// the existing entry, including its captured original value, untouched
// and returns the existing handle.
func (r *Registry) Register(owner string, key keys.Key, cfg Config) (Handle, error) {
	if owner == "" {
		return 0, fmt.Errorf("registering key: owner is required")
	}
	if key == nil {
		return 0, fmt.Errorf("registering key: key is nil")
	}

	r.mu.Lock()

	if h, ok := r.byID[key.ID()]; ok {
		r.mu.Unlock()
		slog.Warn("key already registered, ignoring",
			"owner", owner, "type", key.DeclaringType(), "member", key.Member())
		return h, nil
	}

	e := &Entry{
		handle:  r.next,
		owner:   owner,
		key:     key,
		cfg:     cfg,
		baseKey: cfg.BaseKey,
	}
	if e.baseKey == "" {
		e.baseKey = owner + "." + key.DeclaringType()
	}

	e.original, e.originalOK = captureOriginal(key)

	r.next++
	r.entries[e.handle] = e
	r.byID[key.ID()] = e.handle
	loader := r.loader
	r.mu.Unlock()

	slog.Debug("registered key",
		"owner", owner, "type", key.DeclaringType(), "member", key.Member(), "target", cfg.Target.String())

	// On-register load runs outside the lock so the loader can resolve
	// storage keys through the registry.
	if cfg.Load.Has(LoadOnRegister) && loader != nil {
		loader.LoadEntry(e)
	}

	return e.handle, nil
}

// Deregister removes a single entry by handle.
func (r *Registry) Deregister(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[h]
	if !ok {
		return
	}
	delete(r.entries, h)
	delete(r.byID, e.key.ID())
}

// DeregisterOwner removes every entry registered by owner and returns
// the number removed. Used on mod unload.
func (r *Registry) DeregisterOwner(owner string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for h, e := range r.entries {
		if e.owner == owner {
			delete(r.entries, h)
			delete(r.byID, e.key.ID())
			n++
		}
	}
	return n
}

// DeregisterBinding removes every entry whose key is bound to the given
// instance and returns the number removed.
func (r *Registry) DeregisterBinding(binding any) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for h, e := range r.entries {
		if e.key.ID().Binding == binding {
			delete(r.entries, h)
			delete(r.byID, e.key.ID())
			n++
		}
	}
	return n
}

// StorageKey resolves the storage key string for a registered handle.
func (r *Registry) StorageKey(h Handle) (string, error) {
	r.mu.RLock()
	e, ok := r.entries[h]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("handle %d is not registered", h)
	}
	return e.StorageKey()
}

// Entries returns a snapshot of all entries. Iteration order is
// unspecified; callers must not depend on cross-entry ordering.
func (r *Registry) Entries() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out
}

// For returns an owner-scoped registrar handed to a mod so every
// registration it performs carries the mod's own identity.
func (r *Registry) For(owner string) *Registrar {
	return &Registrar{owner: owner, reg: r}
}

type Registrar struct {
	owner string
	reg   *Registry
}

func (rr *Registrar) Owner() string { return rr.owner }

func (rr *Registrar) Register(key keys.Key, cfg Config) (Handle, error) {
	return rr.reg.Register(rr.owner, key, cfg)
}

func (rr *Registrar) Deregister(h Handle) {
	rr.reg.Deregister(h)
}
