package mods

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-modsave/internal/registry"
)

// Mod is a third-party module that declares persistent data points.
// Init is the explicit registration pass: the mod binds its keys
// through the owner-scoped registrar it is handed.
type Mod interface {
	Key() string
	Init(ctx context.Context, reg *registry.Registrar) error
}

type ModManager struct {
	reg  *registry.Registry
	mods []Mod
}

func NewModManager(reg *registry.Registry) *ModManager {
	return &ModManager{reg: reg, mods: []Mod{}}
}

// Register runs a mod's registration pass under its own owner id.
func (m *ModManager) Register(ctx context.Context, mod Mod) error {
	if mod == nil {
		return fmt.Errorf("mod is nil")
	}
	if mod.Key() == "" {
		return fmt.Errorf("mod key is required")
	}

	if err := mod.Init(ctx, m.reg.For(mod.Key())); err != nil {
		return fmt.Errorf("initializing mod %s: %w", mod.Key(), err)
	}

	m.mods = append(m.mods, mod)
	slog.InfoContext(ctx, "registered mod", "key", mod.Key())

	return nil
}

// RegisterAll registers a set of mods. A mod that fails to initialize
// is logged and skipped so the remaining mods still load.
func (m *ModManager) RegisterAll(ctx context.Context, mods []Mod) {
	for _, mod := range mods {
		if err := m.Register(ctx, mod); err != nil {
			slog.WarnContext(ctx, "skipping mod", "error", err)
		}
	}
}

// Deregister removes a mod and every key it registered.
func (m *ModManager) Deregister(ctx context.Context, mod Mod) {
	if mod == nil {
		return
	}

	n := m.reg.DeregisterOwner(mod.Key())
	for i, existing := range m.mods {
		if existing == mod {
			m.mods = append(m.mods[:i], m.mods[i+1:]...)
			break
		}
	}

	slog.InfoContext(ctx, "deregistered mod", "key", mod.Key(), "keys_removed", n)
}
