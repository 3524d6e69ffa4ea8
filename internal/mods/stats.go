package mods

import (
	"context"
	"fmt"

	"github.com/pixil98/go-modsave/internal/keys"
	"github.com/pixil98/go-modsave/internal/registry"
)

// StatsMod is the built-in mod: it keeps a couple of counters about the
// sidecar itself and doubles as a live example of the registration API.
type StatsMod struct {
	// TotalLaunches counts process launches, persisted globally.
	TotalLaunches int

	// SessionDeaths counts game-overs within one save, reset with it.
	SessionDeaths int
}

func (m *StatsMod) Key() string { return "modsave-core" }

func (m *StatsMod) Init(ctx context.Context, reg *registry.Registrar) error {
	launches, err := keys.BindField("StatsMod", "TotalLaunches", &m.TotalLaunches)
	if err != nil {
		return fmt.Errorf("binding TotalLaunches: %w", err)
	}

	// Loaded immediately on register so the increment below lands on
	// top of the persisted count.
	_, err = reg.Register(launches, registry.Config{
		Save:   registry.SaveOnSave | registry.SaveOnAutoSave,
		Load:   registry.LoadOnRegister,
		Target: registry.TargetGlobal,
	})
	if err != nil {
		return err
	}
	m.TotalLaunches++

	deaths, err := keys.BindField("StatsMod", "SessionDeaths", &m.SessionDeaths)
	if err != nil {
		return fmt.Errorf("binding SessionDeaths: %w", err)
	}

	_, err = reg.Register(deaths, registry.Config{
		Save:   registry.SaveOnSave | registry.SaveOnAutoSave,
		Load:   registry.LoadOnLoad,
		Reset:  registry.ResetOnGameOver,
		Target: registry.TargetCurrentSave,
	})
	return err
}
