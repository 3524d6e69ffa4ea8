package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-modsave/internal/driver"
	"github.com/pixil98/go-modsave/internal/lifecycle"
	"github.com/pixil98/go-modsave/internal/messaging"
	"github.com/pixil98/go-modsave/internal/mods"
	"github.com/pixil98/go-modsave/internal/persist"
	"github.com/pixil98/go-modsave/internal/registry"
	"github.com/pixil98/go-modsave/internal/session"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Build the object store and the session context
	st, err := cfg.Storage.BuildObjectStore()
	if err != nil {
		return nil, fmt.Errorf("creating object store: %w", err)
	}
	sess := session.New(cfg.Session.Host)

	// Wire the registry to its accessor so on-register loads resolve
	reg := registry.New()
	acc := persist.NewAccessor(st, sess)
	reg.SetLoader(acc)

	dispatcher := lifecycle.NewDispatcher(reg, acc, sess)

	// Register built-in mods; third-party mods join the same pass
	manager := mods.NewModManager(reg)
	manager.RegisterAll(context.Background(), []mods.Mod{
		&mods.StatsMod{},
	})

	bus, err := cfg.Nats.buildHostBus()
	if err != nil {
		return nil, fmt.Errorf("creating host bus: %w", err)
	}

	workers := service.WorkerList{
		"bus":         bus,
		"host-events": messaging.NewHostEventWorker(bus, dispatcher),
	}

	if cfg.Autosave.Enabled {
		var opts []driver.AutosaveDriverOpt
		d, err := cfg.Autosave.interval()
		if err != nil {
			return nil, fmt.Errorf("parsing autosave interval: %w", err)
		}
		if d > 0 {
			opts = append(opts, driver.WithInterval(d))
		}
		workers["autosave"] = driver.NewAutosaveDriver(sess, bus, opts...)
	}

	return workers, nil
}
