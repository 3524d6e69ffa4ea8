package messaging

import (
	"context"
	"log/slog"
	"time"

	"github.com/pixil98/go-modsave/internal/lifecycle"
)

// HostEventWorker bridges bus subjects to the lifecycle dispatcher. It
// runs as a service worker alongside the bus worker and retries its
// subscriptions until the bus has connected.
type HostEventWorker struct {
	bus        *HostBus
	dispatcher *lifecycle.Dispatcher
}

func NewHostEventWorker(bus *HostBus, d *lifecycle.Dispatcher) *HostEventWorker {
	return &HostEventWorker{bus: bus, dispatcher: d}
}

func (w *HostEventWorker) Start(ctx context.Context) error {
	var unsubs []func()
	for {
		us, err := w.subscribeAll(ctx)
		if err == nil {
			unsubs = us
			break
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Second):
		}
	}

	slog.InfoContext(ctx, "listening for host lifecycle events")

	<-ctx.Done()
	for _, unsub := range unsubs {
		unsub()
	}
	return nil
}

func (w *HostEventWorker) subscribeAll(ctx context.Context) ([]func(), error) {
	handlers := map[string]func(ev lifecycle.Event){
		lifecycle.SubjectSave: func(ev lifecycle.Event) {
			w.dispatcher.OnSave(ctx, ev.Challenge, ev.File)
		},
		lifecycle.SubjectAutoSave: func(ev lifecycle.Event) {
			w.dispatcher.OnAutoSave(ctx, ev.Challenge, ev.File)
		},
		lifecycle.SubjectLoad: func(ev lifecycle.Event) {
			w.dispatcher.OnLoad(ctx, ev.Challenge, ev.File)
		},
		lifecycle.SubjectDelete: func(ev lifecycle.Event) {
			w.dispatcher.OnDeleteSave(ctx, ev.Slot)
		},
		lifecycle.SubjectGameOver: func(ev lifecycle.Event) {
			w.dispatcher.OnGameOver(ctx)
		},
	}

	unsubs := make([]func(), 0, len(handlers))
	for subject, handler := range handlers {
		unsub, err := w.bus.Subscribe(subject, handler)
		if err != nil {
			for _, u := range unsubs {
				u()
			}
			return nil, err
		}
		unsubs = append(unsubs, unsub)
	}
	return unsubs, nil
}
