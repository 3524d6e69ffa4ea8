package driver

import (
	"context"
	"time"

	"github.com/pixil98/go-log"
	"github.com/pixil98/go-modsave/internal/session"
)

const (
	DefaultInterval = time.Minute * 5
)

// Publisher emits an autosave lifecycle event onto the host bus.
type Publisher interface {
	PublishAutoSave(ctx context.Context, challenge bool, file string) error
}

// AutosaveDriver fires an autosave event on a fixed interval while this
// process is the session host and a save is active. Ticks outside those
// conditions are skipped, not errors.
type AutosaveDriver struct {
	interval time.Duration
	sess     *session.Session
	pub      Publisher
}

func NewAutosaveDriver(sess *session.Session, pub Publisher, opts ...AutosaveDriverOpt) *AutosaveDriver {
	d := &AutosaveDriver{
		interval: DefaultInterval,
		sess:     sess,
		pub:      pub,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *AutosaveDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := d.Tick(ctx); err != nil {
				return err
			}
		}
	}
}

func (d *AutosaveDriver) Tick(ctx context.Context) error {
	logger := log.GetLogger(ctx)

	if !d.sess.IsHost() {
		return nil
	}

	file, ok := d.sess.CurrentSave()
	if !ok {
		return nil
	}

	if err := d.pub.PublishAutoSave(ctx, false, file); err != nil {
		// The bus may still be connecting; try again next tick.
		logger.Warnf("publishing autosave: %v", err)
		return nil
	}

	logger.Infof("triggered autosave for %s", file)
	return nil
}
