package driver

import "time"

type AutosaveDriverOpt func(*AutosaveDriver)

func WithInterval(interval time.Duration) AutosaveDriverOpt {
	return func(d *AutosaveDriver) {
		d.interval = interval
	}
}
