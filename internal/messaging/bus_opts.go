package messaging

import "time"

type HostBusOpt func(*HostBus)

func WithStartTimeout(d time.Duration) HostBusOpt {
	return func(b *HostBus) {
		b.startupTimeout = d
	}
}

func WithHost(host string) HostBusOpt {
	return func(b *HostBus) {
		b.host = host
	}
}

func WithPort(port int) HostBusOpt {
	return func(b *HostBus) {
		b.port = port
	}
}
