package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-modsave/internal/lifecycle"
)

// HostBus is the embedded NATS bus carrying host lifecycle events. The
// host game publishes onto it; the dispatcher worker subscribes. It also
// exposes a publish side for internally generated events (autosave).
type HostBus struct {
	ns *server.Server

	// conn is written by the bus worker once the server is up and read
	// by the event worker and the autosave driver from their own
	// goroutines.
	mu   sync.RWMutex
	conn *nats.Conn

	startupTimeout time.Duration
	host           string
	port           int
}

func NewHostBus(opts ...HostBusOpt) (*HostBus, error) {
	b := &HostBus{
		startupTimeout: 10 * time.Second,
		host:           "127.0.0.1",
	}

	for _, opt := range opts {
		opt(b)
	}

	ns, err := server.NewServer(&server.Options{
		Host:   b.host,
		Port:   b.port,
		NoSigs: true, // Let the application handle signals
	})

	b.ns = ns

	if err != nil {
		return nil, err
	}

	return b, nil
}

func (b *HostBus) Start(ctx context.Context) error {
	b.ns.Start()

	if !b.ns.ReadyForConnections(b.startupTimeout) {
		return fmt.Errorf("nats server not ready for connections")
	}

	// The server resolves its own listen address (port 0 means the NATS
	// default, -1 a random free port), so dial what it actually bound.
	conn, err := nats.Connect(b.ns.ClientURL())
	if err != nil {
		return fmt.Errorf("creating nats client connection: %w", err)
	}

	b.mu.Lock()
	b.conn = conn
	b.mu.Unlock()

	slog.InfoContext(ctx, "host bus listening", "addr", b.ns.Addr())

	<-ctx.Done()
	conn.Close()
	b.ns.Shutdown()
	b.ns.WaitForShutdown()

	return nil
}

// clientConn returns the client connection, or nil while the bus is
// still coming up.
func (b *HostBus) clientConn() *nats.Conn {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.conn
}

// Subscribe registers a handler for a lifecycle subject. Returns an
// unsubscribe function.
func (b *HostBus) Subscribe(subject string, handler func(ev lifecycle.Event)) (func(), error) {
	conn := b.clientConn()
	if conn == nil {
		return nil, fmt.Errorf("host bus not started")
	}

	sub, err := conn.Subscribe(subject, func(msg *nats.Msg) {
		var ev lifecycle.Event
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			slog.Warn("dropping malformed lifecycle event", "subject", subject, "error", err)
			return
		}
		handler(ev)
	})
	if err != nil {
		return nil, err
	}
	return func() { _ = sub.Unsubscribe() }, nil
}

// PublishAutoSave emits an autosave lifecycle event, stamped with a
// fresh event id.
func (b *HostBus) PublishAutoSave(ctx context.Context, challenge bool, file string) error {
	return b.publish(lifecycle.SubjectAutoSave, lifecycle.Event{
		ID:        uuid.NewString(),
		Challenge: challenge,
		File:      file,
	})
}

func (b *HostBus) publish(subject string, ev lifecycle.Event) error {
	conn := b.clientConn()
	if conn == nil {
		return fmt.Errorf("host bus not started")
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshalling lifecycle event: %w", err)
	}
	return conn.Publish(subject, data)
}
