package driver

import (
	"context"
	"fmt"
	"testing"

	"github.com/pixil98/go-modsave/internal/session"
	"github.com/pixil98/go-testutil"
)

type mockPublisher struct {
	published []string
	fail      bool
}

func (p *mockPublisher) PublishAutoSave(ctx context.Context, challenge bool, file string) error {
	if p.fail {
		return fmt.Errorf("bus not ready")
	}
	p.published = append(p.published, file)
	return nil
}

func TestTick_PublishesWhenHostWithActiveSave(t *testing.T) {
	sess := session.New(true)
	sess.SetCurrentSave("save-1")
	pub := &mockPublisher{}

	d := NewAutosaveDriver(sess, pub)
	if err := d.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "published", len(pub.published), 1)
	testutil.AssertEqual(t, "file", pub.published[0], "save-1")
}

func TestTick_SkipsNonHost(t *testing.T) {
	sess := session.New(false)
	sess.SetCurrentSave("save-1")
	pub := &mockPublisher{}

	d := NewAutosaveDriver(sess, pub)
	if err := d.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "published", len(pub.published), 0)
}

func TestTick_SkipsWithoutActiveSave(t *testing.T) {
	sess := session.New(true)
	pub := &mockPublisher{}

	d := NewAutosaveDriver(sess, pub)
	if err := d.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "published", len(pub.published), 0)
}

func TestTick_PublishErrorIsNotFatal(t *testing.T) {
	sess := session.New(true)
	sess.SetCurrentSave("save-1")
	pub := &mockPublisher{fail: true}

	d := NewAutosaveDriver(sess, pub)
	if err := d.Tick(context.Background()); err != nil {
		t.Fatalf("expected publish failure to be swallowed, got %v", err)
	}
}

func TestWithInterval(t *testing.T) {
	sess := session.New(true)
	d := NewAutosaveDriver(sess, &mockPublisher{}, WithInterval(DefaultInterval*2))
	testutil.AssertEqual(t, "interval", d.interval, DefaultInterval*2)
}
