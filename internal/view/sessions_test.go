package view

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type stubView struct {
	*Lifetime
	loads atomic.Int32
}

func newStubView() *stubView {
	return &stubView{Lifetime: NewLifetime(context.Background())}
}

func (s *stubView) Load() {
	s.loads.Add(1)
	s.Settle()
}

func TestSessions_MountReplacesPreviousView(t *testing.T) {
	t.Parallel()

	s := NewSessions(time.Minute, discardLogger())
	id := NewID()

	first := newStubView()
	s.Mount(id, "portfolio", func() View { return first })
	if err := first.Wait(context.Background()); err != nil {
		t.Fatalf("first view did not load: %v", err)
	}

	second := newStubView()
	s.Mount(id, "blog", func() View { return second })

	if first.Mounted() {
		t.Fatalf("previous view should be unmounted")
	}
	if !second.Mounted() {
		t.Fatalf("new view should be mounted")
	}
	if s.Len() != 1 {
		t.Fatalf("sessions = %d, want 1", s.Len())
	}
}

func TestSessions_AttachReusesMountedView(t *testing.T) {
	t.Parallel()

	s := NewSessions(time.Minute, discardLogger())
	id := NewID()

	mounted := newStubView()
	s.Mount(id, "portfolio", func() View { return mounted })

	got := s.Attach(id, "portfolio", func() View {
		t.Fatalf("factory should not run for a mounted key")
		return nil
	})
	if got != View(mounted) {
		t.Fatalf("Attach returned a different view")
	}

	other := newStubView()
	if got := s.Attach(id, "contact", func() View { return other }); got != View(other) {
		t.Fatalf("Attach should mount for a new key")
	}
	if mounted.Mounted() {
		t.Fatalf("attaching another key should unmount the old view")
	}
}

func TestSessions_SweepExpiresIdleViews(t *testing.T) {
	t.Parallel()

	s := NewSessions(time.Minute, discardLogger())
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	old := newStubView()
	s.Mount("a", "home", func() View { return old })

	now = now.Add(2 * time.Minute)
	fresh := newStubView()
	s.Mount("b", "home", func() View { return fresh })

	if n := s.Sweep(); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if old.Mounted() || !fresh.Mounted() {
		t.Fatalf("wrong view expired")
	}
}

func TestSessions_LimitEvictsLeastRecentlyTouched(t *testing.T) {
	t.Parallel()

	s := NewSessions(time.Hour, discardLogger()).WithLimit(2)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	a, b, c := newStubView(), newStubView(), newStubView()
	s.Mount("a", "home", func() View { return a })
	now = now.Add(time.Second)
	s.Mount("b", "home", func() View { return b })
	now = now.Add(time.Second)
	// Touching a makes b the least recently used.
	if got := s.Attach("a", "home", func() View { return newStubView() }); got != View(a) {
		t.Fatalf("attach should reuse the mounted view")
	}
	now = now.Add(time.Second)
	s.Mount("c", "home", func() View { return c })

	if n := s.Len(); n != 2 {
		t.Fatalf("sessions = %d, want 2", n)
	}
	if b.Mounted() || !a.Mounted() || !c.Mounted() {
		t.Fatalf("wrong session evicted: a=%v b=%v c=%v", a.Mounted(), b.Mounted(), c.Mounted())
	}

	// Remounting an existing session never evicts another.
	now = now.Add(time.Second)
	s.Mount("c", "blog", func() View { return newStubView() })
	if !a.Mounted() || s.Len() != 2 {
		t.Fatalf("remounting a live session evicted another")
	}
}

func TestSessions_LimitBoundsCookielessFlood(t *testing.T) {
	t.Parallel()

	s := NewSessions(time.Hour, discardLogger()).WithLimit(50)
	t.Cleanup(s.Close)
	for range 500 {
		s.Mount(NewID(), "home", func() View { return newStubView() })
	}
	if n := s.Len(); n != 50 {
		t.Fatalf("sessions = %d, want 50", n)
	}
}

func TestSessions_RunUnmountsOnShutdown(t *testing.T) {
	t.Parallel()

	s := NewSessions(time.Hour, discardLogger())
	v := newStubView()
	s.Mount(NewID(), "home", func() View { return v })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return")
	}
	if v.Mounted() || s.Len() != 0 {
		t.Fatalf("shutdown should unmount every view")
	}
}

func TestValidID(t *testing.T) {
	t.Parallel()

	if !ValidID(NewID()) {
		t.Fatalf("fresh id should be valid")
	}
	if ValidID("../../etc") {
		t.Fatalf("garbage id accepted")
	}
}
