// Package view holds the per-route view state: what a view fetched, what it
// derived from that, and whether it is still mounted.
package view

import (
	"context"
	"sync"
)

// Lifetime scopes a view between mount and unmount. State writes that come
// back from a fetch go through Commit and are dropped once the view is gone.
type Lifetime struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	settled    chan struct{}
	settleOnce sync.Once
}

// NewLifetime mounts a view under parent.
func NewLifetime(parent context.Context) *Lifetime {
	ctx, cancel := context.WithCancel(parent)
	return &Lifetime{
		ctx:     ctx,
		cancel:  cancel,
		settled: make(chan struct{}),
	}
}

// Context is cancelled when the view unmounts.
func (l *Lifetime) Context() context.Context { return l.ctx }

// Mounted reports whether the view has not been unmounted yet.
func (l *Lifetime) Mounted() bool { return l.ctx.Err() == nil }

// Commit applies fn under the view lock if the view is still mounted.
func (l *Lifetime) Commit(fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ctx.Err() != nil {
		return false
	}
	fn()
	return true
}

// Read runs fn under the view lock regardless of mount state.
func (l *Lifetime) Read(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn()
}

// Settle marks the first fetch as finished, successfully or not.
func (l *Lifetime) Settle() {
	l.settleOnce.Do(func() { close(l.settled) })
}

// Settled is closed once the first fetch has settled.
func (l *Lifetime) Settled() <-chan struct{} { return l.settled }

// Wait blocks until the first fetch settles, ctx ends or the view unmounts.
func (l *Lifetime) Wait(ctx context.Context) error {
	select {
	case <-l.settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.ctx.Done():
		return l.ctx.Err()
	}
}

// Unmount cancels in-flight fetches and rejects later commits.
func (l *Lifetime) Unmount() {
	l.mu.Lock()
	l.cancel()
	l.mu.Unlock()
}
