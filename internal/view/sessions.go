package view

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// View is a mounted, independently fetching screen.
type View interface {
	Load()
	Unmount()
	Wait(ctx context.Context) error
}

type mounted struct {
	key     string
	view    View
	touched time.Time
}

// Sessions keeps at most one mounted view per visitor session. Mounting a
// different view unmounts the previous one. With a limit set, a new session
// past the limit evicts the least recently touched one.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*mounted
	ttl     time.Duration
	limit   int
	now     func() time.Time
	logger  *slog.Logger
}

func NewSessions(ttl time.Duration, logger *slog.Logger) *Sessions {
	return &Sessions{
		entries: make(map[string]*mounted),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger.With(slog.String("component", "view-sessions")),
	}
}

// WithLimit caps the number of mounted sessions. Zero means no cap.
func (s *Sessions) WithLimit(n int) *Sessions {
	s.mu.Lock()
	s.limit = n
	s.mu.Unlock()
	return s
}

// NewID returns a fresh session id.
func NewID() string { return uuid.NewString() }

// ValidID reports whether id looks like an id NewID produced.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Mount always mounts a fresh view for key, unmounting whatever the
// session had before, and starts its fetch.
func (s *Sessions) Mount(id, key string, factory func() View) View {
	v := factory()

	s.mu.Lock()
	prev := s.entries[id]
	var evicted *mounted
	if prev == nil && s.limit > 0 && len(s.entries) >= s.limit {
		evicted = s.evictOldestLocked()
	}
	s.entries[id] = &mounted{key: key, view: v, touched: s.now()}
	s.mu.Unlock()

	if prev != nil {
		prev.view.Unmount()
	}
	if evicted != nil {
		evicted.view.Unmount()
		s.logger.Debug("view_session_evicted", slog.String("view", evicted.key))
	}
	go v.Load()
	return v
}

func (s *Sessions) evictOldestLocked() *mounted {
	var (
		oldestID string
		oldest   *mounted
	)
	for id, m := range s.entries {
		if oldest == nil || m.touched.Before(oldest.touched) {
			oldestID, oldest = id, m
		}
	}
	if oldest != nil {
		delete(s.entries, oldestID)
	}
	return oldest
}

// Attach returns the session's view for key, mounting one if the session
// has none or has a different view mounted.
func (s *Sessions) Attach(id, key string, factory func() View) View {
	s.mu.Lock()
	if cur, ok := s.entries[id]; ok && cur.key == key {
		cur.touched = s.now()
		s.mu.Unlock()
		return cur.view
	}
	s.mu.Unlock()
	return s.Mount(id, key, factory)
}

// Sweep unmounts views idle for longer than the TTL.
func (s *Sessions) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []View
	for id, m := range s.entries {
		if m.touched.Before(cutoff) {
			expired = append(expired, m.view)
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()

	for _, v := range expired {
		v.Unmount()
	}
	return len(expired)
}

// Len is the number of sessions with a mounted view.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Run sweeps expired sessions until ctx is done, then unmounts everything.
func (s *Sessions) Run(ctx context.Context) {
	interval := s.ttl / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Close()
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("view_sessions_expired", slog.Int("count", n))
			}
		}
	}
}

// Close unmounts every view.
func (s *Sessions) Close() {
	s.mu.Lock()
	entries := s.entries
	s.entries = make(map[string]*mounted)
	s.mu.Unlock()

	for _, m := range entries {
		m.view.Unmount()
	}
}
