package visitors

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "visitors.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_StatsAndPurge(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	visits := []Visit{
		{HashedIP: "a", Path: "/", Timestamp: now.Add(-time.Hour)},
		{HashedIP: "a", Path: "/blog", Timestamp: now.Add(-2 * time.Hour)},
		{HashedIP: "b", Path: "/", Timestamp: now.Add(-3 * 24 * time.Hour)},
		{HashedIP: "c", Path: "/portfolio", Timestamp: now.Add(-400 * 24 * time.Hour)},
	}
	for _, v := range visits {
		if err := store.Record(ctx, v); err != nil {
			t.Fatalf("Record error: %v", err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if stats.TotalVisitors != 4 || stats.UniqueVisitors != 3 {
		t.Fatalf("totals = %d/%d", stats.TotalVisitors, stats.UniqueVisitors)
	}
	if stats.VisitorsToday != 2 || stats.VisitorsThisWeek != 3 {
		t.Fatalf("today=%d week=%d", stats.VisitorsToday, stats.VisitorsThisWeek)
	}
	if len(stats.TopPaths) == 0 || stats.TopPaths[0].Path != "/" || stats.TopPaths[0].Views != 2 {
		t.Fatalf("top paths = %+v", stats.TopPaths)
	}

	removed, err := store.Purge(ctx, 365*24*time.Hour)
	if err != nil {
		t.Fatalf("Purge error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("purged %d, want 1", removed)
	}
}

type memoryRecorder struct {
	mu     sync.Mutex
	visits []Visit
}

func (m *memoryRecorder) Record(_ context.Context, v Visit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visits = append(m.visits, v)
	return nil
}

func TestTracker_Middleware(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	rec := &memoryRecorder{}
	tracker, err := NewTracker(rec, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewTracker error: %v", err)
	}

	router := gin.New()
	router.Use(tracker.Middleware())
	router.GET("/*path", func(c *gin.Context) { c.Status(http.StatusOK) })

	requests := []struct {
		path string
		dnt  bool
	}{
		{"/", false},
		{"/about", true},
		{"/static/site.css", false},
		{"/views/portfolio", false},
		{"/blog/hello", false},
	}
	for _, r := range requests {
		req := httptest.NewRequest(http.MethodGet, r.path, nil)
		req.RemoteAddr = "203.0.113.9:1234"
		if r.dnt {
			req.Header.Set("DNT", "1")
		}
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
	tracker.Flush()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.visits) != 2 {
		t.Fatalf("recorded %d visits, want 2: %+v", len(rec.visits), rec.visits)
	}
	for _, v := range rec.visits {
		if v.HashedIP == "203.0.113.9" || len(v.HashedIP) != 16 {
			t.Fatalf("ip not hashed: %q", v.HashedIP)
		}
	}
	if rec.visits[0].HashedIP != rec.visits[1].HashedIP {
		t.Fatalf("hash should be stable within a process")
	}
}
