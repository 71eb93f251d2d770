package visitors

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Paths that are never tracked.
var untrackedPrefixes = []string{
	"/static/",
	"/views/",
	"/favicon",
	"/metrics",
	"/healthz",
	"/stats",
}

// Recorder stores visits.
type Recorder interface {
	Record(ctx context.Context, v Visit) error
}

// Tracker hashes client IPs and records page views in the background.
type Tracker struct {
	recorder Recorder
	salt     string
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// NewTracker builds a tracker with a fresh random salt, so hashes are only
// stable for the lifetime of the process.
func NewTracker(recorder Recorder, logger *slog.Logger) (*Tracker, error) {
	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate visitor salt: %w", err)
	}
	return &Tracker{
		recorder: recorder,
		salt:     hex.EncodeToString(salt),
		logger:   logger.With(slog.String("component", "visitors")),
	}, nil
}

// HashIP returns a truncated salted SHA-256 of ip.
func (t *Tracker) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + t.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Middleware records GET page views, honoring Do Not Track.
func (t *Tracker) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || !Trackable(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		visit := Visit{
			HashedIP:  t.HashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: time.Now(),
		}
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := t.recorder.Record(ctx, visit); err != nil {
				t.logger.Warn("visit_record_failed", slog.Any("error", err))
			}
		}()
		c.Next()
	}
}

// Trackable reports whether path counts as a page view.
func Trackable(path string) bool {
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// Flush waits for in-flight recordings.
func (t *Tracker) Flush() { t.wg.Wait() }

// Purger deletes old visits.
type Purger interface {
	Purge(ctx context.Context, retention time.Duration) (int64, error)
}

// RunRetention purges visits older than retention now and then every
// interval until ctx is done.
func RunRetention(ctx context.Context, p Purger, retention, interval time.Duration, logger *slog.Logger) {
	purge := func() {
		n, err := p.Purge(ctx, retention)
		if err != nil {
			logger.Warn("visitor_purge_failed", slog.Any("error", err))
			return
		}
		if n > 0 {
			logger.Info("visitor_purge_complete", slog.Int64("removed", n))
		}
	}

	purge()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purge()
		}
	}
}
