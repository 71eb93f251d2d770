package view

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Zachkp/portfolio-site/internal/content"
)

var errBackend = errors.New("backend unavailable")

type fakeSource struct {
	mu sync.Mutex

	projects    []content.Project
	projectsErr error
	// gate, when set, blocks ListProjects until it is closed or ctx ends.
	gate chan struct{}

	skills    []content.Skill
	skillsErr error
	profile   *content.AdminProfile
	profErr   error
	featured  []content.Project
	recent    []content.BlogPost

	posts      []content.BlogPost
	postsErr   error
	postCalls  []int
	postBySlug map[string]content.BlogPost

	submitErr   error
	submitGate  chan struct{}
	submitCalls atomic.Int32
}

func (f *fakeSource) ListProjects(ctx context.Context) (*content.Page[content.Project], error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.projectsErr != nil {
		return nil, f.projectsErr
	}
	items := f.projects
	return &content.Page[content.Project]{Count: len(items), Results: &items}, nil
}

func (f *fakeSource) ListSkills(_ context.Context, _ int) (*content.Page[content.Skill], error) {
	if f.skillsErr != nil {
		return nil, f.skillsErr
	}
	items := f.skills
	return &content.Page[content.Skill]{Count: len(items), Results: &items}, nil
}

func (f *fakeSource) AdminProfile(_ context.Context) (*content.AdminProfile, error) {
	if f.profErr != nil {
		return nil, f.profErr
	}
	return f.profile, nil
}

func (f *fakeSource) ListFeaturedProjects(_ context.Context) ([]content.Project, error) {
	return f.featured, nil
}

func (f *fakeSource) ListRecentPosts(_ context.Context) ([]content.BlogPost, error) {
	return f.recent, nil
}

// ListPosts serves f.posts in pages of PageSize and reports the total.
func (f *fakeSource) ListPosts(_ context.Context, page int) (*content.Page[content.BlogPost], error) {
	f.mu.Lock()
	f.postCalls = append(f.postCalls, page)
	f.mu.Unlock()

	if f.postsErr != nil {
		return nil, f.postsErr
	}
	start := (page - 1) * PageSize
	if start > len(f.posts) {
		start = len(f.posts)
	}
	end := start + PageSize
	if end > len(f.posts) {
		end = len(f.posts)
	}
	items := append([]content.BlogPost(nil), f.posts[start:end]...)
	return &content.Page[content.BlogPost]{Count: len(f.posts), Results: &items}, nil
}

func (f *fakeSource) GetPost(_ context.Context, slug string) (*content.BlogPost, error) {
	post, ok := f.postBySlug[slug]
	if !ok {
		return nil, content.ErrNotFound
	}
	return &post, nil
}

func (f *fakeSource) SubmitMessage(_ context.Context, _ content.ContactMessage) error {
	f.submitCalls.Add(1)
	if f.submitGate != nil {
		<-f.submitGate
	}
	return f.submitErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// bufferLogger records log output so tests can assert a diagnostic exists.
func bufferLogger() (*slog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func strPtr(s string) *string { return &s }

func project(id int, category *string, tech ...string) content.Project {
	return content.Project{ID: id, Title: fmt.Sprintf("project-%d", id), Category: category, Technologies: tech}
}

func posts(n int) []content.BlogPost {
	out := make([]content.BlogPost, n)
	for i := range out {
		out[i] = content.BlogPost{ID: i + 1, Slug: fmt.Sprintf("post-%d", i+1), Title: fmt.Sprintf("Post %d", i+1)}
	}
	return out
}
