package view

import (
	"context"
	"log/slog"

	"github.com/Zachkp/portfolio-site/internal/content"
)

// PageSize is the blog listing page size the API paginates with.
const PageSize = 10

// PostSource fetches blog posts.
type PostSource interface {
	ListPosts(ctx context.Context, page int) (*content.Page[content.BlogPost], error)
	GetPost(ctx context.Context, slug string) (*content.BlogPost, error)
}

// PostList is the blog listing: every page change is a new fetch.
type PostList struct {
	*Lifetime
	source PostSource
	logger *slog.Logger

	items       []content.BlogPost
	count       int
	currentPage int
	loading     bool
	failed      bool
	seq         uint64
}

// PostListState is a render snapshot of a PostList.
type PostListState struct {
	Items       []content.BlogPost
	Count       int
	CurrentPage int
	TotalPages  int
	Loading     bool
	Failed      bool
}

// PageFailed reports a failed page change. The previous total still
// stands, so the controls stay up for a retry.
func (s PostListState) PageFailed() bool { return s.Failed && s.Count > 0 }

func (s PostListState) Empty() bool {
	return !s.Loading && len(s.Items) == 0 && !s.PageFailed()
}

func (s PostListState) PrevDisabled() bool { return s.CurrentPage <= 1 }
func (s PostListState) NextDisabled() bool { return s.CurrentPage >= s.TotalPages }
func (s PostListState) ShowPagination() bool { return s.TotalPages > 1 }
func (s PostListState) PrevPage() int { return s.CurrentPage - 1 }
func (s PostListState) NextPage() int { return s.CurrentPage + 1 }

func NewPostList(parent context.Context, source PostSource, logger *slog.Logger) *PostList {
	return &PostList{
		Lifetime:    NewLifetime(parent),
		source:      source,
		logger:      logger.With(slog.String("view", "blog")),
		currentPage: 1,
		loading:     true,
	}
}

// Load fetches page 1.
func (v *PostList) Load() {
	defer v.Settle()
	v.fetch(1)
}

// GoTo fetches page and replaces the listing wholesale. Out of range pages
// are clamped once the total is known.
func (v *PostList) GoTo(page int) {
	var target int
	v.Read(func() {
		target = page
		if total := TotalPages(v.count, PageSize); total > 0 && target > total {
			target = total
		}
		if target < 1 {
			target = 1
		}
	})
	v.fetch(target)
}

func (v *PostList) fetch(page int) {
	var seq uint64
	if !v.Commit(func() {
		v.seq++
		seq = v.seq
	}) {
		return
	}

	result, err := v.source.ListPosts(v.Context(), page)

	committed := v.Commit(func() {
		// A newer page request superseded this one.
		if seq != v.seq {
			return
		}
		v.loading = false
		if err != nil {
			v.failed = true
			v.items = nil
			return
		}
		v.failed = false
		v.items = result.Items()
		v.count = result.Count
		v.currentPage = page
	})
	if err != nil && committed {
		v.logger.Warn("view_fetch_failed",
			slog.String("resource", "posts"),
			slog.Int("page", page),
			slog.Any("error", err),
		)
	}
}

func (v *PostList) CurrentPage() int {
	var p int
	v.Read(func() { p = v.currentPage })
	return p
}

func (v *PostList) Snapshot() PostListState {
	var s PostListState
	v.Read(func() {
		s = PostListState{
			Items:       v.items,
			Count:       v.count,
			CurrentPage: v.currentPage,
			TotalPages:  TotalPages(v.count, PageSize),
			Loading:     v.loading,
			Failed:      v.failed,
		}
	})
	return s
}

// PostStatus is the render state of a PostDetail.
type PostStatus int

const (
	PostLoading PostStatus = iota
	PostNotFound
	PostLoaded
)

// PostDetail is a single blog post addressed by slug.
type PostDetail struct {
	*Lifetime
	source PostSource
	slug   string
	logger *slog.Logger

	post   *content.BlogPost
	status PostStatus
}

func NewPostDetail(parent context.Context, source PostSource, slug string, logger *slog.Logger) *PostDetail {
	return &PostDetail{
		Lifetime: NewLifetime(parent),
		source:   source,
		slug:     slug,
		logger:   logger.With(slog.String("view", "post"), slog.String("slug", slug)),
		status:   PostLoading,
	}
}

// Load fetches the post. Missing and failed fetches both end in PostNotFound.
func (v *PostDetail) Load() {
	defer v.Settle()

	post, err := v.source.GetPost(v.Context(), v.slug)
	committed := v.Commit(func() {
		if err != nil || post == nil {
			v.status = PostNotFound
			return
		}
		v.post = post
		v.status = PostLoaded
	})
	if err != nil && committed {
		v.logger.Warn("view_fetch_failed", slog.String("resource", "post"), slog.Any("error", err))
	}
}

func (v *PostDetail) Slug() string { return v.slug }

// State returns the status and, when loaded, the post.
func (v *PostDetail) State() (PostStatus, *content.BlogPost) {
	var (
		status PostStatus
		post   *content.BlogPost
	)
	v.Read(func() {
		status = v.status
		post = v.post
	})
	return status, post
}
