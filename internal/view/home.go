package view

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sourcegraph/conc"

	"github.com/Zachkp/portfolio-site/internal/content"
)

// HomeSkillLimit is how many featured skills the home view shows.
const HomeSkillLimit = 6

// HomeProjectLimit and HomePostLimit cap the other home sections.
const (
	HomeProjectLimit = 3
	HomePostLimit    = 3
)

// ProfileSource fetches the site owner profile.
type ProfileSource interface {
	AdminProfile(ctx context.Context) (*content.AdminProfile, error)
}

// SkillSource fetches skills.
type SkillSource interface {
	ListSkills(ctx context.Context, pageSize int) (*content.Page[content.Skill], error)
}

// HomeSource is everything the home view reads.
type HomeSource interface {
	ProfileSource
	SkillSource
	ListFeaturedProjects(ctx context.Context) ([]content.Project, error)
	ListRecentPosts(ctx context.Context) ([]content.BlogPost, error)
}

// Section is one independently fetched slice of a view.
type Section[T any] struct {
	Value   T
	Loading bool
	Failed  bool
}

// Home fans out four independent reads; each fills only its own section.
type Home struct {
	*Lifetime
	source HomeSource
	logger *slog.Logger

	profile  Section[*content.AdminProfile]
	skills   Section[[]content.Skill]
	projects Section[[]content.Project]
	posts    Section[[]content.BlogPost]
}

// HomeState is a render snapshot of a Home view.
type HomeState struct {
	Profile  Section[*content.AdminProfile]
	Skills   Section[[]content.Skill]
	Projects Section[[]content.Project]
	Posts    Section[[]content.BlogPost]
}

func NewHome(parent context.Context, source HomeSource, logger *slog.Logger) *Home {
	return &Home{
		Lifetime: NewLifetime(parent),
		source:   source,
		logger:   logger.With(slog.String("view", "home")),
		profile:  Section[*content.AdminProfile]{Loading: true},
		skills:   Section[[]content.Skill]{Loading: true},
		projects: Section[[]content.Project]{Loading: true},
		posts:    Section[[]content.BlogPost]{Loading: true},
	}
}

// Load runs the four reads in parallel and settles once all of them have.
func (h *Home) Load() {
	defer h.Settle()

	ctx := h.Context()
	var wg conc.WaitGroup
	wg.Go(func() {
		profile, err := h.source.AdminProfile(ctx)
		settleSection(h, &h.profile, profile, err, "admin_profile")
	})
	wg.Go(func() {
		var skills []content.Skill
		page, err := h.source.ListSkills(ctx, HomeSkillLimit)
		if err == nil {
			skills = limit(page.Items(), HomeSkillLimit)
		}
		settleSection(h, &h.skills, skills, err, "skills")
	})
	wg.Go(func() {
		projects, err := h.source.ListFeaturedProjects(ctx)
		settleSection(h, &h.projects, limit(projects, HomeProjectLimit), err, "featured_projects")
	})
	wg.Go(func() {
		posts, err := h.source.ListRecentPosts(ctx)
		settleSection(h, &h.posts, limit(posts, HomePostLimit), err, "recent_posts")
	})
	if recovered := wg.WaitAndRecover(); recovered != nil {
		h.logger.Error("view_fetch_panicked", slog.String("panic", fmt.Sprint(recovered.Value)))
	}
}

func settleSection[T any](h *Home, section *Section[T], value T, err error, resource string) {
	committed := h.Commit(func() {
		section.Loading = false
		if err != nil {
			section.Failed = true
			return
		}
		section.Value = value
	})
	if err != nil && committed {
		h.logger.Warn("view_fetch_failed", slog.String("resource", resource), slog.Any("error", err))
	}
}

func (h *Home) Snapshot() HomeState {
	var s HomeState
	h.Read(func() {
		s = HomeState{Profile: h.profile, Skills: h.skills, Projects: h.projects, Posts: h.posts}
	})
	return s
}

func limit[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
