package view

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sourcegraph/conc"

	"github.com/Zachkp/portfolio-site/internal/content"
)

// AboutSkillPageSize asks for every skill in one page.
const AboutSkillPageSize = 100

// AboutSource is everything the about view reads.
type AboutSource interface {
	ProfileSource
	SkillSource
}

// About shows the profile and the skills grouped by category.
type About struct {
	*Lifetime
	source AboutSource
	logger *slog.Logger

	profile Section[*content.AdminProfile]
	skills  Section[[]content.Skill]
}

// AboutState is a render snapshot of an About view.
type AboutState struct {
	Profile     Section[*content.AdminProfile]
	Skills      Section[[]content.Skill]
	SkillGroups []Group[content.Skill]
}

func NewAbout(parent context.Context, source AboutSource, logger *slog.Logger) *About {
	return &About{
		Lifetime: NewLifetime(parent),
		source:   source,
		logger:   logger.With(slog.String("view", "about")),
		profile:  Section[*content.AdminProfile]{Loading: true},
		skills:   Section[[]content.Skill]{Loading: true},
	}
}

func (a *About) Load() {
	defer a.Settle()

	ctx := a.Context()
	var wg conc.WaitGroup
	wg.Go(func() {
		profile, err := a.source.AdminProfile(ctx)
		a.settle(func() { a.profile = settled(profile, err) }, err, "admin_profile")
	})
	wg.Go(func() {
		var skills []content.Skill
		page, err := a.source.ListSkills(ctx, AboutSkillPageSize)
		if err == nil {
			skills = page.Items()
		}
		a.settle(func() { a.skills = settled(skills, err) }, err, "skills")
	})
	if recovered := wg.WaitAndRecover(); recovered != nil {
		a.logger.Error("view_fetch_panicked", slog.String("panic", fmt.Sprint(recovered.Value)))
	}
}

func (a *About) settle(apply func(), err error, resource string) {
	if a.Commit(apply) && err != nil {
		a.logger.Warn("view_fetch_failed", slog.String("resource", resource), slog.Any("error", err))
	}
}

func settled[T any](value T, err error) Section[T] {
	if err != nil {
		return Section[T]{Failed: true}
	}
	return Section[T]{Value: value}
}

func (a *About) Snapshot() AboutState {
	var s AboutState
	a.Read(func() {
		s = AboutState{
			Profile:     a.profile,
			Skills:      a.skills,
			SkillGroups: GroupBy(a.skills.Value, SkillGroup),
		}
	})
	return s
}
