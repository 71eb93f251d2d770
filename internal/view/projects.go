package view

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Zachkp/portfolio-site/internal/content"
)

// ProjectSource fetches the project list.
type ProjectSource interface {
	ListProjects(ctx context.Context) (*content.Page[content.Project], error)
}

// Facet selects which project field the filter bar partitions on.
type Facet string

const (
	FacetCategory   Facet = "category"
	FacetTechnology Facet = "technology"
)

// ParseFacet maps a config value to a Facet, defaulting to category.
func ParseFacet(raw string) Facet {
	if strings.EqualFold(strings.TrimSpace(raw), string(FacetTechnology)) {
		return FacetTechnology
	}
	return FacetCategory
}

func (f Facet) field() func(content.Project) []string {
	if f == FacetTechnology {
		return func(p content.Project) []string { return p.Technologies }
	}
	return func(p content.Project) []string {
		if p.Category == nil {
			return nil
		}
		return []string{*p.Category}
	}
}

// ProjectList is the portfolio view: fetched once, filtered locally.
type ProjectList struct {
	*Lifetime
	source ProjectSource
	facet  Facet
	logger *slog.Logger

	items        []content.Project
	visible      []content.Project
	activeFilter string
	loading      bool
	failed       bool
}

// ProjectListState is a render snapshot of a ProjectList.
type ProjectListState struct {
	Items        []content.Project
	Visible      []content.Project
	FilterKeys   []string
	ActiveFilter string
	Loading      bool
	Failed       bool
}

// Empty reports that the fetch settled with nothing to show at all.
func (s ProjectListState) Empty() bool { return !s.Loading && len(s.Items) == 0 }

// FilterEmpty reports that items exist but none match the active filter.
func (s ProjectListState) FilterEmpty() bool {
	return !s.Loading && len(s.Items) > 0 && len(s.Visible) == 0
}

func NewProjectList(parent context.Context, source ProjectSource, facet Facet, logger *slog.Logger) *ProjectList {
	return &ProjectList{
		Lifetime:     NewLifetime(parent),
		source:       source,
		facet:        facet,
		logger:       logger.With(slog.String("view", "portfolio")),
		activeFilter: AllFilter,
		loading:      true,
	}
}

// Load fetches the first page of projects. Failures leave the list empty.
func (v *ProjectList) Load() {
	defer v.Settle()

	page, err := v.source.ListProjects(v.Context())
	if err != nil {
		if !v.Commit(func() {
			v.loading = false
			v.failed = true
		}) {
			return
		}
		v.logger.Warn("view_fetch_failed", slog.String("resource", "projects"), slog.Any("error", err))
		return
	}

	items := page.Items()
	if !v.Commit(func() {
		v.items = items
		v.visible = Filter(items, v.activeFilter, v.facet.field())
		v.loading = false
	}) {
		v.logger.Debug("view_late_response_dropped", slog.String("resource", "projects"))
	}
}

// ApplyFilter narrows the visible projects without fetching.
func (v *ProjectList) ApplyFilter(key string) {
	key = strings.TrimSpace(key)
	if key == "" {
		key = AllFilter
	}
	v.Commit(func() {
		v.activeFilter = key
		v.visible = Filter(v.items, key, v.facet.field())
	})
}

// FilterKeys is the filter bar derived from the fetched items.
func (v *ProjectList) FilterKeys() []string {
	var keys []string
	v.Read(func() { keys = FilterKeys(v.items, v.facet.field()) })
	return keys
}

// Visible returns the currently visible projects.
func (v *ProjectList) Visible() []content.Project {
	var out []content.Project
	v.Read(func() { out = v.visible })
	return out
}

func (v *ProjectList) Snapshot() ProjectListState {
	var s ProjectListState
	v.Read(func() {
		s = ProjectListState{
			Items:        v.items,
			Visible:      v.visible,
			FilterKeys:   FilterKeys(v.items, v.facet.field()),
			ActiveFilter: v.activeFilter,
			Loading:      v.loading,
			Failed:       v.failed,
		}
	})
	return s
}
