package view

import (
	"strings"

	"github.com/Zachkp/portfolio-site/internal/content"
)

// Fallback text, one value per optional field.
const (
	FallbackLoading      = "Loading…"
	FallbackUnavailable  = "Not available"
	FallbackCategory     = "Uncategorized"
	FallbackDate         = "Date unavailable"
	FallbackSkillGroup   = "Other"
	FallbackProjectImage = "/static/placeholder.svg"
	FallbackAuthor       = "Anonymous"
	FallbackPostCategory = "General"
)

// Empty-state messages.
const (
	EmptyProjects       = "No projects to show yet."
	EmptyFilter         = "No projects match this filter."
	EmptyPosts          = "No blog posts have been published yet."
	EmptySkills         = "No skills to show yet."
	PostsFailed         = "Blog posts could not be loaded. Please try again."
	PostNotFoundText    = "This post could not be found."
	ContactSuccess      = "Thank you for your message! I'll get back to you soon."
	ContactFailure      = "Sorry, there was an error sending your message. Please try again later."
	ContactInvalid      = "Please fill in every required field with a valid email address."
	ContactBusy         = "Sending…"
	ContactSubmitLabel  = "Send Message"
	PageNotFound        = "The page you are looking for does not exist."
	DefaultIntroduction = `I build software that is useful and pleasant to use, and I like
understanding how things work behind the scenes.`
)

// Text returns the trimmed value of an optional field or fallback.
func Text(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	if v := strings.TrimSpace(*value); v != "" {
		return v
	}
	return fallback
}

// ProfileText resolves a profile field that shows "Loading…" until the
// profile fetch settles and "Not available" after.
func ProfileText(profile *content.AdminProfile, loading bool, field func(*content.AdminProfile) *string) string {
	if profile == nil {
		if loading {
			return FallbackLoading
		}
		return FallbackUnavailable
	}
	return Text(field(profile), FallbackUnavailable)
}

// ProjectCategory is the display label of a project's category.
func ProjectCategory(p content.Project) string {
	return Text(p.Category, FallbackCategory)
}

// ProjectImage is the project image or the placeholder asset.
func ProjectImage(p content.Project) string {
	return Text(p.Image, FallbackProjectImage)
}

// PostAuthor is the post's author name or "Anonymous".
func PostAuthor(p content.BlogPost) string {
	if v := strings.TrimSpace(string(p.Author)); v != "" {
		return v
	}
	return FallbackAuthor
}

// PostCategory is the post's category name or "General".
func PostCategory(p content.BlogPost) string {
	if v := strings.TrimSpace(string(p.Category)); v != "" {
		return v
	}
	return FallbackPostCategory
}

// SkillGroup labels a skill's group on the About view.
func SkillGroup(s content.Skill) string {
	if v := strings.TrimSpace(s.CategoryDisplay); v != "" {
		return v
	}
	if v := strings.TrimSpace(s.Category); v != "" {
		return v
	}
	return FallbackSkillGroup
}
