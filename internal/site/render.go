package site

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/Zachkp/portfolio-site/internal/content"
	"github.com/Zachkp/portfolio-site/internal/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("site").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

func staticFiles() (fs.FS, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("sub static fs: %w", err)
	}
	return sub, nil
}

func fragmentURL(key string) string {
	if slug, ok := strings.CutPrefix(key, keyPost); ok {
		return "/views/" + keyPost + url.PathEscape(slug)
	}
	return "/views/" + key
}

var profileFields = map[string]func(*content.AdminProfile) *string{
	"name":     func(p *content.AdminProfile) *string { return p.FullName },
	"bio":      func(p *content.AdminProfile) *string { return p.Bio },
	"email":    func(p *content.AdminProfile) *string { return p.Email },
	"phone":    func(p *content.AdminProfile) *string { return p.Phone },
	"location": func(p *content.AdminProfile) *string { return p.Location },
	"github":   func(p *content.AdminProfile) *string { return p.GitHubURL },
	"linkedin": func(p *content.AdminProfile) *string { return p.LinkedInURL },
	"twitter":  func(p *content.AdminProfile) *string { return p.TwitterURL },
	"website":  func(p *content.AdminProfile) *string { return p.WebsiteURL },
	"photo":    func(p *content.AdminProfile) *string { return p.ProfilePhotoURL },
}

// profileText renders a profile field. Only name and bio show the loading
// text; the rest read "Not available" until the profile arrives.
func profileText(section view.Section[*content.AdminProfile], field string) string {
	get, ok := profileFields[field]
	if !ok {
		return view.FallbackUnavailable
	}
	loading := section.Loading && (field == "name" || field == "bio")
	return view.ProfileText(section.Value, loading, get)
}

// profileLink is the raw optional URL field, empty when absent.
func profileLink(section view.Section[*content.AdminProfile], field string) string {
	get, ok := profileFields[field]
	if !ok || section.Value == nil {
		return ""
	}
	return view.Text(get(section.Value), "")
}

var messages = map[string]string{
	"empty_projects":  view.EmptyProjects,
	"empty_filter":    view.EmptyFilter,
	"empty_posts":     view.EmptyPosts,
	"empty_skills":    view.EmptySkills,
	"posts_failed":    view.PostsFailed,
	"post_not_found":  view.PostNotFoundText,
	"page_not_found":  view.PageNotFound,
	"contact_success": view.ContactSuccess,
	"contact_failure": view.ContactFailure,
	"contact_invalid": view.ContactInvalid,
	"contact_busy":    view.ContactBusy,
	"contact_submit":  view.ContactSubmitLabel,
	"loading":         view.FallbackLoading,
	"unavailable":     view.FallbackUnavailable,
	"introduction":    view.DefaultIntroduction,
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"msg":          func(key string) string { return messages[key] },
		"profile":      profileText,
		"profileLink":  profileLink,
		"category":     view.ProjectCategory,
		"image":        view.ProjectImage,
		"label":        view.Label,
		"monthYear":    view.FormatMonthYear,
		"longDate":     view.FormatLongDate,
		"truncate":     view.Truncate,
		"pathEscape":   url.PathEscape,
		"optional":     func(v *string) string { return view.Text(v, "") },
		"author":       view.PostAuthor,
		"postCategory": view.PostCategory,
		"subjects":     func() []content.SubjectChoice { return content.SubjectChoices },
		"postBody":     func(p content.BlogPost) template.HTML { return template.HTML(p.Content) },
		"year":         func() int { return time.Now().Year() },
	}
}
