package content

import (
	"bytes"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Page is the envelope every list endpoint answers with.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  *[]T    `json:"results"`
}

// Items returns the decoded results. Callers only see pages that passed
// decodePage, so Results is never nil there.
func (p *Page[T]) Items() []T {
	if p == nil || p.Results == nil {
		return nil
	}
	return *p.Results
}

// Timestamp decodes API timestamps leniently. null, "" and unparsable
// values leave it zero instead of failing the whole response.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil
	}
	value := strings.TrimSpace(*raw)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Name is a display name sent either as a plain string or as a nested
// object: a user (first/last name, username), a category or a tag.
type Name string

type nameObject struct {
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

func (o nameObject) display() string {
	if v := strings.TrimSpace(o.Name); v != "" {
		return v
	}
	if full := strings.TrimSpace(strings.TrimSpace(o.FirstName) + " " + strings.TrimSpace(o.LastName)); full != "" {
		return full
	}
	return strings.TrimSpace(o.Username)
}

// UnmarshalJSON leaves the name empty for null and unrecognised shapes.
func (n *Name) UnmarshalJSON(data []byte) error {
	*n = ""
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	switch trimmed[0] {
	case '"':
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err == nil {
			*n = Name(strings.TrimSpace(raw))
		}
	case '{':
		var obj nameObject
		if err := json.Unmarshal(trimmed, &obj); err == nil {
			*n = Name(obj.display())
		}
	}
	return nil
}

// Tags accepts an array of names or tag objects, or a comma delimited
// string.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	*t = nil
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '[' {
		var names []Name
		if err := json.Unmarshal(trimmed, &names); err != nil {
			return nil
		}
		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, string(name))
		}
		*t = SplitTags(strings.Join(parts, ","))
		return nil
	}
	var raw string
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil
	}
	*t = SplitTags(raw)
	return nil
}

// SplitTags turns "go, web,,htmx" into ["go" "web" "htmx"].
func SplitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			out = append(out, tag)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Project is a portfolio entry as returned by the projects list endpoint.
type Project struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Category     *string   `json:"category"`
	Technologies []string  `json:"technologies"`
	Image        *string   `json:"image"`
	LiveURL      *string   `json:"live_url"`
	GitHubURL    *string   `json:"github_url"`
	Featured     bool      `json:"featured"`
	CreatedAt    Timestamp `json:"created_at"`
}

type Skill struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Category           string `json:"category"`
	CategoryDisplay    string `json:"category_display"`
	Proficiency        int    `json:"proficiency"`
	ProficiencyDisplay string `json:"proficiency_display"`
	Featured           bool   `json:"featured"`
}

type BlogPost struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Content       string    `json:"content"`
	Excerpt       string    `json:"excerpt"`
	Tags          Tags      `json:"tags"`
	Category      Name      `json:"category"`
	Author        Name      `json:"author"`
	ReadTime      int       `json:"read_time"`
	FeaturedImage *string   `json:"featured_image"`
	CreatedAt     Timestamp `json:"created_at"`
	PublishedAt   Timestamp `json:"published_at"`
}

// Date is the publication time, falling back to creation time.
func (p BlogPost) Date() time.Time {
	if !p.PublishedAt.IsZero() {
		return p.PublishedAt.Time
	}
	return p.CreatedAt.Time
}

// AdminProfile is the site owner's profile. Every field is optional.
type AdminProfile struct {
	FullName        *string `json:"full_name"`
	Bio             *string `json:"bio"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Location        *string `json:"location"`
	GitHubURL       *string `json:"github_url"`
	LinkedInURL     *string `json:"linkedin_url"`
	TwitterURL      *string `json:"twitter_url"`
	WebsiteURL      *string `json:"website_url"`
	ProfilePhotoURL *string `json:"profile_photo_url"`
}

// ContactMessage is built from the contact form and sent once.
type ContactMessage struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Subject string `json:"subject" form:"subject" binding:"required"`
	Message string `json:"message" form:"message" binding:"required"`
	Phone   string `json:"phone,omitempty" form:"phone"`
	Company string `json:"company,omitempty" form:"company"`
}

// SubjectChoice is one option of the contact subject select.
type SubjectChoice struct {
	Value string
	Label string
}

// SubjectChoices mirrors the subjects the contact endpoint accepts.
var SubjectChoices = []SubjectChoice{
	{"general", "General Inquiry"},
	{"project", "Project Collaboration"},
	{"job", "Job Opportunity"},
	{"freelance", "Freelance Work"},
	{"other", "Other"},
}
