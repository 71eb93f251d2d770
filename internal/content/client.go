// Package content is the client for the portfolio content API.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	skillsPath          = "/api/v1/portfolio/skills/"
	projectsPath        = "/api/v1/portfolio/projects/"
	featuredProjectPath = "/api/v1/portfolio/projects/featured/"
	adminProfilePath    = "/api/v1/portfolio/admin-profile/"
	postsPath           = "/api/v1/blog/posts/"
	recentPostsPath     = "/api/v1/blog/posts/recent/"
	messagesPath        = "/api/v1/contact/messages/"

	maxBodyBytes = 4 << 20
)

// Options configures a Client.
type Options struct {
	BaseURL string
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration
	// RequestsPerSecond of zero or less disables outbound limiting.
	RequestsPerSecond float64
	Transport         http.RoundTripper
	Logger            *slog.Logger
}

// Client talks to the content API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient validates the base URL and builds a client.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimSuffix(strings.TrimSpace(opts.BaseURL), "/")
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid content api url %q", opts.BaseURL)
	}

	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		limiter: limiter,
		logger:  logger.With(slog.String("component", "content-client")),
	}, nil
}

// ListSkills fetches the first page of skills with the given page size.
func (c *Client) ListSkills(ctx context.Context, pageSize int) (*Page[Skill], error) {
	query := url.Values{}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	return getPage[Skill](ctx, c, "list_skills", skillsPath, query)
}

// ListProjects fetches the first page of projects.
func (c *Client) ListProjects(ctx context.Context) (*Page[Project], error) {
	return getPage[Project](ctx, c, "list_projects", projectsPath, nil)
}

// ListFeaturedProjects answers with a bare array or a page; both decode.
func (c *Client) ListFeaturedProjects(ctx context.Context) ([]Project, error) {
	return getList[Project](ctx, c, "list_featured_projects", featuredProjectPath)
}

// AdminProfile fetches the singular site owner profile.
func (c *Client) AdminProfile(ctx context.Context) (*AdminProfile, error) {
	body, err := c.doRequest(ctx, "admin_profile", http.MethodGet, adminProfilePath, nil, nil)
	if err != nil {
		return nil, err
	}
	var profile AdminProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("parse admin profile: %w", errors.Join(ErrMalformed, err))
	}
	return &profile, nil
}

// ListPosts fetches one page of blog posts. Pages start at 1.
func (c *Client) ListPosts(ctx context.Context, page int) (*Page[BlogPost], error) {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	return getPage[BlogPost](ctx, c, "list_posts", postsPath, query)
}

func (c *Client) ListRecentPosts(ctx context.Context) ([]BlogPost, error) {
	return getList[BlogPost](ctx, c, "list_recent_posts", recentPostsPath)
}

// GetPost fetches a single post. A missing slug yields ErrNotFound.
func (c *Client) GetPost(ctx context.Context, slug string) (*BlogPost, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrNotFound
	}
	body, err := c.doRequest(ctx, "get_post", http.MethodGet, postsPath+url.PathEscape(slug)+"/", nil, nil)
	if err != nil {
		return nil, err
	}
	var post BlogPost
	if err := json.Unmarshal(body, &post); err != nil {
		return nil, fmt.Errorf("parse post: %w", errors.Join(ErrMalformed, err))
	}
	if post.Slug == "" && post.Title == "" {
		return nil, ErrNotFound
	}
	return &post, nil
}

// SubmitMessage posts a contact message.
func (c *Client) SubmitMessage(ctx context.Context, msg ContactMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode contact message: %w", err)
	}
	if _, err := c.doRequest(ctx, "submit_message", http.MethodPost, messagesPath, nil, payload); err != nil {
		return err
	}
	return nil
}

func getPage[T any](ctx context.Context, c *Client, op, path string, query url.Values) (*Page[T], error) {
	body, err := c.doRequest(ctx, op, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	page, err := decodePage[T](body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return page, nil
}

func getList[T any](ctx context.Context, c *Client, op, path string) ([]T, error) {
	body, err := c.doRequest(ctx, op, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%s: %w", op, errors.Join(ErrMalformed, err))
		}
		return items, nil
	}
	page, err := decodePage[T](trimmed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return page.Items(), nil
}

func decodePage[T any](body []byte) (*Page[T], error) {
	var page Page[T]
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}
	if page.Results == nil {
		return nil, fmt.Errorf("%w: missing results", ErrMalformed)
	}
	return &page, nil
}

func (c *Client) doRequest(ctx context.Context, op, method, path string, query url.Values, payload []byte) (body []byte, err error) {
	start := time.Now()
	defer func() {
		requestSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
		requestsTotal.WithLabelValues(op, outcomeLabel(err)).Inc()
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &APIError{Operation: op, Err: fmt.Errorf("rate limiter wait: %w", err)}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader = http.NoBody
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &APIError{Operation: op, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Operation: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &APIError{Operation: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &APIError{Operation: op, StatusCode: resp.StatusCode, Err: ErrNotFound}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.logger.Debug("content_api_status",
			slog.String("operation", op),
			slog.Int("status", resp.StatusCode),
		)
		return nil, &APIError{Operation: op, StatusCode: resp.StatusCode}
	}
	return body, nil
}
