// Package site is the navigation shell and the HTTP surface of the
// portfolio. Pages render the shell immediately; each view body is fetched
// by the browser as an htmx fragment once the view has settled.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Zachkp/portfolio-site/internal/logging"
	"github.com/Zachkp/portfolio-site/internal/view"
	"github.com/Zachkp/portfolio-site/internal/visitors"
)

// ContentAPI is every read and write the views make against the backend.
type ContentAPI interface {
	view.HomeSource
	view.ProjectSource
	view.PostSource
	view.MessageSender
}

// StatsSource serves the visitor aggregates.
type StatsSource interface {
	Stats(ctx context.Context) (*visitors.Stats, error)
}

// Options configures a Server. Tracker and Stats are optional.
type Options struct {
	Content     ContentAPI
	Sessions    *view.Sessions
	Facet       view.Facet
	Tracker     *visitors.Tracker
	Stats       StatsSource
	Logger      *slog.Logger
	Production  bool
	Tracing     bool
	ServiceName string
	// BaseContext parents every mounted view; cancelling it unmounts them.
	BaseContext context.Context
}

type Server struct {
	engine   *gin.Engine
	content  ContentAPI
	sessions *view.Sessions
	facet    view.Facet
	stats    StatsSource
	logger   *slog.Logger
	baseCtx  context.Context
	secure   bool
}

func New(opts Options) (*Server, error) {
	if opts.Content == nil || opts.Sessions == nil {
		return nil, fmt.Errorf("site: content api and sessions are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	baseCtx := opts.BaseContext
	if baseCtx == nil {
		baseCtx = context.Background()
	}

	if opts.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if opts.Tracing {
		serviceName := strings.TrimSpace(opts.ServiceName)
		if serviceName == "" {
			serviceName = "portfolio-site"
		}
		engine.Use(otelgin.Middleware(serviceName))
		logger.Info("otel_http_middleware_enabled", slog.String("service", serviceName))
	}
	engine.Use(gin.Recovery())
	engine.Use(logging.RequestLogger(logger))
	// Prometheus negotiates its own encoding.
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	if opts.Tracker != nil {
		engine.Use(opts.Tracker.Middleware())
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tmpl)

	assets, err := staticFiles()
	if err != nil {
		return nil, err
	}
	engine.StaticFS("/static", http.FS(assets))

	s := &Server{
		engine:   engine,
		content:  opts.Content,
		sessions: opts.Sessions,
		facet:    opts.Facet,
		stats:    opts.Stats,
		logger:   logger.With(slog.String("component", "site")),
		baseCtx:  baseCtx,
		secure:   opts.Production,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) setupRoutes() {
	for _, r := range Routes {
		s.engine.GET(r.Path, s.page(r))
	}

	views := s.engine.Group("/views")
	{
		views.GET("/home", s.fragment(fixedKey(keyHome), "home.html"))
		views.GET("/about", s.fragment(fixedKey(keyAbout), "about.html"))
		views.GET("/portfolio", s.fragment(fixedKey(keyPortfolio), "portfolio.html"))
		views.GET("/portfolio/filter/*key", s.filterPortfolio)
		views.GET("/blog", s.blogPage)
		views.GET("/blog/:slug", s.fragment(func(c *gin.Context) string {
			return postKey(c.Param("slug"))
		}, "post.html"))
		views.GET("/contact", s.fragment(fixedKey(keyContact), "contact.html"))
		views.POST("/contact", s.submitContact)
	}

	s.engine.GET("/privacy", s.privacy)
	s.engine.GET("/healthz", s.healthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if s.stats != nil {
		s.engine.GET("/stats", s.visitorStats)
	}

	s.engine.NoRoute(s.notFound)
}
