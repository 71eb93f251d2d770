package site

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-site/internal/content"
	"github.com/Zachkp/portfolio-site/internal/view"
)

const sessionCookie = "portfolio_session"

// sessionID returns the visitor's view session, issuing a cookie for new
// visitors.
func (s *Server) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && view.ValidID(id) {
		return id
	}
	id := view.NewID()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, 0, "/", "", s.secure, true)
	return id
}

func (s *Server) buildView(key string) func() view.View {
	return func() view.View {
		switch key {
		case keyHome:
			return view.NewHome(s.baseCtx, s.content, s.logger)
		case keyAbout:
			return view.NewAbout(s.baseCtx, s.content, s.logger)
		case keyPortfolio:
			return view.NewProjectList(s.baseCtx, s.content, s.facet, s.logger)
		case keyBlog:
			return view.NewPostList(s.baseCtx, s.content, s.logger)
		case keyContact:
			return view.NewContactForm(s.baseCtx, s.content, s.logger)
		}
		return view.NewPostDetail(s.baseCtx, s.content, strings.TrimPrefix(key, keyPost), s.logger)
	}
}

// page renders the shell and mounts a fresh view for the route. Entering
// a route always refetches.
func (s *Server) page(r Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := r.Key(c)
		s.sessions.Mount(s.sessionID(c), key, s.buildView(key))
		c.HTML(http.StatusOK, "layout.html", gin.H{
			"title":   r.Title,
			"nav":     navItems(c.Request.URL.Path),
			"viewURL": fragmentURL(key),
		})
	}
}

// attach finds the session's view for key and waits for its first fetch.
// It reports false when the client went away first.
func (s *Server) attach(c *gin.Context, key string) (view.View, bool) {
	ctx := c.Request.Context()
	v := s.sessions.Attach(s.sessionID(c), key, s.buildView(key))
	if err := v.Wait(ctx); err != nil && ctx.Err() != nil {
		return nil, false
	}
	return v, true
}

func (s *Server) fragment(keyFn func(*gin.Context) string, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := s.attach(c, keyFn(c))
		if !ok {
			return
		}
		c.HTML(http.StatusOK, name, fragmentData(v))
	}
}

func fragmentData(v view.View) gin.H {
	switch v := v.(type) {
	case *view.Home:
		return gin.H{"state": v.Snapshot()}
	case *view.About:
		return gin.H{"state": v.Snapshot()}
	case *view.ProjectList:
		return gin.H{"state": v.Snapshot()}
	case *view.PostList:
		return gin.H{"state": v.Snapshot()}
	case *view.ContactForm:
		return gin.H{"state": v.Snapshot()}
	case *view.PostDetail:
		status, post := v.State()
		return gin.H{
			"loading": status == view.PostLoading,
			"found":   status == view.PostLoaded,
			"post":    post,
		}
	}
	return gin.H{}
}

func (s *Server) filterPortfolio(c *gin.Context) {
	v, ok := s.attach(c, keyPortfolio)
	if !ok {
		return
	}
	list, ok := v.(*view.ProjectList)
	if !ok {
		c.Status(http.StatusInternalServerError)
		return
	}
	list.ApplyFilter(strings.TrimPrefix(c.Param("key"), "/"))
	c.HTML(http.StatusOK, "portfolio.html", gin.H{"state": list.Snapshot()})
}

func (s *Server) blogPage(c *gin.Context) {
	v, ok := s.attach(c, keyBlog)
	if !ok {
		return
	}
	list, ok := v.(*view.PostList)
	if !ok {
		c.Status(http.StatusInternalServerError)
		return
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			c.String(http.StatusBadRequest, "invalid page")
			return
		}
		if page != list.CurrentPage() {
			list.GoTo(page)
		}
	}
	c.HTML(http.StatusOK, "blog.html", gin.H{"state": list.Snapshot()})
}

func (s *Server) submitContact(c *gin.Context) {
	v, ok := s.attach(c, keyContact)
	if !ok {
		return
	}
	form, ok := v.(*view.ContactForm)
	if !ok {
		c.Status(http.StatusInternalServerError)
		return
	}

	var msg content.ContactMessage
	if err := c.ShouldBind(&msg); err != nil {
		form.SetValues(msg)
		c.HTML(http.StatusOK, "contact.html", gin.H{"state": form.Snapshot(), "invalid": true})
		return
	}

	if err := form.Submit(msg); errors.Is(err, view.ErrSubmitInFlight) {
		// htmx does not swap 4xx responses, so the busy form stays as is.
		c.Status(http.StatusConflict)
		return
	}
	c.HTML(http.StatusOK, "contact.html", gin.H{"state": form.Snapshot()})
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"view_sessions": s.sessions.Len(),
	})
}

func (s *Server) visitorStats(c *gin.Context) {
	stats, err := s.stats.Stats(c.Request.Context())
	if err != nil {
		s.logger.Error("visitor_stats_failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// privacy is static; it mounts no view.
func (s *Server) privacy(c *gin.Context) {
	c.HTML(http.StatusOK, "layout.html", gin.H{
		"title":   "Privacy Policy",
		"nav":     navItems(c.Request.URL.Path),
		"privacy": true,
	})
}

func (s *Server) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "layout.html", gin.H{
		"title":    "Not Found",
		"nav":      navItems(c.Request.URL.Path),
		"notFound": true,
	})
}
