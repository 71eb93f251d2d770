package site

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Route is one entry of the navigation shell. Every route renders the
// shell first; Key names the view mounted for it and the fragment the
// browser fetches under /views/.
type Route struct {
	Path  string
	Title string
	Nav   bool
	Key   func(c *gin.Context) string
}

func fixedKey(key string) func(*gin.Context) string {
	return func(*gin.Context) string { return key }
}

const (
	keyHome      = "home"
	keyAbout     = "about"
	keyPortfolio = "portfolio"
	keyBlog      = "blog"
	keyContact   = "contact"
	keyPost      = "blog/"
)

// Routes is the site's route table in navbar order.
var Routes = []Route{
	{Path: "/", Title: "Home", Nav: true, Key: fixedKey(keyHome)},
	{Path: "/about", Title: "About", Nav: true, Key: fixedKey(keyAbout)},
	{Path: "/portfolio", Title: "Portfolio", Nav: true, Key: fixedKey(keyPortfolio)},
	{Path: "/blog", Title: "Blog", Nav: true, Key: fixedKey(keyBlog)},
	{Path: "/blog/:slug", Title: "Blog", Key: func(c *gin.Context) string {
		return postKey(c.Param("slug"))
	}},
	{Path: "/contact", Title: "Contact", Nav: true, Key: fixedKey(keyContact)},
}

func postKey(slug string) string { return keyPost + slug }

// NavItem is a rendered navbar link.
type NavItem struct {
	Path   string
	Title  string
	Active bool
}

// navItems marks the link for path active. /blog stays active on post
// pages.
func navItems(path string) []NavItem {
	var items []NavItem
	for _, r := range Routes {
		if !r.Nav {
			continue
		}
		active := r.Path == path
		if r.Path != "/" && strings.HasPrefix(path, r.Path+"/") {
			active = true
		}
		items = append(items, NavItem{Path: r.Path, Title: r.Title, Active: active})
	}
	return items
}
