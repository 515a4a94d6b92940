package weblog

import (
	"time"

	"github.com/cesiha/weblog/storage"
)

// SiteConfig holds all configuration for a weblog site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/blog.db")

	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS
	SignupEnabled bool   // Expose the sign-up form (default off; seed via CLI)

	PostCacheTTL  time.Duration // Published-post cache TTL (default 5min)
	PageSize      int           // Posts per listing page (default 5)
	CoverMaxWidth int           // Cover images wider than this are downscaled (default 1600, 0 disables)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.PageSize == 0 {
		c.PageSize = 5
	}
	if c.CoverMaxWidth == 0 {
		c.CoverMaxWidth = 1600
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithObjectStore replaces the default disk-backed image bucket, e.g. with an
// S3-style backend.
func WithObjectStore(store storage.ObjectStore) Option {
	return func(a *App) {
		a.objects = store
	}
}
