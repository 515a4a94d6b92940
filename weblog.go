// Package weblog is a blog publishing engine built with Go, Echo, and templ.
// It provides a public blog, an authenticated admin panel for posts and
// categories, markdown rendering, media uploads, RSS, and a sitemap.
//
// Users provide their own templ templates via the ViewFuncs struct, and
// weblog handles all the handler logic, middleware, and database operations.
package weblog

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/cesiha/weblog/form"
	"github.com/cesiha/weblog/storage"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	Home            func(posts []Post, siteURL string) templ.Component
	Blog            func(page PostPage, search string, siteURL string) templ.Component
	Post            func(post Post, contentHTML string, readingTime int, siteURL string) templ.Component
	Login           func(showSignup bool, errMsg string, csrfToken string) templ.Component
	AdminDashboard  func(stats DashboardStats, csrfToken string) templ.Component
	AdminPostList   func(page PostPage, search string, csrfToken string) templ.Component
	AdminPostForm   func(f *form.PostForm, csrfToken string) templ.Component
	AdminCategories func(categories []Category, csrfToken string) templ.Component
	AdminCategory   func(f *form.CategoryForm, csrfToken string) templ.Component
	NotFound        func() templ.Component
	ServerError     func() templ.Component
}

// App is the central weblog application. It wires together the store,
// cache, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs

	loginLimiter *LoginLimiter
	objects      storage.ObjectStore
	uploader     *storage.Uploader
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new weblog App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, middleware, routes, and starts the server.
func (a *App) Start() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("weblog: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("weblog: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.objects == nil {
		a.objects = &storage.DiskBucket{
			Root:    filepath.Join(a.staticDir, "images"),
			BaseURL: a.Config.URL + "/public/images",
		}
	}
	a.uploader = storage.NewUploader(a.objects)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// User's static assets
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:slug/", a.handlePost)

	// Auth
	e.GET("/login/", a.handleLoginPage)
	e.POST("/login/", a.handleLogin)
	e.POST("/signup/", a.handleSignup)
	e.POST("/logout/", handleLogout)

	// Admin routes
	admin := e.Group("/admin", a.requireAuth)
	admin.GET("/", a.handleAdminDashboard)
	admin.GET("/posts/", a.handleAdminPosts)
	admin.GET("/posts/new/", a.handleAdminPostNew)
	admin.GET("/posts/:id/", a.handleAdminPostEdit)
	admin.POST("/posts/save/", a.handleAdminPostSave)
	admin.POST("/posts/:id/delete/", a.handleAdminPostDelete)
	admin.GET("/categories/", a.handleAdminCategories)
	admin.GET("/categories/new/", a.handleAdminCategoryNew)
	admin.GET("/categories/:id/", a.handleAdminCategoryEdit)
	admin.POST("/categories/save/", a.handleAdminCategorySave)
	admin.POST("/categories/:id/delete/", a.handleAdminCategoryDelete)
	admin.POST("/preview/", a.handlePreview)
	admin.POST("/upload/", a.handleUpload)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("weblog: required environment variable %s is not set", key)
	}
	return v
}
