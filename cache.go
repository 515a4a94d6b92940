package weblog

import (
	"sync"
	"time"
)

// PostCache is an in-memory cache of published posts with TTL. It backs the
// home page, the feed, the sitemap, and public slug lookups; every admin
// write invalidates it.
type PostCache struct {
	mu      sync.RWMutex
	posts   []Post
	bySlug  map[string]Post
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.bySlug = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPublishedPosts()
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []Post{}
	}
	bySlug := make(map[string]Post, len(posts))
	for _, p := range posts {
		bySlug[p.Slug] = p
	}
	c.posts = posts
	c.bySlug = bySlug
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns the cached posts after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]Post, map[string]Post, error) {
	c.mu.RLock()
	if c.valid() {
		posts, bySlug := c.posts, c.bySlug
		c.mu.RUnlock()
		return posts, bySlug, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.posts, c.bySlug, nil
}

// ListPublished returns every published post, newest first.
func (c *PostCache) ListPublished() ([]Post, error) {
	posts, _, err := c.ensureLoaded()
	return posts, err
}

// Recent returns up to n of the newest published posts.
func (c *PostCache) Recent(n int) ([]Post, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if len(posts) > n {
		posts = posts[:n]
	}
	return posts, nil
}

// GetPublished returns a single published post by slug.
func (c *PostCache) GetPublished(slug string) (Post, error) {
	_, bySlug, err := c.ensureLoaded()
	if err != nil {
		return Post{}, err
	}
	p, ok := bySlug[slug]
	if !ok {
		return Post{}, ErrNotFound
	}
	return p, nil
}
