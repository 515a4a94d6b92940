package weblog

// Post is the core content record. Timestamps are RFC 3339 strings as stored.
type Post struct {
	ID         string
	Title      string
	Slug       string
	Excerpt    string
	Content    string
	CoverImage string // public URL, empty when the post has no cover
	Published  bool
	AuthorID   string
	CreatedAt  string
	UpdatedAt  string
}

// Category groups posts. The post_categories join table is declared in the
// schema but no operation writes it yet.
type Category struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt string
}

// User is an author account for the admin panel.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    string
}

// PostFilter selects posts for listing. Zero fields are ignored.
type PostFilter struct {
	AuthorID      string
	Published     *bool
	TitleContains string // case-insensitive substring match on title
}

// PostPage is one page of a post listing plus the unpaginated total.
type PostPage struct {
	Posts    []Post
	Total    int
	Page     int
	PageSize int
}

// TotalPages returns the number of pages the listing spans.
func (p PostPage) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// DashboardStats feeds the admin dashboard view.
type DashboardStats struct {
	Posts      int
	Published  int
	Drafts     int
	Categories int
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
