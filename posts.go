package weblog

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const postColumns = `id, created_at, updated_at, title, slug, content, excerpt, cover_image, published, author_id`

func scanPost(row interface{ Scan(...any) error }) (Post, error) {
	var p Post
	var published int
	err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.Title, &p.Slug,
		&p.Content, &p.Excerpt, &p.CoverImage, &published, &p.AuthorID)
	if err != nil {
		return Post{}, err
	}
	p.Published = published == 1
	return p, nil
}

// ListPosts returns one page of posts matching the filter, newest first, plus
// the total match count. Page numbering starts at 1.
func (s *Store) ListPosts(filter PostFilter, page, pageSize int) (PostPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	where, args := postFilterClause(filter)

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts`+where, args...).Scan(&total); err != nil {
		return PostPage{}, storeErr(err)
	}

	// id is a tiebreaker so pages stay stable when timestamps collide.
	query := `SELECT ` + postColumns + ` FROM posts` + where +
		` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`
	rows, err := s.db.Query(query, append(args, pageSize, (page-1)*pageSize)...)
	if err != nil {
		return PostPage{}, storeErr(err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return PostPage{}, storeErr(err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return PostPage{}, storeErr(err)
	}
	return PostPage{Posts: posts, Total: total, Page: page, PageSize: pageSize}, nil
}

func postFilterClause(filter PostFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.AuthorID != "" {
		conds = append(conds, "author_id = ?")
		args = append(args, filter.AuthorID)
	}
	if filter.Published != nil {
		published := 0
		if *filter.Published {
			published = 1
		}
		conds = append(conds, "published = ?")
		args = append(args, published)
	}
	if filter.TitleContains != "" {
		conds = append(conds, "instr(lower(title), lower(?)) > 0")
		args = append(args, filter.TitleContains)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// GetPostBySlug returns a single post by slug. When publishedOnly is set,
// drafts are reported as not found, which is what the public surface wants.
func (s *Store) GetPostBySlug(slug string, publishedOnly bool) (Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = ?`
	if publishedOnly {
		query += ` AND published = 1`
	}
	p, err := scanPost(s.db.QueryRow(query, slug))
	if err != nil {
		return Post{}, storeErr(err)
	}
	return p, nil
}

// GetPostByID returns a single post by id regardless of published status.
func (s *Store) GetPostByID(id string) (Post, error) {
	p, err := scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
	if err != nil {
		return Post{}, storeErr(err)
	}
	return p, nil
}

// CreatePost inserts a new post, assigning id and timestamps, and returns the
// stored record. A duplicate slug surfaces as ErrConflict.
func (s *Store) CreatePost(p Post) (Post, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	published := 0
	if p.Published {
		published = 1
	}
	_, err := s.db.Exec(`INSERT INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CreatedAt, p.UpdatedAt, p.Title, p.Slug, p.Content, p.Excerpt,
		p.CoverImage, published, p.AuthorID)
	if err != nil {
		return Post{}, storeErr(err)
	}
	return p, nil
}

// PostUpdate names the fields an update may change. Nil fields are left as
// stored, so callers update exactly what the edit session touched.
type PostUpdate struct {
	Title      *string
	Slug       *string
	Excerpt    *string
	Content    *string
	CoverImage *string
	Published  *bool
}

// UpdatePost applies a partial update to the post with the given id and
// returns the updated record. Missing id surfaces as ErrNotFound, a duplicate
// slug as ErrConflict.
func (s *Store) UpdatePost(id string, u PostUpdate) (Post, error) {
	var sets []string
	var args []any
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if u.Title != nil {
		set("title", *u.Title)
	}
	if u.Slug != nil {
		set("slug", *u.Slug)
	}
	if u.Excerpt != nil {
		set("excerpt", *u.Excerpt)
	}
	if u.Content != nil {
		set("content", *u.Content)
	}
	if u.CoverImage != nil {
		set("cover_image", *u.CoverImage)
	}
	if u.Published != nil {
		published := 0
		if *u.Published {
			published = 1
		}
		set("published", published)
	}
	if len(sets) == 0 {
		return s.GetPostByID(id)
	}
	set("updated_at", time.Now().UTC().Format(time.RFC3339))

	res, err := s.db.Exec(`UPDATE posts SET `+strings.Join(sets, ", ")+` WHERE id = ?`,
		append(args, id)...)
	if err != nil {
		return Post{}, storeErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Post{}, ErrNotFound
	}
	return s.GetPostByID(id)
}

// DeletePost removes a post by id.
func (s *Store) DeletePost(id string) error {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return storeErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPublishedPosts returns every published post, newest first. The cache
// and the feed/sitemap handlers read through this.
func (s *Store) ListPublishedPosts() ([]Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 ORDER BY created_at DESC`)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, storeErr(err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CountPosts returns total and published post counts for the dashboard.
func (s *Store) CountPosts(authorID string) (total, published int, err error) {
	var args []any
	where := ""
	if authorID != "" {
		where = " WHERE author_id = ?"
		args = append(args, authorID)
	}
	err = s.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(published), 0) FROM posts`+where, args...).
		Scan(&total, &published)
	return total, published, storeErr(err)
}
