package weblog

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ListCategories returns all categories ordered by name.
func (s *Store) ListCategories() ([]Category, error) {
	rows, err := s.db.Query(`SELECT id, name, slug, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var cats []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, storeErr(err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// GetCategoryByID returns a single category by id.
func (s *Store) GetCategoryByID(id string) (Category, error) {
	var c Category
	err := s.db.QueryRow(`SELECT id, name, slug, created_at FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		return Category{}, storeErr(err)
	}
	return c, nil
}

// CreateCategory inserts a new category. A duplicate slug surfaces as
// ErrConflict.
func (s *Store) CreateCategory(c Category) (Category, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT INTO categories (id, name, slug, created_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Slug, c.CreatedAt)
	if err != nil {
		return Category{}, storeErr(err)
	}
	return c, nil
}

// CategoryUpdate names the fields a category update may change.
type CategoryUpdate struct {
	Name *string
	Slug *string
}

// UpdateCategory applies a partial update to the category with the given id.
func (s *Store) UpdateCategory(id string, u CategoryUpdate) (Category, error) {
	var sets []string
	var args []any
	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *u.Name)
	}
	if u.Slug != nil {
		sets = append(sets, "slug = ?")
		args = append(args, *u.Slug)
	}
	if len(sets) == 0 {
		return s.GetCategoryByID(id)
	}
	res, err := s.db.Exec(`UPDATE categories SET `+strings.Join(sets, ", ")+` WHERE id = ?`,
		append(args, id)...)
	if err != nil {
		return Category{}, storeErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Category{}, ErrNotFound
	}
	return s.GetCategoryByID(id)
}

// DeleteCategory removes a category by id.
func (s *Store) DeleteCategory(id string) error {
	res, err := s.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return storeErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountCategories returns the number of categories for the dashboard.
func (s *Store) CountCategories() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&n)
	return n, storeErr(err)
}
