package weblog

import (
	"errors"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "blog.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testPost(slug string, published bool) Post {
	return Post{
		Title:     "Title for " + slug,
		Slug:      slug,
		Excerpt:   "Excerpt for " + slug,
		Content:   "# Heading\n\nBody for " + slug,
		Published: published,
		AuthorID:  "author-1",
	}
}

func TestCreateAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreatePost(testPost("first-post", true))
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("CreatePost should assign an id")
	}
	if created.CreatedAt == "" || created.UpdatedAt == "" {
		t.Fatal("CreatePost should assign timestamps")
	}

	bySlug, err := s.GetPostBySlug("first-post", true)
	if err != nil {
		t.Fatalf("GetPostBySlug failed: %v", err)
	}
	if bySlug.ID != created.ID {
		t.Errorf("GetPostBySlug id = %q, want %q", bySlug.ID, created.ID)
	}
	if bySlug.Title != created.Title || bySlug.Excerpt != created.Excerpt || bySlug.Content != created.Content {
		t.Error("GetPostBySlug returned different field values")
	}

	byID, err := s.GetPostByID(created.ID)
	if err != nil {
		t.Fatalf("GetPostByID failed: %v", err)
	}
	if byID.Slug != "first-post" {
		t.Errorf("GetPostByID slug = %q", byID.Slug)
	}
}

func TestGetPostNotFound(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.GetPostBySlug("missing", false); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPostBySlug(missing) err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetPostByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPostByID(missing) err = %v, want ErrNotFound", err)
	}
}

func TestGetPostBySlugPublishedOnly(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreatePost(testPost("draft-post", false)); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if _, err := s.GetPostBySlug("draft-post", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("publishedOnly lookup of draft err = %v, want ErrNotFound", err)
	}
	got, err := s.GetPostBySlug("draft-post", false)
	if err != nil {
		t.Fatalf("unrestricted lookup failed: %v", err)
	}
	if got.Published {
		t.Error("Published should be false")
	}
}

func TestCreatePostDuplicateSlug(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreatePost(testPost("same-slug", true)); err != nil {
		t.Fatalf("first CreatePost failed: %v", err)
	}
	_, err := s.CreatePost(testPost("same-slug", false))
	if !errors.Is(err, ErrConflict) {
		t.Errorf("second CreatePost err = %v, want ErrConflict", err)
	}
}

func TestUpdatePost(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreatePost(testPost("update-me", false))
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	title := "A New Title"
	published := true
	got, err := s.UpdatePost(created.ID, PostUpdate{Title: &title, Published: &published})
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if got.Title != title {
		t.Errorf("Title = %q, want %q", got.Title, title)
	}
	if !got.Published {
		t.Error("Published should be true after update")
	}
	// Fields not named in the update stay as stored.
	if got.Slug != "update-me" {
		t.Errorf("Slug changed to %q on a title-only update", got.Slug)
	}
	if got.Content != created.Content {
		t.Error("Content changed on a title-only update")
	}
}

func TestUpdatePostDuplicateSlug(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreatePost(testPost("taken", true)); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	other, err := s.CreatePost(testPost("other", true))
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	taken := "taken"
	if _, err := s.UpdatePost(other.ID, PostUpdate{Slug: &taken}); !errors.Is(err, ErrConflict) {
		t.Errorf("UpdatePost to taken slug err = %v, want ErrConflict", err)
	}
}

func TestUpdatePostNotFound(t *testing.T) {
	s := setupTestStore(t)
	title := "x"
	if _, err := s.UpdatePost("missing", PostUpdate{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdatePost(missing) err = %v, want ErrNotFound", err)
	}
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreatePost(testPost("delete-me", true))
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if err := s.DeletePost(created.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if _, err := s.GetPostByID(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("post still present after delete: %v", err)
	}
	if err := s.DeletePost(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeletePost err = %v, want ErrNotFound", err)
	}
}

func TestListPostsPublishedFilter(t *testing.T) {
	s := setupTestStore(t)

	for i, p := range []Post{
		testPost("pub-1", true),
		testPost("draft-1", false),
		testPost("pub-2", true),
	} {
		if _, err := s.CreatePost(p); err != nil {
			t.Fatalf("CreatePost %d failed: %v", i, err)
		}
	}

	published := true
	page, err := s.ListPosts(PostFilter{Published: &published}, 1, 10)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("Total = %d, want 2", page.Total)
	}
	for _, p := range page.Posts {
		if !p.Published {
			t.Errorf("published-only listing returned draft %q", p.Slug)
		}
	}
}

func TestListPostsTitleSearch(t *testing.T) {
	s := setupTestStore(t)

	posts := []Post{
		{Title: "Kapadokya Gezisi", Slug: "kapadokya-gezisi", Excerpt: "e", Content: "c", AuthorID: "a"},
		{Title: "İstanbul Notları", Slug: "istanbul-notlari", Excerpt: "e", Content: "c", AuthorID: "a"},
		{Title: "Another kapadokya story", Slug: "another", Excerpt: "e", Content: "c", AuthorID: "a"},
	}
	for _, p := range posts {
		if _, err := s.CreatePost(p); err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
	}

	page, err := s.ListPosts(PostFilter{TitleContains: "KAPADOKYA"}, 1, 10)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("case-insensitive search Total = %d, want 2", page.Total)
	}
}

func TestListPostsAuthorFilterAndPagination(t *testing.T) {
	s := setupTestStore(t)

	for i := 0; i < 7; i++ {
		p := testPost("mine-"+string(rune('a'+i)), true)
		if _, err := s.CreatePost(p); err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
	}
	other := testPost("theirs", true)
	other.AuthorID = "author-2"
	if _, err := s.CreatePost(other); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	page, err := s.ListPosts(PostFilter{AuthorID: "author-1"}, 1, 5)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if page.Total != 7 {
		t.Errorf("Total = %d, want 7", page.Total)
	}
	if len(page.Posts) != 5 {
		t.Errorf("page 1 size = %d, want 5", len(page.Posts))
	}
	if page.TotalPages() != 2 {
		t.Errorf("TotalPages = %d, want 2", page.TotalPages())
	}

	page2, err := s.ListPosts(PostFilter{AuthorID: "author-1"}, 2, 5)
	if err != nil {
		t.Fatalf("ListPosts page 2 failed: %v", err)
	}
	if len(page2.Posts) != 2 {
		t.Errorf("page 2 size = %d, want 2", len(page2.Posts))
	}
	for _, p := range append(page.Posts, page2.Posts...) {
		if p.AuthorID != "author-1" {
			t.Errorf("listing for author-1 returned post by %q", p.AuthorID)
		}
	}
}

func TestCategoryCRUD(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreateCategory(Category{Name: "Gezi", Slug: "gezi"})
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if created.ID == "" || created.CreatedAt == "" {
		t.Fatal("CreateCategory should assign id and timestamp")
	}

	if _, err := s.CreateCategory(Category{Name: "Gezi 2", Slug: "gezi"}); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate category slug err = %v, want ErrConflict", err)
	}

	name := "Gezi Yazıları"
	got, err := s.UpdateCategory(created.ID, CategoryUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateCategory failed: %v", err)
	}
	if got.Name != name {
		t.Errorf("Name = %q, want %q", got.Name, name)
	}
	if got.Slug != "gezi" {
		t.Errorf("Slug changed to %q on a name-only update", got.Slug)
	}

	cats, err := s.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(cats) != 1 {
		t.Errorf("ListCategories len = %d, want 1", len(cats))
	}

	if err := s.DeleteCategory(created.ID); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}
	if err := s.DeleteCategory(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteCategory err = %v, want ErrNotFound", err)
	}
}

func TestUsers(t *testing.T) {
	s := setupTestStore(t)

	u, err := s.CreateUser("Author@Example.com", "Ayşe Yılmaz", "correct-horse")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if u.Email != "author@example.com" {
		t.Errorf("email not normalized: %q", u.Email)
	}

	if _, err := s.CreateUser("author@example.com", "", "another-pass"); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate email err = %v, want ErrConflict", err)
	}
	if _, err := s.CreateUser("short@example.com", "", "short"); !IsValidation(err) {
		t.Errorf("short password err = %v, want ValidationError", err)
	}

	got, err := s.GetUserByEmail("author@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if !got.CheckPassword("correct-horse") {
		t.Error("CheckPassword should accept the original password")
	}
	if got.CheckPassword("wrong") {
		t.Error("CheckPassword should reject a wrong password")
	}

	if _, err := s.GetUserByEmail("nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserByEmail(missing) err = %v, want ErrNotFound", err)
	}
}
