package weblog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cesiha/weblog/form"
	"github.com/cesiha/weblog/markdown"
)

func (a *App) handleAdminDashboard(c echo.Context) error {
	total, published, err := a.Store.CountPosts(CurrentUserID(c))
	if err != nil {
		return err
	}
	categories, err := a.Store.CountCategories()
	if err != nil {
		return err
	}
	stats := DashboardStats{
		Posts:      total,
		Published:  published,
		Drafts:     total - published,
		Categories: categories,
	}
	return Render(c, a.Views.AdminDashboard(stats, CsrfToken(c)))
}

func (a *App) handleAdminPosts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	search := c.QueryParam("search")

	result, err := a.Store.ListPosts(PostFilter{
		AuthorID:      CurrentUserID(c),
		TitleContains: search,
	}, page, a.Config.PageSize)
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminPostList(result, search, CsrfToken(c)))
}

func (a *App) handleAdminPostNew(c echo.Context) error {
	f := form.NewPost(Slugify)
	return Render(c, a.Views.AdminPostForm(f, CsrfToken(c)))
}

func (a *App) handleAdminPostEdit(c echo.Context) error {
	post, err := a.Store.GetPostByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	if post.AuthorID != CurrentUserID(c) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	f := form.EditPost(Slugify, post.ID, post.Title, post.Slug, post.Excerpt,
		post.Content, post.CoverImage, post.Published)
	return Render(c, a.Views.AdminPostForm(f, CsrfToken(c)))
}

// handleAdminPostSave runs the editing workflow for both create and update.
// Validation failures and slug conflicts re-render the form with a message
// instead of losing the author's input.
func (a *App) handleAdminPostSave(c echo.Context) error {
	id := c.FormValue("id")

	var f *form.PostForm
	if id == "" {
		f = form.NewPost(Slugify)
	} else {
		f = form.EditPost(Slugify, id, "", "", "", "", "", false)
	}

	f.SetTitle(c.FormValue("title"))
	if slug := c.FormValue("slug"); slug != "" {
		f.SetSlug(slug)
	}
	f.SetExcerpt(c.FormValue("excerpt"))
	f.SetContent(c.FormValue("content"))
	f.SetCover(c.FormValue("cover_image"))
	f.SetPublished(c.FormValue("published") != "")

	if err := f.Submit(); err != nil {
		return Render(c, a.Views.AdminPostForm(f, CsrfToken(c)))
	}

	var saveErr error
	if f.ID == "" {
		_, saveErr = a.Store.CreatePost(Post{
			Title:      f.Title,
			Slug:       f.Slug,
			Excerpt:    f.Excerpt,
			Content:    f.Content,
			CoverImage: f.CoverImage,
			Published:  f.Published,
			AuthorID:   CurrentUserID(c),
		})
	} else {
		existing, err := a.Store.GetPostByID(f.ID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
			}
			return err
		}
		if existing.AuthorID != CurrentUserID(c) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		_, saveErr = a.Store.UpdatePost(f.ID, PostUpdate{
			Title:      &f.Title,
			Slug:       &f.Slug,
			Excerpt:    &f.Excerpt,
			Content:    &f.Content,
			CoverImage: &f.CoverImage,
			Published:  &f.Published,
		})
	}

	if saveErr != nil {
		switch {
		case errors.Is(saveErr, ErrConflict):
			f.Fail("A post with that slug already exists")
		case errors.Is(saveErr, ErrNotFound):
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		default:
			return saveErr
		}
		f.Resume()
		return Render(c, a.Views.AdminPostForm(f, CsrfToken(c)))
	}

	f.Succeed()
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/posts/")
}

func (a *App) handleAdminPostDelete(c echo.Context) error {
	post, err := a.Store.GetPostByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	if post.AuthorID != CurrentUserID(c) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	if err := a.Store.DeletePost(post.ID); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/posts/")
}

func (a *App) handleAdminCategories(c echo.Context) error {
	categories, err := a.Store.ListCategories()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminCategories(categories, CsrfToken(c)))
}

func (a *App) handleAdminCategoryNew(c echo.Context) error {
	f := form.NewCategory(Slugify)
	return Render(c, a.Views.AdminCategory(f, CsrfToken(c)))
}

func (a *App) handleAdminCategoryEdit(c echo.Context) error {
	cat, err := a.Store.GetCategoryByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	f := form.EditCategory(Slugify, cat.ID, cat.Name, cat.Slug)
	return Render(c, a.Views.AdminCategory(f, CsrfToken(c)))
}

func (a *App) handleAdminCategorySave(c echo.Context) error {
	id := c.FormValue("id")

	var f *form.CategoryForm
	if id == "" {
		f = form.NewCategory(Slugify)
	} else {
		f = form.EditCategory(Slugify, id, "", "")
	}

	f.SetName(c.FormValue("name"))
	if slug := c.FormValue("slug"); slug != "" {
		f.SetSlug(slug)
	}

	if err := f.Submit(); err != nil {
		return Render(c, a.Views.AdminCategory(f, CsrfToken(c)))
	}

	var saveErr error
	if f.ID == "" {
		_, saveErr = a.Store.CreateCategory(Category{Name: f.Name, Slug: f.Slug})
	} else {
		_, saveErr = a.Store.UpdateCategory(f.ID, CategoryUpdate{Name: &f.Name, Slug: &f.Slug})
	}

	if saveErr != nil {
		switch {
		case errors.Is(saveErr, ErrConflict):
			f.Fail("A category with that slug already exists")
		case errors.Is(saveErr, ErrNotFound):
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		default:
			return saveErr
		}
		f.Resume()
		return Render(c, a.Views.AdminCategory(f, CsrfToken(c)))
	}

	f.Succeed()
	return c.Redirect(http.StatusSeeOther, "/admin/categories/")
}

// handlePreview renders the editor's markdown with the restricted preview
// pipeline and returns the HTML fragment for live display.
func (a *App) handlePreview(c echo.Context) error {
	return c.HTML(http.StatusOK, markdown.Preview(c.FormValue("content")))
}

func (a *App) handleAdminCategoryDelete(c echo.Context) error {
	if err := a.Store.DeleteCategory(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/categories/")
}
