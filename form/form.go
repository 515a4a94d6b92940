// Package form models the admin editing workflow for posts and
// categories: a small state machine that tracks field values,
// validates on submit and carries error messages back to the view.
package form

import "errors"

// State is the lifecycle position of a form.
type State int

const (
	Idle State = iota
	Editing
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrSlugRequired    = errors.New("slug is required")
	ErrSlugInvalid     = errors.New("slug may only contain lowercase letters, digits and hyphens")
	ErrExcerptRequired = errors.New("excerpt is required")
	ErrContentRequired = errors.New("content is required")
	ErrNameRequired    = errors.New("name is required")
	ErrNotEditable     = errors.New("form is not in an editable state")
)

// PostForm carries the fields of a post being created or edited.
// While the form represents a new post (empty ID) the slug follows
// the title; once the post exists the slug only changes by hand.
type PostForm struct {
	State      State
	ID         string
	Title      string
	Slug       string
	Excerpt    string
	Content    string
	CoverImage string
	Published  bool
	Message    string

	slugify func(string) string
}

// NewPost returns a form for a post that does not exist yet.
func NewPost(slugify func(string) string) *PostForm {
	return &PostForm{State: Editing, slugify: slugify}
}

// EditPost returns a form pre-filled from an existing post.
func EditPost(slugify func(string) string, id, title, slug, excerpt, content, cover string, published bool) *PostForm {
	return &PostForm{
		State:      Editing,
		ID:         id,
		Title:      title,
		Slug:       slug,
		Excerpt:    excerpt,
		Content:    content,
		CoverImage: cover,
		Published:  published,
		slugify:    slugify,
	}
}

// SetTitle updates the title. For new posts the slug is re-derived
// from the title; existing posts keep their slug.
func (f *PostForm) SetTitle(title string) {
	f.Title = title
	if f.ID == "" && f.slugify != nil {
		f.Slug = f.slugify(title)
	}
}

func (f *PostForm) SetSlug(slug string)       { f.Slug = slug }
func (f *PostForm) SetExcerpt(excerpt string) { f.Excerpt = excerpt }
func (f *PostForm) SetContent(content string) { f.Content = content }
func (f *PostForm) SetCover(url string)       { f.CoverImage = url }
func (f *PostForm) SetPublished(p bool)       { f.Published = p }

// Submit validates the form and, if valid, moves it to Submitting.
// On a validation error the form stays in Editing with Message set.
func (f *PostForm) Submit() error {
	if f.State != Editing && f.State != Idle {
		return ErrNotEditable
	}
	if err := f.validate(); err != nil {
		f.State = Editing
		f.Message = err.Error()
		return err
	}
	f.State = Submitting
	f.Message = ""
	return nil
}

func (f *PostForm) validate() error {
	if f.Title == "" {
		return ErrTitleRequired
	}
	if f.Slug == "" {
		return ErrSlugRequired
	}
	if f.slugify != nil && f.slugify(f.Slug) != f.Slug {
		return ErrSlugInvalid
	}
	if f.Excerpt == "" {
		return ErrExcerptRequired
	}
	if f.Content == "" {
		return ErrContentRequired
	}
	return nil
}

// Fail records a submission failure and returns the form to a state
// the view can re-render with the message shown.
func (f *PostForm) Fail(msg string) {
	f.State = Failed
	f.Message = msg
}

// Resume moves a failed form back to Editing so the author can fix
// the problem and try again.
func (f *PostForm) Resume() {
	f.State = Editing
}

// Succeed marks the submission as completed.
func (f *PostForm) Succeed() {
	f.State = Succeeded
	f.Message = ""
}

// CategoryForm is the editing workflow for a category.
type CategoryForm struct {
	State   State
	ID      string
	Name    string
	Slug    string
	Message string

	slugify func(string) string
}

func NewCategory(slugify func(string) string) *CategoryForm {
	return &CategoryForm{State: Editing, slugify: slugify}
}

func EditCategory(slugify func(string) string, id, name, slug string) *CategoryForm {
	return &CategoryForm{State: Editing, ID: id, Name: name, Slug: slug, slugify: slugify}
}

// SetName updates the name, re-deriving the slug for new categories.
func (f *CategoryForm) SetName(name string) {
	f.Name = name
	if f.ID == "" && f.slugify != nil {
		f.Slug = f.slugify(name)
	}
}

func (f *CategoryForm) SetSlug(slug string) { f.Slug = slug }

func (f *CategoryForm) Submit() error {
	if f.State != Editing && f.State != Idle {
		return ErrNotEditable
	}
	if f.Name == "" {
		f.Message = ErrNameRequired.Error()
		return ErrNameRequired
	}
	if f.Slug == "" {
		f.Message = ErrSlugRequired.Error()
		return ErrSlugRequired
	}
	if f.slugify != nil && f.slugify(f.Slug) != f.Slug {
		f.Message = ErrSlugInvalid.Error()
		return ErrSlugInvalid
	}
	f.State = Submitting
	f.Message = ""
	return nil
}

func (f *CategoryForm) Fail(msg string) {
	f.State = Failed
	f.Message = msg
}

func (f *CategoryForm) Resume() {
	f.State = Editing
}

func (f *CategoryForm) Succeed() {
	f.State = Succeeded
	f.Message = ""
}
