package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// PostStatus is the editorial state of a post, independent of soft deletion.
type PostStatus string

// Post statuses.
const (
	StatusDraft     PostStatus = "DRAFT"
	StatusPublished PostStatus = "PUBLISHED"
)

// Valid reports whether s is a supported post status.
func (s PostStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Category groups posts. Categories are soft-deleted: a deleted category is
// hidden from listings and lookups but stays addressable for restore.
type Category struct {
	BaseModel
	Name      string         `gorm:"size:200;not null" json:"name"`
	Slug      string         `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// Deleted reports whether the category is soft-deleted.
func (c *Category) Deleted() bool { return c.DeletedAt.Valid }

// Post is an authored article. The soft-delete axis (DeletedAt) and the
// publish axis (Status, PublishedAt) are orthogonal fields so that no
// combined-state enum is needed.
type Post struct {
	BaseModel
	Title        string         `gorm:"size:300;not null" json:"title"`
	Slug         string         `gorm:"size:320;uniqueIndex;not null" json:"slug"`
	Content      string         `gorm:"type:text" json:"content"`
	Status       PostStatus     `gorm:"size:16;not null;default:DRAFT" json:"status"`
	PublishedAt  *time.Time     `json:"published_at,omitempty"`
	AuthorID     uint           `gorm:"not null;index" json:"author_id"`
	Author       *User          `json:"author,omitempty"`
	CategoryID   *uint          `gorm:"index" json:"category_id,omitempty"`
	Category     *Category      `json:"category,omitempty"`
	CoverMediaID *uint          `json:"cover_media_id,omitempty"`
	CoverMedia   *Media         `json:"cover_media,omitempty"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// Deleted reports whether the post is soft-deleted.
func (p *Post) Deleted() bool { return p.DeletedAt.Valid }

// Page is a standalone content page with a simple published flag.
type Page struct {
	BaseModel
	Title     string         `gorm:"size:300;not null" json:"title"`
	Slug      string         `gorm:"size:320;uniqueIndex;not null" json:"slug"`
	Content   string         `gorm:"type:text" json:"content"`
	Published bool           `gorm:"not null;default:false" json:"published"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// Deleted reports whether the page is soft-deleted.
func (p *Page) Deleted() bool { return p.DeletedAt.Valid }

// Media is an uploaded file. Media records are hard-deleted; they do not
// participate in the soft-delete lifecycle.
type Media struct {
	BaseModel
	Filename   string `gorm:"size:255;not null" json:"filename"`
	StoredName string `gorm:"size:255;uniqueIndex;not null" json:"-"`
	URL        string `gorm:"size:500;not null" json:"url"`
	MimeType   string `gorm:"size:100;not null" json:"mime_type"`
	SizeBytes  int64  `json:"size_bytes"`
}

// CategoryRepository defines the data access interface for categories.
// Lookup methods see active rows only unless noted otherwise.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id uint) (*Category, error)
	GetAnyByID(ctx context.Context, id uint) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Category], error)
	Update(ctx context.Context, category *Category) error
	// SoftDelete marks the category deleted. It fails with a precondition
	// error when active posts still reference the category; the check and
	// the delete run in one transaction.
	SoftDelete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	NameExists(ctx context.Context, name string, excludeID uint) (bool, error)
}

// PostRepository defines the data access interface for posts.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id uint) (*Post, error)
	GetAnyByID(ctx context.Context, id uint) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Post], error)
	Update(ctx context.Context, post *Post) error
	SoftDelete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	CountActiveByCategory(ctx context.Context, categoryID uint) (int64, error)
}

// PageContentRepository defines the data access interface for pages.
type PageContentRepository interface {
	Create(ctx context.Context, page *Page) error
	GetByID(ctx context.Context, id uint) (*Page, error)
	GetAnyByID(ctx context.Context, id uint) (*Page, error)
	GetBySlug(ctx context.Context, slug string) (*Page, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*Page, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Page], error)
	ListPublished(ctx context.Context, req PageRequest) (*PageResult[Page], error)
	Update(ctx context.Context, page *Page) error
	SoftDelete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
}

// MediaRepository defines the data access interface for media records.
type MediaRepository interface {
	Create(ctx context.Context, media *Media) error
	GetByID(ctx context.Context, id uint) (*Media, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Media], error)
	Delete(ctx context.Context, id uint) error
}
