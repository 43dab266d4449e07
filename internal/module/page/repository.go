package page

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/pkg"
)

// Allowed fields for sorting and filtering in List queries.
var (
	allowedSortFields   = []string{"id", "title", "slug", "published", "created_at", "updated_at"}
	allowedFilterFields = []string{"title", "slug", "published"}
)

// pageRepository implements domain.PageContentRepository using GORM.
type pageRepository struct {
	db *gorm.DB
}

// NewRepository creates a new PageContentRepository backed by the given
// GORM database.
func NewRepository(db *gorm.DB) domain.PageContentRepository {
	return &pageRepository{db: db}
}

func (r *pageRepository) Create(ctx context.Context, page *domain.Page) error {
	if err := r.db.WithContext(ctx).Create(page).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *pageRepository) GetByID(ctx context.Context, id uint) (*domain.Page, error) {
	var page domain.Page
	if err := r.db.WithContext(ctx).First(&page, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &page, nil
}

// GetAnyByID retrieves a page regardless of its deletion state.
func (r *pageRepository) GetAnyByID(ctx context.Context, id uint) (*domain.Page, error) {
	var page domain.Page
	if err := r.db.WithContext(ctx).Unscoped().First(&page, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &page, nil
}

func (r *pageRepository) GetBySlug(ctx context.Context, slug string) (*domain.Page, error) {
	var page domain.Page
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&page).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &page, nil
}

// GetPublishedBySlug retrieves a page by slug, visible only when published.
func (r *pageRepository) GetPublishedBySlug(ctx context.Context, slug string) (*domain.Page, error) {
	var page domain.Page
	if err := r.db.WithContext(ctx).Where("slug = ? AND published = ?", slug, true).First(&page).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &page, nil
}

func (r *pageRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Page], error) {
	return r.list(ctx, req, r.db.WithContext(ctx).Model(&domain.Page{}))
}

// ListPublished retrieves a page of published pages only.
func (r *pageRepository) ListPublished(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Page], error) {
	return r.list(ctx, req, r.db.WithContext(ctx).Model(&domain.Page{}).Where("published = ?", true))
}

func (r *pageRepository) list(ctx context.Context, req domain.PageRequest, base *gorm.DB) (*domain.PageResult[domain.Page], error) {
	base = base.Scopes(pkg.Filter(req, allowedFilterFields))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var pages []domain.Page
	if err := base.Scopes(
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&pages).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.PageEnvelope(pages, total, req.Page, req.PageSize), nil
}

func (r *pageRepository) Update(ctx context.Context, page *domain.Page) error {
	if err := r.db.WithContext(ctx).Save(page).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *pageRepository) SoftDelete(ctx context.Context, id uint) error {
	return pkg.SoftDelete[domain.Page](ctx, r.db, id)
}

func (r *pageRepository) Restore(ctx context.Context, id uint) error {
	return pkg.Restore[domain.Page](ctx, r.db, id)
}

// SlugExists reports whether the slug is taken by any page row, deleted
// rows included, matching the unique index on the column.
func (r *pageRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return pkg.SlugTaken[domain.Page](ctx, r.db, slug, excludeID)
}
