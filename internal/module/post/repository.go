package post

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/pkg"
)

// Allowed fields for sorting and filtering in List queries.
var (
	allowedSortFields   = []string{"id", "title", "slug", "status", "published_at", "created_at", "updated_at"}
	allowedFilterFields = []string{"title", "slug", "status", "author_id", "category_id"}
)

// postRepository implements domain.PostRepository using GORM.
type postRepository struct {
	db *gorm.DB
}

// NewRepository creates a new PostRepository backed by the given GORM database.
func NewRepository(db *gorm.DB) domain.PostRepository {
	return &postRepository{db: db}
}

// withAssociations preloads the author, category, and cover media of a post.
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Category").Preload("CoverMedia")
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return pkg.MapDBError(err)
	}
	// Reload so the caller gets the hydrated entity as stored.
	if err := r.db.WithContext(ctx).Scopes(withAssociations).First(post, post.ID).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	if err := r.db.WithContext(ctx).Scopes(withAssociations).First(&post, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &post, nil
}

// GetAnyByID retrieves a post regardless of its deletion state.
func (r *postRepository) GetAnyByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	if err := r.db.WithContext(ctx).Unscoped().Scopes(withAssociations).First(&post, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &post, nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	var post domain.Post
	if err := r.db.WithContext(ctx).Scopes(withAssociations).Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Post], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.Post{}).
		Scopes(pkg.Filter(req, allowedFilterFields))

	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var posts []domain.Post
	if err := base.Scopes(
		withAssociations,
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&posts).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.PageEnvelope(posts, total, req.Page, req.PageSize), nil
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *postRepository) SoftDelete(ctx context.Context, id uint) error {
	return pkg.SoftDelete[domain.Post](ctx, r.db, id)
}

func (r *postRepository) Restore(ctx context.Context, id uint) error {
	return pkg.Restore[domain.Post](ctx, r.db, id)
}

// SlugExists reports whether the slug is taken by any post row, deleted
// rows included, matching the unique index on the column.
func (r *postRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return pkg.SlugTaken[domain.Post](ctx, r.db, slug, excludeID)
}

// CountActiveByCategory counts active posts referencing the category.
func (r *postRepository) CountActiveByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Post{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, pkg.MapDBError(err)
	}
	return count, nil
}
