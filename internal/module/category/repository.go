package category

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/pkg"
)

// Allowed fields for sorting and filtering in List queries.
var (
	allowedSortFields   = []string{"id", "name", "slug", "created_at", "updated_at"}
	allowedFilterFields = []string{"name", "slug"}
)

// categoryRepository implements domain.CategoryRepository using GORM.
// GORM's default scope hides soft-deleted rows from every query except the
// explicitly Unscoped ones.
type categoryRepository struct {
	db *gorm.DB
}

// NewRepository creates a new CategoryRepository backed by the given GORM database.
func NewRepository(db *gorm.DB) domain.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &category, nil
}

// GetAnyByID retrieves a category regardless of its deletion state.
func (r *categoryRepository) GetAnyByID(ctx context.Context, id uint) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.WithContext(ctx).Unscoped().First(&category, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Category], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.Category{}).
		Scopes(pkg.Filter(req, allowedFilterFields))

	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var categories []domain.Category
	if err := base.Scopes(
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&categories).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.PageEnvelope(categories, total, req.Page, req.PageSize), nil
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// SoftDelete marks the category deleted after verifying, inside the same
// transaction, that no active post still references it. The count runs at
// delete time so a post created after the category was loaded still blocks
// the delete.
func (r *categoryRepository) SoftDelete(ctx context.Context, id uint) error {
	return pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var category domain.Category
		if err := tx.First(&category, id).Error; err != nil {
			return pkg.MapDBError(err)
		}

		var posts int64
		if err := tx.Model(&domain.Post{}).Where("category_id = ?", id).Count(&posts).Error; err != nil {
			return pkg.MapDBError(err)
		}
		if posts > 0 {
			return domain.NewAppError(domain.CodePreconditionFailed, "cannot delete category with associated posts", nil)
		}

		return pkg.SoftDelete[domain.Category](ctx, tx, id)
	})
}

// Restore revives a soft-deleted category after verifying, inside the same
// transaction, that no active category has claimed its name in the meantime.
// Deleting a category releases the name, so the check runs at restore time
// against the row's stored name.
func (r *categoryRepository) Restore(ctx context.Context, id uint) error {
	return pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var category domain.Category
		if err := tx.Unscoped().First(&category, id).Error; err != nil {
			return pkg.MapDBError(err)
		}

		var holders int64
		if err := tx.Model(&domain.Category{}).
			Where("LOWER(name) = LOWER(?)", category.Name).
			Where("id <> ?", id).
			Count(&holders).Error; err != nil {
			return pkg.MapDBError(err)
		}
		if holders > 0 {
			return domain.NewAppError(domain.CodeAlreadyExists, "category name already exists", nil)
		}

		return pkg.Restore[domain.Category](ctx, tx, id)
	})
}

// SlugExists reports whether the slug is taken by any category row,
// deleted rows included, matching the unique index on the column.
func (r *categoryRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return pkg.SlugTaken[domain.Category](ctx, r.db, slug, excludeID)
}

// NameExists reports whether an active category already uses the name.
// The comparison is case-insensitive.
func (r *categoryRepository) NameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&domain.Category{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, pkg.MapDBError(err)
	}
	return count > 0, nil
}
