package media

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/pkg"
)

// Allowed fields for sorting and filtering in List queries.
var (
	allowedSortFields   = []string{"id", "filename", "mime_type", "size_bytes", "created_at"}
	allowedFilterFields = []string{"filename", "mime_type"}
)

// mediaRepository implements domain.MediaRepository using GORM.
type mediaRepository struct {
	db *gorm.DB
}

// NewRepository creates a new MediaRepository backed by the given GORM
// database.
func NewRepository(db *gorm.DB) domain.MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, media *domain.Media) error {
	if err := r.db.WithContext(ctx).Create(media).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *mediaRepository) GetByID(ctx context.Context, id uint) (*domain.Media, error) {
	var media domain.Media
	if err := r.db.WithContext(ctx).First(&media, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &media, nil
}

func (r *mediaRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Media], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.Media{}).
		Scopes(pkg.Filter(req, allowedFilterFields))

	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var items []domain.Media
	if err := base.Scopes(
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&items).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.PageEnvelope(items, total, req.Page, req.PageSize), nil
}

// Delete removes a media record permanently.
func (r *mediaRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Media{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
