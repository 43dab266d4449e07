package pkg

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/simp-lee/cmsbase/internal/domain"
)

// softDeletable is the pointer-side constraint for entities that carry a
// gorm.DeletedAt field.
type softDeletable interface {
	Deleted() bool
}

// SoftDelete marks the entity with the given id as deleted. GORM's default
// scope only touches active rows, so an id that is missing or already
// deleted yields not-found. The active/deleted distinction is re-checked
// at delete time, never cached.
func SoftDelete[T any](ctx context.Context, db *gorm.DB, id uint) error {
	var model T
	result := db.WithContext(ctx).Delete(&model, id)
	if result.Error != nil {
		return MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore revives a soft-deleted entity. It fails with not-found when no row
// with the id exists at all, and with a precondition error when the row is
// not currently deleted.
func Restore[T any, PT interface {
	*T
	softDeletable
}](ctx context.Context, db *gorm.DB, id uint) error {
	var entity T
	if err := db.WithContext(ctx).Unscoped().First(&entity, id).Error; err != nil {
		return MapDBError(err)
	}
	if !PT(&entity).Deleted() {
		return domain.NewAppError(domain.CodePreconditionFailed, "not deleted", nil)
	}
	if err := db.WithContext(ctx).Unscoped().Model(&entity).Update("deleted_at", nil).Error; err != nil {
		return MapDBError(err)
	}
	return nil
}

// SlugTaken reports whether any row of model T (deleted rows included, to
// match the unique index) holds the slug. excludeID, when non-zero, ignores
// the entity's own row so updates don't collide with themselves.
func SlugTaken[T any](ctx context.Context, db *gorm.DB, slug string, excludeID uint) (bool, error) {
	var model T
	query := db.WithContext(ctx).Unscoped().Model(&model).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, MapDBError(err)
	}
	return count > 0, nil
}

// MapDBError converts GORM errors to domain errors. Store internals
// (driver messages, constraint names) stay wrapped and are never surfaced
// in the client-facing message.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, "already exists", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations by examining the
// error message. This is needed because not all GORM dialectors translate
// driver-level errors to gorm.ErrDuplicatedKey (e.g. the pure-Go SQLite driver).
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
