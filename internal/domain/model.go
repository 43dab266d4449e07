package domain

import (
	"time"

	"github.com/simp-lee/pagination"
)

// BaseModel is the common base struct for all domain models.
// Soft delete is opt-in per entity via an explicit gorm.DeletedAt field
// rather than embedded here, so that entities without a delete lifecycle
// (users, media) are removed for real.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageRequest holds pagination, sorting, and filtering parameters.
type PageRequest struct {
	Page     int
	PageSize int
	Sort     string
	Filter   map[string]string
}

// Offset returns the number of rows to skip for the requested page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// PageResult is the pagination library's envelope under a domain name, so
// repository and service interfaces stay expressed in domain types.
type PageResult[T any] = pagination.Pagination[T]
