package post

import "github.com/simp-lee/cmsbase/internal/domain"

// CreatePostRequest is the payload for creating a post.
type CreatePostRequest struct {
	Title        string            `json:"title" binding:"required,min=1,max=300"`
	Slug         string            `json:"slug" binding:"omitempty,max=320"`
	Content      string            `json:"content" binding:"omitempty"`
	Status       domain.PostStatus `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED"`
	CategoryID   *uint             `json:"category_id" binding:"omitempty,min=1"`
	CoverMediaID *uint             `json:"cover_media_id" binding:"omitempty,min=1"`
}

// UpdatePostRequest is the payload for partially updating a post.
// Absent fields are left unchanged. An explicit zero for category_id or
// cover_media_id clears the reference.
type UpdatePostRequest struct {
	Title        *string            `json:"title" binding:"omitempty,min=1,max=300"`
	Slug         *string            `json:"slug" binding:"omitempty,max=320"`
	Content      *string            `json:"content" binding:"omitempty"`
	Status       *domain.PostStatus `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED"`
	CategoryID   *uint              `json:"category_id" binding:"omitempty"`
	CoverMediaID *uint              `json:"cover_media_id" binding:"omitempty"`
}
