package post

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/cmsbase/internal/middleware"
	"github.com/simp-lee/cmsbase/internal/pkg"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	svc Service
}

// NewHandler creates a new post handler.
func NewHandler(svc Service) *PostHandler {
	return &PostHandler{svc: svc}
}

// Create handles POST /posts. The authenticated caller becomes the author.
func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	claims := middleware.CurrentClaims(c)
	post, err := h.svc.Create(c.Request.Context(), claims.UserID, CreateInput{
		Title:        req.Title,
		Slug:         req.Slug,
		Content:      req.Content,
		Status:       req.Status,
		CategoryID:   req.CategoryID,
		CoverMediaID: req.CoverMediaID,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, post)
}

// Get handles GET /posts/:id.
func (h *PostHandler) Get(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	post, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, post)
}

// GetBySlug handles GET /posts/slug/:slug.
func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, post)
}

// List handles GET /posts.
func (h *PostHandler) List(c *gin.Context) {
	req, err := pkg.ParsePageRequest(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, result)
}

// Update handles PATCH /posts/:id.
func (h *PostHandler) Update(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdatePostRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	post, err := h.svc.Update(c.Request.Context(), id, UpdateInput{
		Title:        req.Title,
		Slug:         req.Slug,
		Content:      req.Content,
		Status:       req.Status,
		CategoryID:   req.CategoryID,
		CoverMediaID: req.CoverMediaID,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, post)
}

// Publish handles PATCH /posts/:id/publish.
func (h *PostHandler) Publish(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	post, err := h.svc.Publish(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, post)
}

// Unpublish handles PATCH /posts/:id/unpublish.
func (h *PostHandler) Unpublish(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	post, err := h.svc.Unpublish(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, post)
}

// Delete handles DELETE /posts/:id.
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	post, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, post)
}

// Restore handles PATCH /posts/:id/restore.
func (h *PostHandler) Restore(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	post, err := h.svc.Restore(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, post)
}
