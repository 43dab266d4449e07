package page

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/cmsbase/internal/pkg"
)

// PageHandler handles HTTP requests for pages.
type PageHandler struct {
	svc Service
}

// NewHandler creates a new page handler.
func NewHandler(svc Service) *PageHandler {
	return &PageHandler{svc: svc}
}

// Create handles POST /pages.
func (h *PageHandler) Create(c *gin.Context) {
	var req CreatePageRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	page, err := h.svc.Create(c.Request.Context(), CreateInput{
		Title:     req.Title,
		Slug:      req.Slug,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, page)
}

// Get handles GET /pages/:id.
func (h *PageHandler) Get(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	page, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, page)
}

// GetBySlug handles GET /pages/slug/:slug. Drafts are visible here, so the
// route requires an editor.
func (h *PageHandler) GetBySlug(c *gin.Context) {
	page, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, page)
}

// GetPublishedBySlug handles GET /pages/published/:slug, the public
// lookup. Unpublished pages read as not found.
func (h *PageHandler) GetPublishedBySlug(c *gin.Context) {
	page, err := h.svc.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, page)
}

// List handles GET /pages.
func (h *PageHandler) List(c *gin.Context) {
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

// ListPublished handles GET /pages/published, the public listing.
func (h *PageHandler) ListPublished(c *gin.Context) {
	req, err := pkg.ParsePageRequest(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	result, err := h.svc.ListPublished(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, result)
}

// Update handles PATCH /pages/:id.
func (h *PageHandler) Update(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdatePageRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	page, err := h.svc.Update(c.Request.Context(), id, UpdateInput{
		Title:     req.Title,
		Slug:      req.Slug,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, page)
}

// Publish handles PATCH /pages/:id/publish.
func (h *PageHandler) Publish(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	page, err := h.svc.Publish(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, page)
}

// Unpublish handles PATCH /pages/:id/unpublish.
func (h *PageHandler) Unpublish(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	page, err := h.svc.Unpublish(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, page)
}

// Delete handles DELETE /pages/:id.
func (h *PageHandler) Delete(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	page, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, page)
}

// Restore handles PATCH /pages/:id/restore.
func (h *PageHandler) Restore(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	page, err := h.svc.Restore(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, page)
}
