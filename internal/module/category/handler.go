package category

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/cmsbase/internal/pkg"
)

// CategoryHandler handles REST API requests for the category resource.
type CategoryHandler struct {
	svc Service
}

// NewHandler creates a new CategoryHandler with the given service.
func NewHandler(svc Service) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// Create handles POST /api/v1/categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	category, err := h.svc.Create(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, category)
}

// Get handles GET /api/v1/categories/:id.
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	category, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, category)
}

// GetBySlug handles GET /api/v1/categories/slug/:slug.
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	category, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, category)
}

// List handles GET /api/v1/categories.
func (h *CategoryHandler) List(c *gin.Context) {
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

// Update handles PATCH /api/v1/categories/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdateCategoryRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	category, err := h.svc.Update(c.Request.Context(), id, UpdateInput{Name: req.Name, Slug: req.Slug})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, category)
}

// Delete handles DELETE /api/v1/categories/:id.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	category, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, category)
}

// Restore handles PATCH /api/v1/categories/:id/restore.
func (h *CategoryHandler) Restore(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	category, err := h.svc.Restore(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, category)
}
