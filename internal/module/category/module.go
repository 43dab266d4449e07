package category

import (
	"net/http"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/middleware"
)

// CategoryModule implements the app.Module interface for the category domain.
type CategoryModule struct {
	handler *CategoryHandler
}

// NewModule creates a new CategoryModule with the given handler.
// Panics if h is nil.
func NewModule(h *CategoryHandler) *CategoryModule {
	if h == nil {
		panic("category.NewModule: handler must not be nil")
	}
	return &CategoryModule{handler: h}
}

// Routes declares the category API routes. Reads are public; every mutation
// requires an editor or admin.
func (m *CategoryModule) Routes() []middleware.Route {
	editors := []domain.Role{domain.RoleAdmin, domain.RoleEditor}
	return []middleware.Route{
		{Method: http.MethodPost, Path: "/categories", Roles: editors, Handler: m.handler.Create},
		{Method: http.MethodGet, Path: "/categories", Public: true, Handler: m.handler.List},
		{Method: http.MethodGet, Path: "/categories/slug/:slug", Public: true, Handler: m.handler.GetBySlug},
		{Method: http.MethodGet, Path: "/categories/:id", Public: true, Handler: m.handler.Get},
		{Method: http.MethodPatch, Path: "/categories/:id", Roles: editors, Handler: m.handler.Update},
		{Method: http.MethodDelete, Path: "/categories/:id", Roles: editors, Handler: m.handler.Delete},
		{Method: http.MethodPatch, Path: "/categories/:id/restore", Roles: editors, Handler: m.handler.Restore},
	}
}
