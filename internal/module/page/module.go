package page

import (
	"net/http"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/middleware"
)

// PageModule implements the app.Module interface for the page domain.
type PageModule struct {
	handler *PageHandler
}

// NewModule creates a new PageModule with the given handler.
// Panics if h is nil.
func NewModule(h *PageHandler) *PageModule {
	if h == nil {
		panic("page.NewModule: handler must not be nil")
	}
	return &PageModule{handler: h}
}

// Routes declares the page API routes. Published lookups are public;
// everything that can see drafts requires an editor or admin.
func (m *PageModule) Routes() []middleware.Route {
	editors := []domain.Role{domain.RoleAdmin, domain.RoleEditor}
	return []middleware.Route{
		{Method: http.MethodPost, Path: "/pages", Roles: editors, Handler: m.handler.Create},
		{Method: http.MethodGet, Path: "/pages", Roles: editors, Handler: m.handler.List},
		{Method: http.MethodGet, Path: "/pages/published", Public: true, Handler: m.handler.ListPublished},
		{Method: http.MethodGet, Path: "/pages/published/:slug", Public: true, Handler: m.handler.GetPublishedBySlug},
		{Method: http.MethodGet, Path: "/pages/slug/:slug", Roles: editors, Handler: m.handler.GetBySlug},
		{Method: http.MethodGet, Path: "/pages/:id", Roles: editors, Handler: m.handler.Get},
		{Method: http.MethodPatch, Path: "/pages/:id", Roles: editors, Handler: m.handler.Update},
		{Method: http.MethodPatch, Path: "/pages/:id/publish", Roles: editors, Handler: m.handler.Publish},
		{Method: http.MethodPatch, Path: "/pages/:id/unpublish", Roles: editors, Handler: m.handler.Unpublish},
		{Method: http.MethodDelete, Path: "/pages/:id", Roles: editors, Handler: m.handler.Delete},
		{Method: http.MethodPatch, Path: "/pages/:id/restore", Roles: editors, Handler: m.handler.Restore},
	}
}
