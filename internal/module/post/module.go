package post

import (
	"net/http"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/middleware"
)

// PostModule implements the app.Module interface for the post domain.
type PostModule struct {
	handler *PostHandler
}

// NewModule creates a new PostModule with the given handler.
// Panics if h is nil.
func NewModule(h *PostHandler) *PostModule {
	if h == nil {
		panic("post.NewModule: handler must not be nil")
	}
	return &PostModule{handler: h}
}

// Routes declares the post API routes. Reads are public; every mutation
// requires an editor or admin.
func (m *PostModule) Routes() []middleware.Route {
	editors := []domain.Role{domain.RoleAdmin, domain.RoleEditor}
	return []middleware.Route{
		{Method: http.MethodPost, Path: "/posts", Roles: editors, Handler: m.handler.Create},
		{Method: http.MethodGet, Path: "/posts", Public: true, Handler: m.handler.List},
		{Method: http.MethodGet, Path: "/posts/slug/:slug", Public: true, Handler: m.handler.GetBySlug},
		{Method: http.MethodGet, Path: "/posts/:id", Public: true, Handler: m.handler.Get},
		{Method: http.MethodPatch, Path: "/posts/:id", Roles: editors, Handler: m.handler.Update},
		{Method: http.MethodPatch, Path: "/posts/:id/publish", Roles: editors, Handler: m.handler.Publish},
		{Method: http.MethodPatch, Path: "/posts/:id/unpublish", Roles: editors, Handler: m.handler.Unpublish},
		{Method: http.MethodDelete, Path: "/posts/:id", Roles: editors, Handler: m.handler.Delete},
		{Method: http.MethodPatch, Path: "/posts/:id/restore", Roles: editors, Handler: m.handler.Restore},
	}
}
