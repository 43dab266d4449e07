package media

import (
	"net/http"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/middleware"
)

// MediaModule implements the app.Module interface for the media domain.
type MediaModule struct {
	handler *MediaHandler
}

// NewModule creates a new MediaModule with the given handler.
// Panics if h is nil.
func NewModule(h *MediaHandler) *MediaModule {
	if h == nil {
		panic("media.NewModule: handler must not be nil")
	}
	return &MediaModule{handler: h}
}

// Routes declares the media API routes. Reads are public so that stored
// records can be referenced; uploads and deletes require an editor or
// admin.
func (m *MediaModule) Routes() []middleware.Route {
	editors := []domain.Role{domain.RoleAdmin, domain.RoleEditor}
	return []middleware.Route{
		{Method: http.MethodPost, Path: "/media", Roles: editors, Handler: m.handler.Upload},
		{Method: http.MethodGet, Path: "/media", Public: true, Handler: m.handler.List},
		{Method: http.MethodGet, Path: "/media/:id", Public: true, Handler: m.handler.Get},
		{Method: http.MethodDelete, Path: "/media/:id", Roles: editors, Handler: m.handler.Delete},
	}
}
