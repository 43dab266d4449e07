package user

import (
	"net/http"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/middleware"
)

// UserModule implements the app.Module interface for the user domain.
type UserModule struct {
	handler *UserHandler
}

// NewModule creates a new UserModule with the given handler.
// Panics if h is nil.
func NewModule(h *UserHandler) *UserModule {
	if h == nil {
		panic("user.NewModule: handler must not be nil")
	}
	return &UserModule{handler: h}
}

// Routes declares the user API routes. Account listing and lookup are
// admin-only.
func (m *UserModule) Routes() []middleware.Route {
	admin := []domain.Role{domain.RoleAdmin}
	return []middleware.Route{
		{Method: http.MethodGet, Path: "/users", Roles: admin, Handler: m.handler.List},
		{Method: http.MethodGet, Path: "/users/:id", Roles: admin, Handler: m.handler.Get},
	}
}
