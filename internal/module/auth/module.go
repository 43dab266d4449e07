package auth

import (
	"net/http"

	"github.com/simp-lee/cmsbase/internal/middleware"
)

// AuthModule implements the app.Module interface for the auth domain.
type AuthModule struct {
	handler *AuthHandler
}

// NewModule creates a new AuthModule with the given handler.
// Panics if h is nil.
func NewModule(h *AuthHandler) *AuthModule {
	if h == nil {
		panic("auth.NewModule: handler must not be nil")
	}
	return &AuthModule{handler: h}
}

// Routes declares the auth API routes and their access requirements.
func (m *AuthModule) Routes() []middleware.Route {
	return []middleware.Route{
		{Method: http.MethodPost, Path: "/auth/register", Public: true, Handler: m.handler.Register},
		{Method: http.MethodPost, Path: "/auth/login", Public: true, Handler: m.handler.Login},
		{Method: http.MethodGet, Path: "/auth/me", Handler: m.handler.Me},
	}
}
