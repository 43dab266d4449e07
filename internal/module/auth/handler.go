package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/middleware"
	"github.com/simp-lee/cmsbase/internal/pkg"
)

// AuthHandler handles REST API requests for authentication.
type AuthHandler struct {
	svc Service
}

// NewHandler creates a new AuthHandler with the given service.
func NewHandler(svc Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, resp)
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg.Response{
		Code:    http.StatusCreated,
		Message: "user registered successfully",
		Data: RegisterResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		},
	})
}

// Me handles GET /api/v1/auth/me. The guard has already attached verified
// claims; the account is re-resolved so a deleted user fails here even with
// a still-valid token.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		pkg.Error(c, domain.NewAppError(domain.CodeUnauthenticated, "missing bearer token", nil))
		return
	}

	user, err := h.svc.CurrentUser(c.Request.Context(), claims.UserID)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, user.Public())
}
