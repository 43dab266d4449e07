package user

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/cmsbase/internal/pkg"
)

// UserHandler handles REST API requests for the user resource.
type UserHandler struct {
	svc Service
}

// NewHandler creates a new UserHandler with the given service.
func NewHandler(svc Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// Get handles GET /api/v1/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, user)
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(c *gin.Context) {
	req, err := pkg.ParsePageRequest(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	result, err := h.svc.ListUsers(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}
