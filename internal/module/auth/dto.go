package auth

import (
	"time"

	"github.com/simp-lee/cmsbase/internal/domain"
)

// LoginRequest represents the input for user login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// RegisterRequest represents the input for user registration.
// Role defaults to VIEWER when omitted.
type RegisterRequest struct {
	Name     string      `json:"name" form:"name" binding:"required,min=1,max=100"`
	Email    string      `json:"email" form:"email" binding:"required,email"`
	Password string      `json:"password" form:"password" binding:"required,min=8,max=72"`
	Role     domain.Role `json:"role" form:"role" binding:"omitempty,oneof=ADMIN EDITOR VIEWER"`
}

// LoginResponse carries the signed token and the reduced public user view.
type LoginResponse struct {
	Token     string            `json:"token"`
	ExpiresAt int64             `json:"expires_at"`
	User      domain.PublicUser `json:"user"`
}

// RegisterResponse represents the public user data returned after registration.
type RegisterResponse struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}
