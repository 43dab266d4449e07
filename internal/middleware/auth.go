package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/cmsbase/internal/domain"
	"github.com/simp-lee/cmsbase/internal/pkg"
	"github.com/simp-lee/cmsbase/internal/token"
)

const claimsContextKey = "auth_claims"

// claimsKey is the context key for claims attached to the request context.
type claimsKey struct{}

// Route declares one HTTP endpoint together with its access requirements.
// The guard consults this table at registration time; there is no
// reflection or annotation lookup at request time.
type Route struct {
	Method string
	Path   string
	// Public routes skip the authentication stage entirely; the request
	// proceeds with an anonymous context.
	Public bool
	// Roles is the set of roles allowed to call the route. An empty set
	// places no restriction beyond authentication.
	Roles   []domain.Role
	Handler gin.HandlerFunc
}

// Guard enforces authentication and authorization for declared routes.
// The two stages always run in fixed order: authentication first, then
// authorization.
type Guard struct {
	tokens *token.Service
	logger *slog.Logger
}

// NewGuard creates a Guard backed by the given token service.
func NewGuard(tokens *token.Service, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{tokens: tokens, logger: logger}
}

// Apply registers every route on the group with the guard stages the route's
// declaration requires. An incomplete declaration fails registration rather
// than producing an unguarded or unroutable endpoint.
func (g *Guard) Apply(group *gin.RouterGroup, routes []Route) error {
	for i, rt := range routes {
		if rt.Method == "" || rt.Path == "" {
			return fmt.Errorf("route at index %d: method and path are required", i)
		}
		if rt.Handler == nil {
			return fmt.Errorf("route %s %s: handler is nil", rt.Method, rt.Path)
		}
		if rt.Public && len(rt.Roles) > 0 {
			return fmt.Errorf("route %s %s: public routes cannot require roles", rt.Method, rt.Path)
		}
		handlers := make([]gin.HandlerFunc, 0, 3)
		if !rt.Public {
			handlers = append(handlers, g.Authenticate())
		}
		if len(rt.Roles) > 0 {
			handlers = append(handlers, g.RequireRoles(rt.Roles...))
		}
		handlers = append(handlers, rt.Handler)
		group.Handle(rt.Method, rt.Path, handlers...)
	}
	return nil
}

// Authenticate resolves the caller's identity from the bearer token and
// attaches the verified claims to both the gin context and the request
// context. Missing, malformed, and expired tokens all short-circuit with 401.
func (g *Guard) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			abortWith(c, domain.NewAppError(domain.CodeUnauthenticated, "missing bearer token", nil))
			return
		}

		claims, err := g.tokens.Verify(raw)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, token.ErrExpiredToken) {
				msg = "token expired"
			}
			abortWith(c, domain.NewAppError(domain.CodeUnauthenticated, msg, nil))
			return
		}

		c.Set(claimsContextKey, claims)
		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated
// caller's role is in the required set. A caller without claims or without
// a role is rejected with "role not found".
func (g *Guard) RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentClaims(c)
		if claims == nil || claims.Role == "" {
			abortWith(c, domain.NewAppError(domain.CodeForbidden, "role not found", nil))
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		// Both sets are logged for observability; the client only sees a
		// generic message.
		g.logger.WarnContext(c.Request.Context(), "role check failed",
			slog.String("path", c.Request.URL.Path),
			slog.Any("required_roles", roles),
			slog.String("actual_role", string(claims.Role)),
		)
		abortWith(c, domain.NewAppError(domain.CodeForbidden, "insufficient role", nil))
	}
}

// WithClaims returns a copy of ctx carrying the claims as an immutable value.
func WithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext extracts the verified claims from a request context.
// It returns nil for anonymous requests.
func ClaimsFromContext(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*token.Claims)
	return claims
}

// CurrentClaims extracts the verified claims from the gin context.
// It returns nil for anonymous requests.
func CurrentClaims(c *gin.Context) *token.Claims {
	if v, exists := c.Get(claimsContextKey); exists {
		if claims, ok := v.(*token.Claims); ok {
			return claims
		}
	}
	return ClaimsFromContext(c.Request.Context())
}

// bearerToken extracts the token from the Authorization header. The token
// value itself is never logged.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	scheme, value, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

func abortWith(c *gin.Context, err error) {
	pkg.Error(c, err)
	c.Abort()
}
