package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/agrohold/kanban-api/internal/errors"
	"github.com/agrohold/kanban-api/internal/token"
)

const contextKeyClaims = "auth_claims"

// RequireAuth guards a route group with bearer-token authentication. A
// missing credential is a 401; a present but invalid or expired one is a
// 403. On success the decoded identity is attached to the request
// context and nothing else happens.
func RequireAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apierrors.Unauthorized(c, "Access token required")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			apierrors.Forbidden(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(contextKeyClaims, claims)
		c.Next()
	}
}

// CurrentUser retrieves the authenticated identity from context.
func CurrentUser(c *gin.Context) (*token.Claims, bool) {
	v, exists := c.Get(contextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*token.Claims)
	if !ok {
		return nil, false
	}
	return claims, true
}

// SetCurrentUser attaches an identity to the context directly. Used by
// handler tests that bypass the middleware.
func SetCurrentUser(c *gin.Context, claims *token.Claims) {
	c.Set(contextKeyClaims, claims)
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return "", false
	}
	return raw, true
}
