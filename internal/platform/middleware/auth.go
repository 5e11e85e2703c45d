package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tsaratour/service-booking/internal/platform/auth"
	"github.com/tsaratour/service-booking/internal/platform/response"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "user_role"
)

// AuthMiddleware verifies the bearer token and requires an unexpired login session.
// The raw token is stored on the request context for forwarding to the backend.
func AuthMiddleware(jwtManager *auth.JWTManager, sessions *auth.SessionTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(c, "authentification requise")
			return
		}

		claims, err := jwtManager.Verify(token)
		if err != nil {
			response.Unauthorized(c, "jeton invalide")
			return
		}

		userID := string(claims.UserID)
		if !sessions.Active(userID) {
			response.Unauthorized(c, "session expirée")
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxRole, claims.Role)
		c.Request = c.Request.WithContext(auth.WithAccessToken(c.Request.Context(), token))
		c.Next()
	}
}

// RequirePermission checks the route-permission table for the caller's role.
func RequirePermission(authorizer *auth.Authorizer, resource auth.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			response.Unauthorized(c, "authentification requise")
			return
		}

		allowed, err := authorizer.Allowed(c.Request.Context(), role, resource)
		if err != nil {
			response.Error(c, err)
			return
		}
		if !allowed {
			response.Forbidden(c, "accès refusé")
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user id.
func GetUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// GetUserRole returns the authenticated user role.
func GetUserRole(c *gin.Context) (auth.Role, bool) {
	v, ok := c.Get(ctxRole)
	if !ok {
		return "", false
	}
	role, ok := v.(auth.Role)
	return role, ok
}
