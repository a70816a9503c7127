package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"clubsphere_backend/internal/identity"
	"clubsphere_backend/internal/models"
	"clubsphere_backend/internal/services"
	"clubsphere_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middlewares.
const (
	ContextEmailKey = "email"
	ContextUIDKey   = "uid"
	ContextRoleKey  = "userRole"
)

// RoleLookup resolves a member's stored role.
type RoleLookup interface {
	GetRole(ctx context.Context, email string) (string, error)
}

// AuthMiddleware verifies the bearer credential and stores the caller's
// verified email on the context.
func AuthMiddleware(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required", ""))
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid authorization header format. Use Bearer <token>", ""))
			return
		}

		id, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			utils.LogDebug("Bearer verification failed", map[string]interface{}{"error": err.Error()})
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", ""))
			return
		}

		c.Set(ContextEmailKey, id.Email)
		c.Set(ContextUIDKey, id.UID)
		c.Next()
	}
}

// RoleAuthMiddleware allows the request through when the caller's stored role is
// one of allowedRoles. Callers without a member record count as models.DefaultRole.
func RoleAuthMiddleware(roles RoleLookup, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := callerRole(c, roles)
		if !ok {
			return
		}
		for _, r := range allowedRoles {
			if strings.EqualFold(role, r) {
				c.Next()
				return
			}
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
			"You do not have permission to access this resource. Required roles: "+strings.Join(allowedRoles, ", "), ""))
	}
}

// RequireSelfOrAdmin restricts routes keyed by an email path parameter to the
// owner of that email or an admin.
func RequireSelfOrAdmin(roles RoleLookup, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(ContextEmailKey)
		if email == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required", ""))
			return
		}
		if utils.NormalizeEmail(c.Param(param)) == email {
			c.Next()
			return
		}

		role, ok := callerRole(c, roles)
		if !ok {
			return
		}
		if role == models.RoleAdmin {
			c.Next()
			return
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You can only access your own records", ""))
	}
}

// callerRole loads the verified caller's role once per request. It writes the
// error response and returns false when the role cannot be determined.
func callerRole(c *gin.Context, roles RoleLookup) (string, bool) {
	if role := c.GetString(ContextRoleKey); role != "" {
		return role, true
	}
	email := c.GetString(ContextEmailKey)
	if email == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required", ""))
		return "", false
	}

	role, err := roles.GetRole(c.Request.Context(), email)
	if err != nil {
		if !errors.Is(err, services.ErrMemberNotFound) {
			utils.LogError(err, "Middleware: failed to load caller role")
			utils.RespondInternalError(c, "Failed to authorize request")
			return "", false
		}
		role = models.DefaultRole
	}
	c.Set(ContextRoleKey, role)
	return role, true
}
