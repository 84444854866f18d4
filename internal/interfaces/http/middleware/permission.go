package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/restopos/backend/internal/domain/identity"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/restopos/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role guards
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
}

// RequireRoles creates middleware that lets the listed roles through.
// Admin passes every guard.
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	return RequireRolesWithConfig(RoleConfig{}, roles...)
}

// RequireRolesWithConfig creates a role guard with custom config
func RequireRolesWithConfig(cfg RoleConfig, roles ...identity.Role) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(shared.CodeUnauthorized, "Authentication required", GetRequestID(c)))
			return
		}

		role := identity.Role(claims.Role)
		if !HasRole(role, roles...) {
			cfg.Logger.Warn("Role denied",
				zap.String("user_id", claims.UserID),
				zap.String("role", claims.Role),
				zap.Any("required_any", roles),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(shared.CodeForbidden, "Access denied: insufficient role", GetRequestID(c)))
			return
		}

		c.Next()
	}
}

// RequireAdmin guards admin-only routes
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(identity.RoleAdmin)
}

// HasRole reports whether role satisfies a guard over allowed
func HasRole(role identity.Role, allowed ...identity.Role) bool {
	if role == identity.RoleAdmin {
		return true
	}
	return slices.Contains(allowed, role)
}
