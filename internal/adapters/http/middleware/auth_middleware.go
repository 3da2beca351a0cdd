package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/webdrave/funds-backend/internal/config"
	"github.com/webdrave/funds-backend/internal/core/domain"
	"github.com/webdrave/funds-backend/internal/pkg/jwt"
	"github.com/webdrave/funds-backend/internal/pkg/response"
)

// actorKey is the fiber locals key holding the authenticated actor.
const actorKey = "actor"

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := c.Cookies("access_token")

		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals(actorKey, domain.Actor{
			UserID: claims.UserID,
			Role:   domain.Role(claims.Role),
		})

		return c.Next()
	}
}

// Actor returns the authenticated actor attached by AuthMiddleware
func Actor(c *fiber.Ctx) (domain.Actor, bool) {
	actor, ok := c.Locals(actorKey).(domain.Actor)
	return actor, ok
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := Actor(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if actor.Role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// SuperadminOnly middleware allows only the SUPERADMIN role
func SuperadminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleSuperadmin)
}

// RMOrSuperadmin middleware allows RM or SUPERADMIN roles
func RMOrSuperadmin() fiber.Handler {
	return RoleMiddleware(domain.RoleRM, domain.RoleSuperadmin)
}
