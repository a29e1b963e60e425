package middleware

import (
	"strings"

	"github.com/frontend-dashboard/backend/internal/auth"
	"github.com/frontend-dashboard/backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	CtxMemberID  = "member_id"
	CtxActorName = "actor_name"
)

// AuthMiddleware validates the bearer token and puts the actor identity in
// the request context. There is no authorization beyond a valid token; any
// logged-in member can do anything.
func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(CtxMemberID, claims.MemberID)
		c.Locals(CtxActorName, claims.ActorName)

		return c.Next()
	}
}

func GetMemberID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(CtxMemberID).(uuid.UUID)
	return id
}

// GetActorName returns the logged-in member's name for audit trails.
func GetActorName(c *fiber.Ctx) string {
	name, _ := c.Locals(CtxActorName).(string)
	return name
}
