package handlers

import (
	"errors"
	"strings"

	"github.com/frontend-dashboard/backend/internal/auth"
	"github.com/frontend-dashboard/backend/internal/config"
	"github.com/frontend-dashboard/backend/internal/http/dto"
	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/frontend-dashboard/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	members *services.MemberService
	cfg     *config.Config
	log     *zap.Logger
}

func NewAuthHandler(members *services.MemberService, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{members: members, cfg: cfg, log: log}
}

// Login exchanges a member name for a token. There is no password; the
// dashboard is an internal team tool and the name only selects whose
// actions the activity log attributes.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "name is required"})
	}

	member, err := h.members.Login(c.Context(), name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unknown member"})
		}
		return respondError(c, h.log, err)
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, member.ID, member.Name, h.cfg.JWTExpiration)
	if err != nil {
		h.log.Error("failed to generate jwt", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.AuthResponse{Token: token, Member: member})
}
