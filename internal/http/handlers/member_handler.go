package handlers

import (
	"github.com/frontend-dashboard/backend/internal/http/dto"
	"github.com/frontend-dashboard/backend/internal/middleware"
	"github.com/frontend-dashboard/backend/internal/repositories"
	"github.com/frontend-dashboard/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MemberHandler struct {
	members *services.MemberService
	log     *zap.Logger
}

func NewMemberHandler(members *services.MemberService, log *zap.Logger) *MemberHandler {
	return &MemberHandler{members: members, log: log}
}

func (h *MemberHandler) List(c *fiber.Ctx) error {
	var (
		err  error
		data any
	)
	if c.QueryBool("include_inactive") {
		data, err = h.members.List(c.Context())
	} else {
		data, err = h.members.ListActive(c.Context())
	}
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: data})
}

func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	actor := middleware.GetActorName(c)
	member, err := h.members.Create(c.Context(), actor, req.Name, req.Email)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: member})
}

func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid member id"})
	}

	var req dto.UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	actor := middleware.GetActorName(c)
	member, err := h.members.Update(c.Context(), actor, id, repositories.MemberPatch{
		Name:     req.Name,
		Email:    req.Email,
		IsActive: req.IsActive,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: member})
}
