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

// TaxonomyHandler serves the settings screen: types, topics, rules and
// action options, all managed through the same service so every change
// lands in the activity log.
type TaxonomyHandler struct {
	taxonomy *services.TaxonomyService
	log      *zap.Logger
}

func NewTaxonomyHandler(taxonomy *services.TaxonomyService, log *zap.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: taxonomy, log: log}
}

func parseOptionalID(s *string) (*uuid.UUID, bool) {
	if s == nil {
		return nil, true
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// Types

func (h *TaxonomyHandler) ListTypes(c *fiber.Ctx) error {
	types, err := h.taxonomy.ListTypes(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: types})
}

func (h *TaxonomyHandler) CreateType(c *fiber.Ctx) error {
	var req dto.CreateTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	t, err := h.taxonomy.CreateType(c.Context(), middleware.GetActorName(c), req.Value, req.Label, req.SortOrder)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: t})
}

func (h *TaxonomyHandler) UpdateType(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid type id"})
	}

	var req dto.UpdateTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	t, err := h.taxonomy.UpdateType(c.Context(), middleware.GetActorName(c), id, repositories.TypePatch{
		Value:     req.Value,
		Label:     req.Label,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: t})
}

func (h *TaxonomyHandler) DeleteType(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid type id"})
	}
	if err := h.taxonomy.DeleteType(c.Context(), middleware.GetActorName(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// Topics

func (h *TaxonomyHandler) ListTopics(c *fiber.Ctx) error {
	topics, err := h.taxonomy.ListTopics(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: topics})
}

func (h *TaxonomyHandler) CreateTopic(c *fiber.Ctx) error {
	var req dto.CreateTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	typeID, err := uuid.Parse(req.TypeID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid type_id"})
	}

	t, err := h.taxonomy.CreateTopic(c.Context(), middleware.GetActorName(c), req.Title, typeID, req.SortOrder)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: t})
}

func (h *TaxonomyHandler) UpdateTopic(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid topic id"})
	}

	var req dto.UpdateTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	typeID, ok := parseOptionalID(req.TypeID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid type_id"})
	}

	t, err := h.taxonomy.UpdateTopic(c.Context(), middleware.GetActorName(c), id, repositories.TopicPatch{
		Title:     req.Title,
		TypeID:    typeID,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: t})
}

func (h *TaxonomyHandler) DeleteTopic(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid topic id"})
	}
	if err := h.taxonomy.DeleteTopic(c.Context(), middleware.GetActorName(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// Rules

func (h *TaxonomyHandler) ListRules(c *fiber.Ctx) error {
	rules, err := h.taxonomy.ListRules(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: rules})
}

func (h *TaxonomyHandler) CreateRule(c *fiber.Ctx) error {
	var req dto.CreateRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	topicID, err := uuid.Parse(req.TopicID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid topic_id"})
	}

	r, err := h.taxonomy.CreateRule(c.Context(), middleware.GetActorName(c), topicID, req.RuleText, req.SortOrder)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: r})
}

func (h *TaxonomyHandler) UpdateRule(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid rule id"})
	}

	var req dto.UpdateRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	topicID, ok := parseOptionalID(req.TopicID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid topic_id"})
	}

	r, err := h.taxonomy.UpdateRule(c.Context(), middleware.GetActorName(c), id, repositories.RulePatch{
		TopicID:   topicID,
		RuleText:  req.RuleText,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: r})
}

func (h *TaxonomyHandler) DeleteRule(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid rule id"})
	}
	if err := h.taxonomy.DeleteRule(c.Context(), middleware.GetActorName(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// Actions

func (h *TaxonomyHandler) ListActions(c *fiber.Ctx) error {
	actions, err := h.taxonomy.ListActions(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: actions})
}

func (h *TaxonomyHandler) CreateAction(c *fiber.Ctx) error {
	var req dto.CreateActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	topicID, err := uuid.Parse(req.TopicID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid topic_id"})
	}

	a, err := h.taxonomy.CreateAction(c.Context(), middleware.GetActorName(c), topicID, req.Label, req.SortOrder)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: a})
}

func (h *TaxonomyHandler) UpdateAction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid action id"})
	}

	var req dto.UpdateActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	topicID, ok := parseOptionalID(req.TopicID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid topic_id"})
	}

	a, err := h.taxonomy.UpdateAction(c.Context(), middleware.GetActorName(c), id, repositories.ActionPatch{
		TopicID:   topicID,
		Label:     req.Label,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: a})
}

func (h *TaxonomyHandler) DeleteAction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid action id"})
	}
	if err := h.taxonomy.DeleteAction(c.Context(), middleware.GetActorName(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
