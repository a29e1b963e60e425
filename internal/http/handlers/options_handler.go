package handlers

import (
	"github.com/frontend-dashboard/backend/internal/http/dto"
	"github.com/frontend-dashboard/backend/internal/options"
	"github.com/frontend-dashboard/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OptionsHandler feeds the logging form's cascading selects from the
// cached taxonomy snapshot.
type OptionsHandler struct {
	opts *services.FormOptionsService
	log  *zap.Logger
}

func NewOptionsHandler(opts *services.FormOptionsService, log *zap.Logger) *OptionsHandler {
	return &OptionsHandler{opts: opts, log: log}
}

// Snapshot returns the whole form dataset in one response; the dedicated
// topic/action endpoints below serve the cascading refinements.
func (h *OptionsHandler) Snapshot(c *fiber.Ctx) error {
	snap, err := h.opts.Snapshot(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: snap})
}

func (h *OptionsHandler) TopicsForType(c *fiber.Ctx) error {
	snap, err := h.opts.Snapshot(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: options.TopicsForType(snap, c.Query("type"))})
}

func (h *OptionsHandler) ActionsForTopic(c *fiber.Ctx) error {
	topicID, err := uuid.Parse(c.Query("topic_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid topic_id"})
	}

	snap, err := h.opts.Snapshot(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: options.ActionsForTopic(snap, topicID)})
}
