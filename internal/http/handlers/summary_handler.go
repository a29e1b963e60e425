package handlers

import (
	"github.com/frontend-dashboard/backend/internal/http/dto"
	"github.com/frontend-dashboard/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SummaryHandler struct {
	summary *services.SummaryService
	log     *zap.Logger
}

func NewSummaryHandler(summary *services.SummaryService, log *zap.Logger) *SummaryHandler {
	return &SummaryHandler{summary: summary, log: log}
}

// List returns every active member with their running violation count,
// zero included.
func (h *SummaryHandler) List(c *fiber.Ctx) error {
	summaries, err := h.summary.GetSummaries(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: summaries})
}
