package handlers

import (
	"github.com/frontend-dashboard/backend/internal/export"
	"github.com/frontend-dashboard/backend/internal/http/dto"
	"github.com/frontend-dashboard/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ActivityHandler struct {
	activity *services.ActivityService
	log      *zap.Logger
}

func NewActivityHandler(activity *services.ActivityService, log *zap.Logger) *ActivityHandler {
	return &ActivityHandler{activity: activity, log: log}
}

func activityParams(c *fiber.Ctx, forExport bool) services.ActivityParams {
	return services.ActivityParams{
		FromDate:    c.Query("from_date"),
		ToDate:      c.Query("to_date"),
		ActionType:  c.Query("action_type"),
		SettingVerb: c.Query("setting_verb"),
		ActorName:   c.Query("actor"),
		Limit:       c.QueryInt("limit"),
		ForExport:   forExport,
	}
}

func (h *ActivityHandler) List(c *fiber.Ctx) error {
	entries, err := h.activity.List(c.Context(), activityParams(c, false))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: entries})
}

// Export streams the filtered activity trail as an xlsx download named
// after the filters.
func (h *ActivityHandler) Export(c *fiber.Ctx) error {
	p := activityParams(c, true)
	entries, err := h.activity.List(c.Context(), p)
	if err != nil {
		return respondError(c, h.log, err)
	}

	f, err := export.ActivityWorkbook(entries)
	if err != nil {
		h.log.Error("activity workbook build failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		h.log.Error("activity workbook write failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	filename := export.ActivityFilename(p.FromDate, p.ToDate, p.ActionType)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
