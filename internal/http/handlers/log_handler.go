package handlers

import (
	"time"

	"github.com/frontend-dashboard/backend/internal/config"
	"github.com/frontend-dashboard/backend/internal/export"
	"github.com/frontend-dashboard/backend/internal/http/dto"
	"github.com/frontend-dashboard/backend/internal/middleware"
	"github.com/frontend-dashboard/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const logDateLayout = "2006-01-02"

type LogHandler struct {
	logs *services.LogService
	cfg  *config.Config
	log  *zap.Logger
}

func NewLogHandler(logs *services.LogService, cfg *config.Config, log *zap.Logger) *LogHandler {
	return &LogHandler{logs: logs, cfg: cfg, log: log}
}

// parseSaveRequest reads the shared create/update body. On a malformed
// request it writes the 400 itself and reports !ok.
func (h *LogHandler) parseSaveRequest(c *fiber.Ctx) (services.LogParams, bool) {
	badRequest := func(msg string) (services.LogParams, bool) {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
		return services.LogParams{}, false
	}

	var req dto.SaveLogRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid request body")
	}

	var p services.LogParams
	if req.LogDate != "" {
		d, err := time.Parse(logDateLayout, req.LogDate)
		if err != nil {
			return badRequest("invalid log_date, expected YYYY-MM-DD")
		}
		p.LogDate = d
	}
	if req.MemberID != "" {
		id, err := uuid.Parse(req.MemberID)
		if err != nil {
			return badRequest("invalid member_id")
		}
		p.MemberID = id
	}
	if req.TopicID != "" {
		id, err := uuid.Parse(req.TopicID)
		if err != nil {
			return badRequest("invalid topic_id")
		}
		p.TopicID = id
	}
	if req.ActionRuleID != "" {
		id, err := uuid.Parse(req.ActionRuleID)
		if err != nil {
			return badRequest("invalid action_rule_id")
		}
		p.ActionRuleID = id
	}
	p.Type = req.Type
	p.Sprint = req.Sprint
	p.Notes = req.Notes
	return p, true
}

func (h *LogHandler) Create(c *fiber.Ctx) error {
	p, ok := h.parseSaveRequest(c)
	if !ok {
		return nil
	}

	detail, err := h.logs.Create(c.Context(), middleware.GetActorName(c), p)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: detail})
}

func (h *LogHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid log id"})
	}

	p, ok := h.parseSaveRequest(c)
	if !ok {
		return nil
	}

	detail, err := h.logs.Update(c.Context(), middleware.GetActorName(c), id, p)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: detail})
}

func (h *LogHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid log id"})
	}
	if err := h.logs.Delete(c.Context(), middleware.GetActorName(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// Latest returns the dashboard's recent-entries panel.
func (h *LogHandler) Latest(c *fiber.Ctx) error {
	n := c.QueryInt("limit", h.cfg.LatestLogsLimit)
	if n <= 0 || n > h.cfg.LatestLogsLimit {
		n = h.cfg.LatestLogsLimit
	}

	logs, err := h.logs.Latest(c.Context(), n)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: logs})
}

func (h *LogHandler) parseRange(c *fiber.Ctx) (start, end time.Time, memberID *uuid.UUID, ok bool) {
	badRequest := func(msg string) (time.Time, time.Time, *uuid.UUID, bool) {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
		return time.Time{}, time.Time{}, nil, false
	}

	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" || endStr == "" {
		return badRequest("start_date and end_date are required")
	}

	var err error
	start, err = time.Parse(logDateLayout, startStr)
	if err != nil {
		return badRequest("invalid start_date, expected YYYY-MM-DD")
	}
	end, err = time.Parse(logDateLayout, endStr)
	if err != nil {
		return badRequest("invalid end_date, expected YYYY-MM-DD")
	}

	if v := c.Query("member_id"); v != "" {
		id, perr := uuid.Parse(v)
		if perr != nil {
			return badRequest("invalid member_id")
		}
		memberID = &id
	}
	return start, end, memberID, true
}

// ByDateRange powers the report table: inclusive calendar-date range,
// optionally narrowed to one member.
func (h *LogHandler) ByDateRange(c *fiber.Ctx) error {
	start, end, memberID, ok := h.parseRange(c)
	if !ok {
		return nil
	}

	logs, err := h.logs.ByDateRange(c.Context(), start, end, memberID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: logs})
}

// Export streams the same range as an xlsx workbook with a per-member
// count sheet.
func (h *LogHandler) Export(c *fiber.Ctx) error {
	start, end, memberID, ok := h.parseRange(c)
	if !ok {
		return nil
	}

	logs, err := h.logs.ByDateRange(c.Context(), start, end, memberID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	f, err := export.LogWorkbook(logs)
	if err != nil {
		h.log.Error("log workbook build failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		h.log.Error("log workbook write failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	filename := export.LogFilename(start.Format(logDateLayout), end.Format(logDateLayout))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
