package handlers

import (
	"log/slog"

	"tutorly/internal/repositories"
	"tutorly/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	logs   repositories.AuditLogRepository
	logger *slog.Logger
}

func NewAuditHandler(logs repositories.AuditLogRepository, logger *slog.Logger) *AuditHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditHandler{logs: logs, logger: logger}
}

// ListAuditLogs returns fee rule changes, newest first.
func (h *AuditHandler) ListAuditLogs(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	entries, total, err := h.logs.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	p.Total = total
	return c.JSON(pagination.Response(p, entries))
}
