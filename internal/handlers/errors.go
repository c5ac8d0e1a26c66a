package handlers

import (
	"errors"
	"log/slog"

	"tutorly/internal/services/pricing"
	"tutorly/internal/services/transaction"
	"tutorly/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *fiber.Ctx, logger *slog.Logger, err error) error {
	switch {
	case errors.Is(err, pricing.ErrInvalidPercentage),
		errors.Is(err, pricing.ErrInvalidAmount),
		errors.Is(err, pricing.ErrInvalidScope),
		errors.Is(err, transaction.ErrInvalidSale):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, pricing.ErrRuleNotFound),
		errors.Is(err, transaction.ErrTransactionNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, pricing.ErrCorruptRuleData),
		errors.Is(err, transaction.ErrReferenceConflict):
		return response.Conflict(c, err.Error())
	default:
		logger.Error("request failed", "method", c.Method(), "path", c.Path(), "err", err)
		return response.ServerError(c, "internal server error")
	}
}
