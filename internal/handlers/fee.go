package handlers

import (
	"errors"
	"log/slog"

	"tutorly/internal/middleware"
	"tutorly/internal/services/pricing"
	"tutorly/internal/utils/response"
	"tutorly/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
)

type FeeHandler struct {
	fees   pricing.Service
	logger *slog.Logger
}

func NewFeeHandler(fees pricing.Service, logger *slog.Logger) *FeeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeeHandler{fees: fees, logger: logger}
}

// Quote prices a prospective sale without recording it.
func (h *FeeHandler) Quote(c *fiber.Ctx) error {
	var req pricing.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	v := validation.New()
	v.Struct(&req)
	v.NonNegative(req.GrossAmount, "gross_amount")
	if !v.Valid() {
		return response.ValidationError(c, v.Fields())
	}

	quote, err := h.fees.Quote(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return response.Success(c, "Fee quoted", quote)
}

func (h *FeeHandler) ListRules(c *fiber.Ctx) error {
	rules, err := h.fees.ListRules(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return response.Success(c, "Fee rules retrieved", rules)
}

func (h *FeeHandler) GetRule(c *fiber.Ctx) error {
	rule, err := h.fees.GetRule(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return response.Success(c, "Fee rule retrieved", rule)
}

func (h *FeeHandler) SaveRule(c *fiber.Ctx) error {
	var input pricing.RuleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// A client may pick the id of a new rule, so only a stored rule counts as an update.
	existed := false
	if input.ID != "" {
		_, err := h.fees.GetRule(c.UserContext(), input.ID)
		switch {
		case err == nil:
			existed = true
		case !errors.Is(err, pricing.ErrRuleNotFound):
			return respondError(c, h.logger, err)
		}
	}

	rule, err := h.fees.SaveRule(c.UserContext(), adminFromContext(c), input)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if existed {
		return response.Success(c, "Fee rule saved", rule)
	}
	return response.Created(c, "Fee rule created", rule)
}

func (h *FeeHandler) DeactivateRule(c *fiber.Ctx) error {
	rule, err := h.fees.DeactivateRule(c.UserContext(), adminFromContext(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return response.Success(c, "Fee rule deactivated", rule)
}

func adminFromContext(c *fiber.Ctx) pricing.Admin {
	claims, ok := middleware.Claims(c)
	if !ok {
		return pricing.Admin{}
	}
	name := claims.Name
	if name == "" {
		name = claims.Email
	}
	return pricing.Admin{ID: claims.UserID, Name: name}
}

