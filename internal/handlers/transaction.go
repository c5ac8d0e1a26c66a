package handlers

import (
	"log/slog"

	"tutorly/internal/services/transaction"
	"tutorly/internal/utils/pagination"
	"tutorly/internal/utils/response"
	"tutorly/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	transactions transaction.Service
	logger       *slog.Logger
}

func NewTransactionHandler(transactions transaction.Service, logger *slog.Logger) *TransactionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransactionHandler{transactions: transactions, logger: logger}
}

// RecordSale freezes the fee split of a finalized sale.
func (h *TransactionHandler) RecordSale(c *fiber.Ctx) error {
	var req transaction.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	v := validation.New()
	v.Struct(&req)
	v.NonNegative(req.GrossAmount, "gross_amount")
	if !v.Valid() {
		return response.ValidationError(c, v.Fields())
	}

	tx, err := h.transactions.RecordSale(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return response.Created(c, "Sale recorded", tx)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	tx, err := h.transactions.GetTransaction(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return response.Success(c, "Transaction retrieved", tx)
}

func (h *TransactionHandler) ListTeacherTransactions(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	page, err := h.transactions.ListTeacherTransactions(c.UserContext(), c.Params("teacherId"), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	p.Total = page.Total
	return c.JSON(pagination.Response(p, page.Transactions))
}
