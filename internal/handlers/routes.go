package handlers

import (
	"tutorly/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything SetupRoutes mounts.
type Handlers struct {
	Health       *HealthHandler
	Fees         *FeeHandler
	Transactions *TransactionHandler
	Audit        *AuditHandler
	Auth         *middleware.AuthMiddleware
}

func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/health", h.Health.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", h.Auth.Handler)

	api.Post("/fees/quote", h.Fees.Quote)

	api.Post("/transactions", h.Transactions.RecordSale)
	api.Get("/transactions/:id", h.Transactions.GetTransaction)
	api.Get("/teachers/:teacherId/transactions", h.Transactions.ListTeacherTransactions)

	admin := api.Group("/admin", middleware.AdminOnly)
	admin.Get("/fee-rules", h.Fees.ListRules)
	admin.Post("/fee-rules", h.Fees.SaveRule)
	admin.Get("/fee-rules/:id", h.Fees.GetRule)
	admin.Post("/fee-rules/:id/deactivate", h.Fees.DeactivateRule)
	admin.Get("/audit-logs", h.Audit.ListAuditLogs)
}
