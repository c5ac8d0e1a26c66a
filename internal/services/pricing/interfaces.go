package pricing

import (
	"context"
	"tutorly/internal/models"

	"github.com/shopspring/decimal"
)

// Service is the fee engine: rule administration, resolution and splitting.
type Service interface {
	// Rule administration
	ListRules(ctx context.Context) ([]models.FeeRule, error)
	GetRule(ctx context.Context, ruleID string) (*models.FeeRule, error)
	SaveRule(ctx context.Context, admin Admin, input RuleInput) (*models.FeeRule, error)
	DeactivateRule(ctx context.Context, admin Admin, ruleID string) (*models.FeeRule, error)

	// Pricing
	Resolve(ctx context.Context, teacherID, itemID string, itemType models.ItemType) (Resolution, error)
	Split(grossAmount, percent decimal.Decimal) (SplitResult, error)
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)
}

// AuditRecorder receives one entry per administrative rule change.
type AuditRecorder interface {
	RecordAudit(ctx context.Context, entry *models.AuditLog) error
}

// MetricsCollector defines the interface for collecting fee engine metrics
type MetricsCollector interface {
	RecordResolution(scope models.FeeScope)
	RecordSplit(grossAmount, platformFee float64)
	RecordRuleChange(action string)
	RecordError(operation, errType string)
}
