package pricing

import (
	"time"
	"tutorly/internal/models"

	"github.com/shopspring/decimal"
)

// Config holds the per-deployment engine settings.
type Config struct {
	// FallbackPercent applies when no rule matches. Defaults to DefaultFallbackPercent when not valid.
	FallbackPercent decimal.NullDecimal
	// MinorUnitPlaces is the rounding granularity of the currency, e.g. 2 for cents.
	MinorUnitPlaces int32
	// Now is the clock used to stamp rules and audit entries.
	Now func() time.Time
}

// DefaultConfig returns a 15% fallback rounded to cents.
func DefaultConfig() Config {
	return Config{
		FallbackPercent: decimal.NewNullDecimal(decimal.NewFromInt(DefaultFallbackPercent)),
		MinorUnitPlaces: DefaultMinorUnitPlaces,
	}
}

// Admin identifies the administrator performing a rule change.
type Admin struct {
	ID   string
	Name string
}

// RuleInput is an administrative create or update of a fee rule.
// An empty ID creates a new rule; an existing ID replaces that rule.
type RuleInput struct {
	ID                 string          `json:"id"`
	Scope              models.FeeScope `json:"scope"`
	TeacherID          string          `json:"teacher_id"`
	ItemID             string          `json:"item_id"`
	ItemType           models.ItemType `json:"item_type"`
	PlatformFeePercent decimal.Decimal `json:"platform_fee_percent"`
	Description        string          `json:"description"`
}

// Resolution is the outcome of walking the cascade.
type Resolution struct {
	Percent decimal.Decimal `json:"platform_fee_percent"`
	// Scope is the tier that matched, or models.FeeSourceFallback.
	Scope  models.FeeScope `json:"scope"`
	RuleID string          `json:"rule_id,omitempty"`
}

// SplitResult divides a gross amount between platform and teacher.
type SplitResult struct {
	GrossAmount decimal.Decimal `json:"gross_amount"`
	PlatformFee decimal.Decimal `json:"platform_fee"`
	NetAmount   decimal.Decimal `json:"net_amount"`
}

// QuoteRequest is a sale context to price.
type QuoteRequest struct {
	TeacherID   string          `json:"teacher_id" validate:"required"`
	ItemID      string          `json:"item_id"`
	ItemType    models.ItemType `json:"item_type" validate:"omitempty,oneof=LESSON PACKAGE COURSE"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
}

// Quote is a resolved percent together with the split it produces.
type Quote struct {
	Resolution
	SplitResult
}
