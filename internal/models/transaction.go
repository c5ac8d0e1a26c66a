package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeSourceFallback marks a transaction whose percent came from the configured fallback
// rather than a stored rule.
const FeeSourceFallback FeeScope = "FALLBACK"

// Transaction is a recorded sale with its platform/teacher split.
// PlatformFeePercent is frozen when the sale is recorded; later rule changes never touch it.
type Transaction struct {
	ID                 string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Reference          string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"reference"`
	TeacherID          string          `gorm:"type:varchar(64);not null;index" json:"teacher_id"`
	ItemID             string          `gorm:"type:varchar(64)" json:"item_id,omitempty"`
	ItemType           ItemType        `gorm:"type:varchar(16)" json:"item_type,omitempty"`
	GrossAmount        decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"gross_amount"`
	PlatformFeePercent decimal.Decimal `gorm:"type:decimal(7,4);not null" json:"platform_fee_percent"`
	PlatformFee        decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"platform_fee"`
	NetAmount          decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"net_amount"`
	FeeRuleID          string          `gorm:"type:varchar(64)" json:"fee_rule_id,omitempty"`
	FeeScope           FeeScope        `gorm:"type:varchar(16);not null" json:"fee_scope"`
	Metadata           JSON            `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}
