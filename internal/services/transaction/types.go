package transaction

import (
	"tutorly/internal/models"

	"github.com/shopspring/decimal"
)

// SaleRequest is a finalized sale reported by the booking or checkout flow.
type SaleRequest struct {
	// Reference identifies the sale in the caller's system; replays with the same
	// reference return the transaction recorded the first time.
	Reference   string                 `json:"reference" validate:"required,max=100"`
	TeacherID   string                 `json:"teacher_id" validate:"required"`
	ItemID      string                 `json:"item_id"`
	ItemType    models.ItemType        `json:"item_type" validate:"omitempty,oneof=LESSON PACKAGE COURSE"`
	GrossAmount decimal.Decimal        `json:"gross_amount"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// Page is one page of a teacher's transactions.
type Page struct {
	Transactions []models.Transaction
	Total        int64
}
