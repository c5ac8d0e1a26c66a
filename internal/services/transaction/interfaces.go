package transaction

import (
	"context"
	"tutorly/internal/models"
	"tutorly/internal/services/pricing"
)

// FeeQuoter prices a sale.
type FeeQuoter interface {
	Quote(ctx context.Context, req pricing.QuoteRequest) (*pricing.Quote, error)
}

type Service interface {
	RecordSale(ctx context.Context, req SaleRequest) (*models.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	ListTeacherTransactions(ctx context.Context, teacherID string, limit, offset int) (*Page, error)
}
