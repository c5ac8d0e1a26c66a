package repositories

import (
	"context"
	"errors"
	"tutorly/internal/models"
)

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrDuplicateTransaction = errors.New("transaction reference already recorded")
)

// TransactionRepository stores recorded sales.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*models.Transaction, error)
	ListByTeacher(ctx context.Context, teacherID string, limit, offset int) ([]models.Transaction, int64, error)
}
