package repositories

import (
	"context"
	"errors"
	"fmt"
	"tutorly/internal/models"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateTransaction
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *transactionRepository) GetByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	return r.first(ctx, "reference = ?", reference)
}

func (r *transactionRepository) first(ctx context.Context, query string, arg interface{}) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.WithContext(ctx).Where(query, arg).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *transactionRepository) ListByTeacher(ctx context.Context, teacherID string, limit, offset int) ([]models.Transaction, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("teacher_id = ?", teacherID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, total, nil
}
