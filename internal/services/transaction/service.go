package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"tutorly/internal/models"
	"tutorly/internal/repositories"
	"tutorly/internal/services/pricing"

	"github.com/google/uuid"
)

type service struct {
	repo    repositories.TransactionRepository
	pricing FeeQuoter
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a new transaction service
func NewService(repo repositories.TransactionRepository, quoter FeeQuoter, logger *slog.Logger) Service {
	if repo == nil {
		panic("repo is required")
	}
	if quoter == nil {
		panic("fee quoter is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		repo:    repo,
		pricing: quoter,
		logger:  logger.With("component", "transaction"),
		now:     time.Now,
	}
}

func (s *service) RecordSale(ctx context.Context, req SaleRequest) (*models.Transaction, error) {
	// The trimmed reference is the one validated, stored and looked up.
	req.Reference = strings.TrimSpace(req.Reference)
	if err := validateSale(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByReference(ctx, req.Reference)
	switch {
	case err == nil:
		return replay(existing, req)
	case !errors.Is(err, repositories.ErrTransactionNotFound):
		return nil, fmt.Errorf("failed to look up sale reference: %w", err)
	}

	quote, err := s.pricing.Quote(ctx, pricing.QuoteRequest{
		TeacherID:   req.TeacherID,
		ItemID:      req.ItemID,
		ItemType:    req.ItemType,
		GrossAmount: req.GrossAmount,
	})
	if err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		ID:                 uuid.NewString(),
		Reference:          req.Reference,
		TeacherID:          req.TeacherID,
		ItemID:             req.ItemID,
		ItemType:           req.ItemType,
		GrossAmount:        quote.GrossAmount,
		PlatformFeePercent: quote.Percent,
		PlatformFee:        quote.PlatformFee,
		NetAmount:          quote.NetAmount,
		FeeRuleID:          quote.RuleID,
		FeeScope:           quote.Scope,
		Metadata:           models.JSON(req.Metadata),
		CreatedAt:          s.now().UTC(),
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		if errors.Is(err, repositories.ErrDuplicateTransaction) {
			// Lost a race with a concurrent replay of the same reference.
			existing, getErr := s.repo.GetByReference(ctx, req.Reference)
			if getErr != nil {
				return nil, fmt.Errorf("failed to load concurrent sale: %w", getErr)
			}
			return replay(existing, req)
		}
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	s.logger.Info("sale recorded",
		"transaction_id", tx.ID,
		"reference", tx.Reference,
		"teacher_id", tx.TeacherID,
		"gross", tx.GrossAmount.String(),
		"fee_percent", tx.PlatformFeePercent.String(),
		"fee_scope", tx.FeeScope,
	)
	return tx, nil
}

func (s *service) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

func (s *service) ListTeacherTransactions(ctx context.Context, teacherID string, limit, offset int) (*Page, error) {
	if teacherID == "" {
		return nil, fmt.Errorf("%w: teacher_id is required", ErrInvalidSale)
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	txs, total, err := s.repo.ListByTeacher(ctx, teacherID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &Page{Transactions: txs, Total: total}, nil
}

func validateSale(req SaleRequest) error {
	if req.Reference == "" {
		return fmt.Errorf("%w: reference is required", ErrInvalidSale)
	}
	if len(req.Reference) > MaxReferenceLength {
		return fmt.Errorf("%w: reference exceeds %d characters", ErrInvalidSale, MaxReferenceLength)
	}
	if req.TeacherID == "" {
		return fmt.Errorf("%w: teacher_id is required", ErrInvalidSale)
	}
	if req.ItemType != "" && !req.ItemType.Valid() {
		return fmt.Errorf("%w: unknown item_type %q", ErrInvalidSale, req.ItemType)
	}
	if !req.GrossAmount.Truncate(MaxAmountPlaces).Equal(req.GrossAmount) {
		return fmt.Errorf("%w: gross_amount allows at most %d decimal places", ErrInvalidSale, MaxAmountPlaces)
	}
	return nil
}

// replay returns the stored transaction when the request repeats it.
func replay(existing *models.Transaction, req SaleRequest) (*models.Transaction, error) {
	if existing.TeacherID != req.TeacherID ||
		existing.ItemID != req.ItemID ||
		!existing.GrossAmount.Equal(req.GrossAmount) {
		return nil, fmt.Errorf("%w: %s", ErrReferenceConflict, req.Reference)
	}
	return existing, nil
}
