package pricing

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
	"tutorly/internal/repositories"

	"github.com/shopspring/decimal"
)

type service struct {
	repo    repositories.FeeRuleRepository
	audit   AuditRecorder
	config  Config
	metrics MetricsCollector
	logger  *slog.Logger

	// serializes rule writes
	mu sync.Mutex
}

// NewService creates a new fee engine
func NewService(
	repo repositories.FeeRuleRepository,
	audit AuditRecorder,
	config Config,
	metrics MetricsCollector,
	logger *slog.Logger,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if audit == nil {
		panic("audit recorder is required")
	}

	if !config.FallbackPercent.Valid {
		config.FallbackPercent = decimal.NewNullDecimal(decimal.NewFromInt(DefaultFallbackPercent))
	}
	if !validPercent(config.FallbackPercent.Decimal) {
		panic("fallback percent must be within [0, 100]")
	}
	if !storablePercent(config.FallbackPercent.Decimal) {
		panic("fallback percent has too many decimal places")
	}
	if config.MinorUnitPlaces < 0 {
		config.MinorUnitPlaces = DefaultMinorUnitPlaces
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		repo:    repo,
		audit:   audit,
		config:  config,
		metrics: metrics,
		logger:  logger.With("component", "pricing"),
	}
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	if req.GrossAmount.IsNegative() {
		s.metrics.RecordError("quote", "invalid_amount")
		return nil, ErrInvalidAmount
	}

	resolution, err := s.Resolve(ctx, req.TeacherID, req.ItemID, req.ItemType)
	if err != nil {
		return nil, err
	}

	split, err := s.Split(req.GrossAmount, resolution.Percent)
	if err != nil {
		return nil, err
	}

	return &Quote{Resolution: resolution, SplitResult: split}, nil
}

func (s *service) now() time.Time {
	return s.config.Now().UTC()
}

func errorType(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPercentage):
		return "invalid_percentage"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrInvalidScope):
		return "invalid_scope"
	case errors.Is(err, ErrRuleNotFound):
		return "rule_not_found"
	case errors.Is(err, ErrCorruptRuleData):
		return "corrupt_rule"
	default:
		return "internal"
	}
}
