package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"tutorly/internal/models"
)

const (
	feeRuleCachePattern = "fee_rules:*"
	feeRuleCacheAllKey  = "fee_rules:all"
)

// RuleCache is the subset of cache.CacheService used for fee rules.
type RuleCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeletePattern(ctx context.Context, pattern string) error
}

// CachedFeeRuleRepository serves rule reads from the cache and invalidates it on every write.
// Invalidation runs before and after the write so the writer always reads its own change.
type CachedFeeRuleRepository struct {
	next   FeeRuleRepository
	cache  RuleCache
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedFeeRuleRepository(next FeeRuleRepository, cache RuleCache, ttl time.Duration, logger *slog.Logger) *CachedFeeRuleRepository {
	if next == nil {
		panic("next repository is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedFeeRuleRepository{next: next, cache: cache, ttl: ttl, logger: logger}
}

func scopeCacheKey(scope models.FeeScope, key string) string {
	return fmt.Sprintf("fee_rules:scope:%s:%s", scope, key)
}

func (r *CachedFeeRuleRepository) List(ctx context.Context) ([]models.FeeRule, error) {
	return r.cached(ctx, feeRuleCacheAllKey, func() ([]models.FeeRule, error) {
		return r.next.List(ctx)
	})
}

func (r *CachedFeeRuleRepository) GetByID(ctx context.Context, id string) (*models.FeeRule, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedFeeRuleRepository) FindByScope(ctx context.Context, scope models.FeeScope, key string) ([]models.FeeRule, error) {
	return r.cached(ctx, scopeCacheKey(scope, key), func() ([]models.FeeRule, error) {
		return r.next.FindByScope(ctx, scope, key)
	})
}

func (r *CachedFeeRuleRepository) Upsert(ctx context.Context, rule *models.FeeRule) error {
	if err := r.cache.DeletePattern(ctx, feeRuleCachePattern); err != nil {
		return fmt.Errorf("failed to invalidate fee rule cache: %w", err)
	}
	if err := r.next.Upsert(ctx, rule); err != nil {
		return err
	}
	if err := r.cache.DeletePattern(ctx, feeRuleCachePattern); err != nil {
		r.logger.Error("fee rule cache invalidation after write failed", "rule_id", rule.ID, "err", err)
	}
	return nil
}

func (r *CachedFeeRuleRepository) cached(ctx context.Context, key string, load func() ([]models.FeeRule, error)) ([]models.FeeRule, error) {
	var rules []models.FeeRule
	found, err := r.cache.Get(ctx, key, &rules)
	if err != nil {
		r.logger.Warn("fee rule cache read failed", "key", key, "err", err)
	}
	if found {
		return rules, nil
	}

	rules, err = load()
	if err != nil {
		return nil, err
	}
	if err := r.cache.SetWithTTL(ctx, key, rules, r.ttl); err != nil {
		r.logger.Warn("fee rule cache write failed", "key", key, "err", err)
	}
	return rules, nil
}
