package repositories

import (
	"context"
	"sync"
	"tutorly/internal/models"
)

// MemoryFeeRuleRepository keeps fee rules in process memory.
type MemoryFeeRuleRepository struct {
	mu    sync.RWMutex
	rules map[string]models.FeeRule
}

func NewMemoryFeeRuleRepository(seed ...models.FeeRule) *MemoryFeeRuleRepository {
	r := &MemoryFeeRuleRepository{rules: make(map[string]models.FeeRule, len(seed))}
	for _, rule := range seed {
		r.rules[rule.ID] = rule
	}
	return r
}

func (r *MemoryFeeRuleRepository) List(ctx context.Context) ([]models.FeeRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]models.FeeRule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	SortByRecency(rules)
	return rules, nil
}

func (r *MemoryFeeRuleRepository) GetByID(ctx context.Context, id string) (*models.FeeRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[id]
	if !ok {
		return nil, ErrFeeRuleNotFound
	}
	return &rule, nil
}

func (r *MemoryFeeRuleRepository) FindByScope(ctx context.Context, scope models.FeeScope, key string) ([]models.FeeRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rules []models.FeeRule
	for _, rule := range r.rules {
		if rule.Active && rule.Scope == scope && rule.Key() == key {
			rules = append(rules, rule)
		}
	}
	SortByRecency(rules)
	return rules, nil
}

func (r *MemoryFeeRuleRepository) Upsert(ctx context.Context, rule *models.FeeRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rule.Active {
		for id, existing := range r.rules {
			if id != rule.ID && existing.Active && existing.SameKey(rule) {
				existing.Active = false
				r.rules[id] = existing
			}
		}
	}
	r.rules[rule.ID] = *rule
	return nil
}
