package repositories

import (
	"context"
	"errors"
	"sort"
	"tutorly/internal/models"
)

var (
	ErrFeeRuleNotFound = errors.New("fee rule not found")
)

// FeeRuleRepository stores fee rules.
type FeeRuleRepository interface {
	// List returns every rule, active or not, most recently updated first.
	List(ctx context.Context) ([]models.FeeRule, error)
	GetByID(ctx context.Context, id string) (*models.FeeRule, error)
	// FindByScope returns the active rules of a scope for a key (teacher id, item id, or "" for GLOBAL).
	FindByScope(ctx context.Context, scope models.FeeScope, key string) ([]models.FeeRule, error)
	// Upsert replaces the rule sharing rule.ID. When the rule is active, every other active
	// rule with the same (scope, key) is deactivated in the same write.
	Upsert(ctx context.Context, rule *models.FeeRule) error
}

// SortByRecency orders rules by UpdatedAt descending, then ID ascending.
func SortByRecency(rules []models.FeeRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if !rules[i].UpdatedAt.Equal(rules[j].UpdatedAt) {
			return rules[i].UpdatedAt.After(rules[j].UpdatedAt)
		}
		return rules[i].ID < rules[j].ID
	})
}
