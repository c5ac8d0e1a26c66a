package pricing

import (
	"context"
	"fmt"
	"tutorly/internal/models"
	"tutorly/internal/repositories"
)

func (s *service) Resolve(ctx context.Context, teacherID, itemID string, itemType models.ItemType) (Resolution, error) {
	if itemID != "" {
		rules, err := s.repo.FindByScope(ctx, models.FeeScopeItem, itemID)
		if err != nil {
			return Resolution{}, s.resolveFailed(models.FeeScopeItem, err)
		}
		if rule := pick(rules, func(r *models.FeeRule) bool {
			return itemType == "" || r.ItemType == "" || r.ItemType == itemType
		}); rule != nil {
			return s.resolved(rule)
		}
	}

	if teacherID != "" {
		rules, err := s.repo.FindByScope(ctx, models.FeeScopeTeacher, teacherID)
		if err != nil {
			return Resolution{}, s.resolveFailed(models.FeeScopeTeacher, err)
		}
		if rule := pick(rules, nil); rule != nil {
			return s.resolved(rule)
		}
	}

	rules, err := s.repo.FindByScope(ctx, models.FeeScopeGlobal, "")
	if err != nil {
		return Resolution{}, s.resolveFailed(models.FeeScopeGlobal, err)
	}
	if rule := pick(rules, nil); rule != nil {
		return s.resolved(rule)
	}

	s.metrics.RecordResolution(models.FeeSourceFallback)
	return Resolution{
		Percent: s.config.FallbackPercent.Decimal,
		Scope:   models.FeeSourceFallback,
	}, nil
}

// pick returns the most recently updated active rule accepted by match.
func pick(rules []models.FeeRule, match func(*models.FeeRule) bool) *models.FeeRule {
	candidates := make([]models.FeeRule, 0, len(rules))
	for i := range rules {
		if !rules[i].Active {
			continue
		}
		if match != nil && !match(&rules[i]) {
			continue
		}
		candidates = append(candidates, rules[i])
	}
	if len(candidates) == 0 {
		return nil
	}
	repositories.SortByRecency(candidates)
	return &candidates[0]
}

func (s *service) resolved(rule *models.FeeRule) (Resolution, error) {
	if !validPercent(rule.PlatformFeePercent) {
		s.metrics.RecordError("resolve", "corrupt_rule")
		s.logger.Error("fee rule with out-of-range percent selected",
			"rule_id", rule.ID, "scope", rule.Scope, "percent", rule.PlatformFeePercent.String())
		return Resolution{}, fmt.Errorf("%w: rule %s has percent %s", ErrCorruptRuleData, rule.ID, rule.PlatformFeePercent)
	}
	s.metrics.RecordResolution(rule.Scope)
	return Resolution{
		Percent: rule.PlatformFeePercent,
		Scope:   rule.Scope,
		RuleID:  rule.ID,
	}, nil
}

func (s *service) resolveFailed(scope models.FeeScope, err error) error {
	s.metrics.RecordError("resolve", "repository")
	return fmt.Errorf("failed to load %s fee rules: %w", scope, err)
}
