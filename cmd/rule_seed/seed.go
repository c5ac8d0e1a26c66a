package main

import (
	"context"
	"fmt"

	"tutorly/internal/models"
	"tutorly/internal/services/pricing"

	"github.com/shopspring/decimal"
)

const seedDescription = "platform default"

// seedGlobalRule creates the GLOBAL rule unless an active one already exists.
func seedGlobalRule(ctx context.Context, fees pricing.Service, admin pricing.Admin, percent decimal.Decimal) (*models.FeeRule, bool, error) {
	rules, err := fees.ListRules(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range rules {
		if rules[i].Scope == models.FeeScopeGlobal && rules[i].Active {
			return &rules[i], false, nil
		}
	}

	rule, err := fees.SaveRule(ctx, admin, pricing.RuleInput{
		Scope:              models.FeeScopeGlobal,
		PlatformFeePercent: percent,
		Description:        seedDescription,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to seed global fee rule: %w", err)
	}
	return rule, true, nil
}
