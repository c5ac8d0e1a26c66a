package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Fee engine defaults
const (
	DefaultFallbackPercent = "15"
	DefaultMinorUnitPlaces = 2
	DefaultRuleCacheTTL    = time.Minute
	// MaxFeePercentPlaces matches the decimal(7,4) percent columns.
	MaxFeePercentPlaces = 4
)

// FeeConfig holds the per-deployment settings of the fee engine.
type FeeConfig struct {
	// FallbackPercent applies when no GLOBAL, TEACHER or ITEM rule matches.
	FallbackPercent decimal.Decimal
	// MinorUnitPlaces is the number of decimal places of the currency minor unit.
	MinorUnitPlaces int32
	RuleCacheTTL    time.Duration
}

// LoadFeeConfig reads FEE_FALLBACK_PERCENT, FEE_MINOR_UNIT_PLACES and FEE_RULE_CACHE_TTL.
func LoadFeeConfig() (FeeConfig, error) {
	raw := GetEnv("FEE_FALLBACK_PERCENT", DefaultFallbackPercent)
	fallback, err := decimal.NewFromString(raw)
	if err != nil {
		return FeeConfig{}, fmt.Errorf("invalid FEE_FALLBACK_PERCENT %q: %w", raw, err)
	}
	if fallback.IsNegative() || fallback.GreaterThan(decimal.NewFromInt(100)) {
		return FeeConfig{}, fmt.Errorf("FEE_FALLBACK_PERCENT must be within [0,100], got %s", fallback)
	}
	if !fallback.Truncate(MaxFeePercentPlaces).Equal(fallback) {
		return FeeConfig{}, fmt.Errorf("FEE_FALLBACK_PERCENT allows at most %d decimal places, got %s",
			MaxFeePercentPlaces, fallback)
	}

	places := GetIntEnv("FEE_MINOR_UNIT_PLACES", DefaultMinorUnitPlaces)
	if places < 0 || places > 4 {
		return FeeConfig{}, fmt.Errorf("FEE_MINOR_UNIT_PLACES must be within [0,4], got %d", places)
	}

	return FeeConfig{
		FallbackPercent: fallback,
		MinorUnitPlaces: int32(places),
		RuleCacheTTL:    GetDurationEnv("FEE_RULE_CACHE_TTL", DefaultRuleCacheTTL),
	}, nil
}
