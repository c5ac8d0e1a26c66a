package pricing

import "github.com/shopspring/decimal"

// Default configuration values
const (
	DefaultFallbackPercent = 15
	DefaultMinorUnitPlaces = 2
	// MaxPercentPlaces matches the decimal(7,4) platform_fee_percent columns.
	MaxPercentPlaces = 4
)

var (
	percentMin = decimal.Zero
	percentMax = decimal.NewFromInt(100)
)
