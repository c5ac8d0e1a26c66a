package transaction

// Default configuration values
const (
	MaxReferenceLength = 100
	DefaultPageSize    = 20
	MaxPageSize        = 100
	// MaxAmountPlaces matches the decimal(14,4) amount columns.
	MaxAmountPlaces = 4
)
