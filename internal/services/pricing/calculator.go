package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Split divides grossAmount using percent, rounding the platform fee half-up to the given
// number of decimal places. The net amount is derived by subtraction so that
// PlatformFee + NetAmount == GrossAmount.
func Split(grossAmount, percent decimal.Decimal, places int32) (SplitResult, error) {
	if grossAmount.IsNegative() {
		return SplitResult{}, fmt.Errorf("%w: %s", ErrInvalidAmount, grossAmount)
	}
	if !validPercent(percent) {
		return SplitResult{}, fmt.Errorf("%w: %s", ErrInvalidPercentage, percent)
	}

	// Shift(-2) is an exact division by 100, so the fee is rounded only once.
	// Round is half away from zero, which is half-up for non-negative amounts.
	fee := grossAmount.Mul(percent).Shift(-2).Round(places)
	return SplitResult{
		GrossAmount: grossAmount,
		PlatformFee: fee,
		NetAmount:   grossAmount.Sub(fee),
	}, nil
}

func validPercent(p decimal.Decimal) bool {
	return !p.LessThan(percentMin) && !p.GreaterThan(percentMax)
}

// storablePercent reports whether p survives the decimal(7,4) column unchanged.
// Trailing zeros beyond the fourth place are fine.
func storablePercent(p decimal.Decimal) bool {
	return p.Truncate(MaxPercentPlaces).Equal(p)
}

func (s *service) Split(grossAmount, percent decimal.Decimal) (SplitResult, error) {
	result, err := Split(grossAmount, percent, s.config.MinorUnitPlaces)
	if err != nil {
		s.metrics.RecordError("split", errorType(err))
		return SplitResult{}, err
	}
	s.metrics.RecordSplit(result.GrossAmount.InexactFloat64(), result.PlatformFee.InexactFloat64())
	return result, nil
}
