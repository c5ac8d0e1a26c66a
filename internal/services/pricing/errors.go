package pricing

import "errors"

// Service errors
var (
	ErrInvalidPercentage = errors.New("platform fee percent must be within [0, 100]")
	ErrInvalidAmount     = errors.New("gross amount must not be negative")
	ErrInvalidScope      = errors.New("invalid fee rule scope")
	ErrRuleNotFound      = errors.New("fee rule not found")
	ErrCorruptRuleData   = errors.New("corrupt fee rule data")
)
