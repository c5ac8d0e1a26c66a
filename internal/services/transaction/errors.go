package transaction

import "errors"

// Service errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidSale         = errors.New("invalid sale")
	ErrReferenceConflict   = errors.New("reference already recorded for a different sale")
)
