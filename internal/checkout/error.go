package checkout

import "errors"

var (
	ErrValidation     = errors.New("order draft validation failed")
	ErrStockConflict  = errors.New("insufficient stock for one or more items")
	ErrSubmitInFlight = errors.New("an order submission is already in progress")
)
