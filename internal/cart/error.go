package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrMissingID       = errors.New("product id is required")

	// -- Resource State --
	ErrItemNotFound = errors.New("cart item not found")
)

const (
	MinQuantity = 1
	MaxQuantity = 99
)
