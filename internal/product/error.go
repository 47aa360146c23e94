package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUpstream        = errors.New("product service unavailable")
)
