package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrUpstream      = errors.New("order service unavailable")
	ErrSlipTooLarge  = errors.New("payment slip exceeds the 5MB limit")
)

// MaxSlipSize caps payment slip uploads, enforced before any bytes leave
// this service.
const MaxSlipSize = 5 << 20
