package engine

import "errors"

// Error taxonomy at the core boundary (spec §7). The matcher itself
// cannot fail and snapshot operations cannot fail; these are the only
// two error kinds the façade returns.
var (
	// ErrInvalidOrder is returned by AddOrder when quantity or price is
	// non-positive, or the side is unrecognized.
	ErrInvalidOrder = errors.New("engine: invalid order")

	// ErrDuplicateOrderID is returned by AddOrder when the order ID is
	// already resting in the book. The spec permits either detecting
	// and rejecting this (recommended) or trusting the caller; this
	// implementation takes the recommended path.
	ErrDuplicateOrderID = errors.New("engine: duplicate order id")
)
