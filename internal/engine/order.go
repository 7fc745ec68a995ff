package engine

import "github.com/shopspring/decimal"

// Side is the direction of an order: the buy (bid) side or the sell
// (ask) side of the book.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// ParseSide accepts the wire spelling used by the REST adapter.
func ParseSide(s string) (Side, error) {
	switch s {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	default:
		return 0, ErrInvalidOrder
	}
}

// Order is an immutable submission record, except for Quantity, which
// is mutated in place while the order rests in the book to reflect
// partial fills (spec §3).
type Order struct {
	OrderID   uint64
	Side      Side
	Quantity  int64 // non-negative; decremented by the matcher
	Price     decimal.Decimal
	ClientID  string
	Timestamp int64 // monotonic nanoseconds, arrival time; debugging/stamping only
}
