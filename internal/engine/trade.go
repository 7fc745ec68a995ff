package engine

import "github.com/shopspring/decimal"

// Trade is an executed match, append-only once emitted by the matcher.
type Trade struct {
	TradeID     uint64
	BuyOrderID  uint64
	SellOrderID uint64
	Quantity    int64
	Price       decimal.Decimal // the resting ask side's price at match time (§4.3)
	Timestamp   int64           // the buy order's arrival timestamp (§4.3, §9)
}
