package engine

import (
	"container/list"

	"github.com/shopspring/decimal"
)

// priceScale is the number of decimal places a price is rounded to
// before it is used as a ladder key. Orders and trades keep the price
// exactly as the caller supplied it; only level identity and ordering
// are quantized (spec §9's fixed-point suggestion).
const priceScale = 8

func quantize(price decimal.Decimal) string {
	return price.Round(priceScale).String()
}

// priceLevel is the FIFO queue of resting orders at a single price.
// container/list gives every element a stable address, so the order
// index can hold a *list.Element across neighboring inserts/removes
// (spec §9, "erasure-stable queues").
type priceLevel struct {
	price  decimal.Decimal
	orders *list.List // of *restingOrder, oldest first
}

func newPriceLevel(price decimal.Decimal) *priceLevel {
	return &priceLevel{price: price, orders: list.New()}
}

func (l *priceLevel) totalQuantity() int64 {
	var total int64
	for e := l.orders.Front(); e != nil; e = e.Next() {
		total += e.Value.(*restingOrder).order.Quantity
	}
	return total
}
