package engine

import (
	"container/list"

	"github.com/shopspring/decimal"
)

// restingOrder is the order index's handle into a ladder's FIFO (spec
// §4.4). It carries the side explicitly rather than re-deriving it from
// ladder membership, which the source's cancel_order got wrong: testing
// buy-map membership first misidentifies an order if the same price
// happens to exist on both ladders, a real possibility in the window
// before the next match_orders call.
type restingOrder struct {
	order *Order
	side  Side
	price decimal.Decimal
	elem  *list.Element // this order's node inside its priceLevel.orders
}
