package engine

// matchLocked is the matching algorithm (spec §4.3), run to completion
// under the book's mutation gate. It repeatedly pairs the best bid with
// the best ask while they cross, producing one trade per pairing and
// removing any order (or empty level) its quantity reaches zero.
//
// Unlike a taker-vs-book aggressor model, add_order never matches — the
// two ladders can sit crossed between an AddOrder and the next
// MatchOrders call (spec §4.1: "invariant 1 may be temporarily violated
// until the next match_orders call"). match_orders is the only place
// price-time priority is actually enforced.
func (b *Book) matchLocked() []Trade {
	var produced []Trade

	for {
		bestBid := b.bids.best()
		bestAsk := b.asks.best()
		if bestBid == nil || bestAsk == nil {
			break
		}
		if bestBid.price.LessThan(bestAsk.price) {
			break
		}

		buyElem := bestBid.orders.Front()
		sellElem := bestAsk.orders.Front()
		buyRO := buyElem.Value.(*restingOrder)
		sellRO := sellElem.Value.(*restingOrder)
		buyOrder := buyRO.order
		sellOrder := sellRO.order

		qty := minQty(buyOrder.Quantity, sellOrder.Quantity)

		trade := Trade{
			TradeID:     b.nextTradeID,
			BuyOrderID:  buyOrder.OrderID,
			SellOrderID: sellOrder.OrderID,
			Quantity:    qty,
			Price:       bestAsk.price, // trade price rule: always the ask side's price (spec §4.3, §9)
			Timestamp:   buyOrder.Timestamp,
		}
		b.nextTradeID++
		b.trades = append(b.trades, trade)
		produced = append(produced, trade)

		buyOrder.Quantity -= qty
		sellOrder.Quantity -= qty
		b.totalVolume += qty
		b.totalNotional = b.totalNotional.Add(trade.Price.Mul(decimalFromInt(qty)))
		b.bidDepth -= qty
		b.askDepth -= qty
		b.metrics.observeResting(Buy, -qty)
		b.metrics.observeResting(Sell, -qty)

		if buyOrder.Quantity == 0 {
			bestBid.orders.Remove(buyElem)
			delete(b.index, buyOrder.OrderID)
			if bestBid.orders.Len() == 0 {
				b.bids.remove(bestBid.price)
			}
		}
		if sellOrder.Quantity == 0 {
			bestAsk.orders.Remove(sellElem)
			delete(b.index, sellOrder.OrderID)
			if bestAsk.orders.Len() == 0 {
				b.asks.remove(bestAsk.price)
			}
		}

		b.metrics.observeTrade(trade)
	}

	return produced
}

func minQty(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
