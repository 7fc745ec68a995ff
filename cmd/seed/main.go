// Command seed reproduces the sample book the original trading API
// constructed at startup for demonstration purposes (four resting
// orders, immediately matched), then prints the resulting trades and
// market summary. It supersedes the teacher's cmd/engine demo, which
// exercised the old aggressor-matches-immediately API.
package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"lob/internal/engine"
)

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	book := engine.NewBook(logger)
	now := time.Now().UnixNano()

	orders := []*engine.Order{
		{OrderID: 1, Side: engine.Buy, Quantity: 100, Price: decimal.NewFromFloat(99.50), ClientID: "client1", Timestamp: now},
		{OrderID: 2, Side: engine.Buy, Quantity: 200, Price: decimal.NewFromFloat(99.00), ClientID: "client2", Timestamp: now},
		{OrderID: 3, Side: engine.Sell, Quantity: 150, Price: decimal.NewFromFloat(100.50), ClientID: "client3", Timestamp: now},
		{OrderID: 4, Side: engine.Sell, Quantity: 300, Price: decimal.NewFromFloat(101.00), ClientID: "client4", Timestamp: now},
	}

	for _, o := range orders {
		if err := book.AddOrder(o); err != nil {
			logger.Fatal("seed order rejected", zap.Error(err), zap.Uint64("order_id", o.OrderID))
		}
	}

	// None of the four cross (bids top out at 99.50, asks bottom out at
	// 100.50) so this call produces no trades — it mirrors the
	// constructor's own match_orders() call rather than asserting a
	// result, since the sample book is deliberately non-crossing.
	trades := book.MatchOrders()

	fmt.Printf("seeded %d orders, produced %d trades\n", len(orders), len(trades))
	for _, t := range trades {
		fmt.Printf("  trade %d: %s @ %s (buy=%d sell=%d)\n", t.TradeID, decimal.NewFromInt(t.Quantity), t.Price, t.BuyOrderID, t.SellOrderID)
	}

	summary := book.MarketSummary()
	fmt.Printf("bid depth=%d ask depth=%d total trades=%d total volume=%d\n",
		summary.TotalBidDepth, summary.TotalAskDepth, summary.TotalTrades, summary.TotalVolume)
}
