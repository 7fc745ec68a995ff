package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func px(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newOrder(id uint64, side Side, price string, qty int64) *Order {
	return &Order{
		OrderID:   id,
		Side:      side,
		Quantity:  qty,
		Price:     px(price),
		ClientID:  "c",
		Timestamp: int64(id), // monotonic stand-in; distinct per order id
	}
}

// Scenario 1: simple cross.
func TestSimpleCross(t *testing.T) {
	b := NewBook(nil)
	require.NoError(t, b.AddOrder(newOrder(1, Buy, "100", 10)))
	require.NoError(t, b.AddOrder(newOrder(2, Sell, "100", 10)))

	trades := b.MatchOrders()
	require.Len(t, trades, 1)
	assert.Equal(t, uint64(0), trades[0].TradeID)
	assert.Equal(t, uint64(1), trades[0].BuyOrderID)
	assert.Equal(t, uint64(2), trades[0].SellOrderID)
	assert.Equal(t, int64(10), trades[0].Quantity)
	assert.True(t, trades[0].Price.Equal(px("100")))

	assert.Empty(t, b.SnapshotBids())
	assert.Empty(t, b.SnapshotAsks())
}

// Scenario 2: partial fill with price improvement for the buyer.
func TestPartialFillPriceImprovement(t *testing.T) {
	b := NewBook(nil)
	require.NoError(t, b.AddOrder(newOrder(1, Sell, "99", 5)))
	require.NoError(t, b.AddOrder(newOrder(2, Buy, "100", 8)))

	trades := b.MatchOrders()
	require.Len(t, trades, 1)
	assert.Equal(t, uint64(2), trades[0].BuyOrderID)
	assert.Equal(t, uint64(1), trades[0].SellOrderID)
	assert.Equal(t, int64(5), trades[0].Quantity)
	assert.True(t, trades[0].Price.Equal(px("99")))

	bids := b.SnapshotBids()
	require.Len(t, bids, 1)
	assert.True(t, bids[0].Price.Equal(px("100")))
	assert.Equal(t, int64(3), bids[0].Quantity)
	assert.Empty(t, b.SnapshotAsks())
}

// Scenario 3: FIFO priority at a single level.
func TestFIFOAtLevel(t *testing.T) {
	b := NewBook(nil)
	require.NoError(t, b.AddOrder(newOrder(1, Buy, "100", 5)))
	require.NoError(t, b.AddOrder(newOrder(2, Buy, "100", 5)))
	require.NoError(t, b.AddOrder(newOrder(3, Sell, "100", 7)))

	trades := b.MatchOrders()
	require.Len(t, trades, 2)
	assert.Equal(t, uint64(0), trades[0].TradeID)
	assert.Equal(t, uint64(1), trades[0].BuyOrderID)
	assert.Equal(t, int64(5), trades[0].Quantity)
	assert.Equal(t, uint64(1), trades[1].TradeID)
	assert.Equal(t, uint64(2), trades[1].BuyOrderID)
	assert.Equal(t, int64(2), trades[1].Quantity)

	bids := b.SnapshotBids()
	require.Len(t, bids, 1)
	assert.Equal(t, int64(3), bids[0].Quantity)
}

// Scenario 4: no cross, both orders rest.
func TestNoCross(t *testing.T) {
	b := NewBook(nil)
	require.NoError(t, b.AddOrder(newOrder(1, Buy, "99", 10)))
	require.NoError(t, b.AddOrder(newOrder(2, Sell, "101", 10)))

	trades := b.MatchOrders()
	assert.Empty(t, trades)
	assert.Len(t, b.SnapshotBids(), 1)
	assert.Len(t, b.SnapshotAsks(), 1)
}

// Scenario 5: cancel before match.
func TestCancelBeforeMatch(t *testing.T) {
	b := NewBook(nil)
	require.NoError(t, b.AddOrder(newOrder(1, Buy, "100", 10)))
	b.CancelOrder(1)
	require.NoError(t, b.AddOrder(newOrder(2, Sell, "100", 10)))

	trades := b.MatchOrders()
	assert.Empty(t, trades)

	asks := b.SnapshotAsks()
	require.Len(t, asks, 1)
	assert.True(t, asks[0].Price.Equal(px("100")))
	assert.Equal(t, int64(10), asks[0].Quantity)
	assert.Empty(t, b.SnapshotBids())
}

// Scenario 6: seeded, non-crossed book produces no trades.
func TestSeededBookNoCross(t *testing.T) {
	b := NewBook(nil)
	require.NoError(t, b.AddOrder(newOrder(1, Buy, "99.50", 100)))
	require.NoError(t, b.AddOrder(newOrder(2, Buy, "99.00", 200)))
	require.NoError(t, b.AddOrder(newOrder(3, Sell, "100.50", 150)))
	require.NoError(t, b.AddOrder(newOrder(4, Sell, "101.00", 300)))

	trades := b.MatchOrders()
	assert.Empty(t, trades)
	assert.Len(t, b.SnapshotBids(), 2)
	assert.Len(t, b.SnapshotAsks(), 2)
}

func TestAddOrderRejectsInvalid(t *testing.T) {
	b := NewBook(nil)
	assert.ErrorIs(t, b.AddOrder(newOrder(1, Buy, "100", 0)), ErrInvalidOrder)
	assert.ErrorIs(t, b.AddOrder(newOrder(1, Buy, "0", 10)), ErrInvalidOrder)
}

func TestAddOrderRejectsDuplicateID(t *testing.T) {
	b := NewBook(nil)
	require.NoError(t, b.AddOrder(newOrder(1, Buy, "100", 10)))
	assert.ErrorIs(t, b.AddOrder(newOrder(1, Sell, "100", 5)), ErrDuplicateOrderID)
}

func TestCancelUnknownOrderIsNoop(t *testing.T) {
	b := NewBook(nil)
	require.NoError(t, b.AddOrder(newOrder(1, Buy, "100", 10)))
	b.CancelOrder(999)
	assert.Len(t, b.SnapshotBids(), 1)
}

func TestIdempotentCancel(t *testing.T) {
	b := NewBook(nil)
	require.NoError(t, b.AddOrder(newOrder(1, Buy, "100", 10)))
	b.CancelOrder(1)
	before := b.SnapshotBids()
	b.CancelOrder(1)
	after := b.SnapshotBids()
	assert.Equal(t, before, after)
	assert.Empty(t, after)
}

func TestMatchIdempotentAtRest(t *testing.T) {
	b := NewBook(nil)
	require.NoError(t, b.AddOrder(newOrder(1, Buy, "99", 10)))
	require.NoError(t, b.AddOrder(newOrder(2, Sell, "101", 10)))
	require.Empty(t, b.MatchOrders())

	bidsBefore, asksBefore := b.SnapshotBids(), b.SnapshotAsks()
	require.Empty(t, b.MatchOrders())
	assert.Equal(t, bidsBefore, b.SnapshotBids())
	assert.Equal(t, asksBefore, b.SnapshotAsks())
}

func TestTradeIDMonotonicity(t *testing.T) {
	b := NewBook(nil)
	for i := int64(0); i < 5; i++ {
		require.NoError(t, b.AddOrder(newOrder(uint64(i*2+1), Sell, "100", 1)))
	}
	require.NoError(t, b.AddOrder(newOrder(99, Buy, "100", 5)))

	trades := b.MatchOrders()
	require.Len(t, trades, 5)
	for i, tr := range trades {
		assert.Equal(t, uint64(i), tr.TradeID)
	}
}

func TestNoCrossedBookInvariant(t *testing.T) {
	b := NewBook(nil)
	require.NoError(t, b.AddOrder(newOrder(1, Buy, "100", 5)))
	require.NoError(t, b.AddOrder(newOrder(2, Sell, "101", 5)))
	b.MatchOrders()

	bids, asks := b.SnapshotBids(), b.SnapshotAsks()
	if len(bids) > 0 && len(asks) > 0 {
		assert.True(t, bids[0].Price.LessThan(asks[0].Price))
	}
}

func TestMarketSummaryTracksTrades(t *testing.T) {
	b := NewBook(nil)
	require.NoError(t, b.AddOrder(newOrder(1, Buy, "100", 10)))
	require.NoError(t, b.AddOrder(newOrder(2, Sell, "100", 4)))
	b.MatchOrders()

	summary := b.MarketSummary()
	assert.Equal(t, int64(1), summary.TotalTrades)
	assert.Equal(t, int64(4), summary.TotalVolume)
	assert.True(t, summary.TotalNotional.Equal(px("400")))
	assert.Equal(t, int64(6), summary.TotalBidDepth)
	assert.Equal(t, int64(0), summary.TotalAskDepth)
}
