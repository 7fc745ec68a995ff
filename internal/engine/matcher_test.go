package engine

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQuantityConservation pins the invariant from spec §8:
// resting + 2*traded = submitted - cancelled-at-cancel-time.
func TestQuantityConservation(t *testing.T) {
	b := NewBook(nil)

	var submitted int64
	add := func(id uint64, side Side, price string, qty int64) {
		require.NoError(t, b.AddOrder(newOrder(id, side, price, qty)))
		submitted += qty
	}

	add(1, Sell, "100", 3)
	add(2, Sell, "101", 5)
	add(3, Buy, "100", 4)
	add(4, Buy, "99", 2)

	b.CancelOrder(4)
	var cancelled int64 = 2

	trades := b.MatchOrders()

	var traded int64
	for _, tr := range trades {
		traded += tr.Quantity
	}

	var resting int64
	for _, lvl := range b.SnapshotBids() {
		resting += lvl.Quantity
	}
	for _, lvl := range b.SnapshotAsks() {
		resting += lvl.Quantity
	}

	assert.Equal(t, submitted-cancelled, resting+2*traded)
}

// TestWalkMultipleAskLevels matches a single aggressive buy across
// several distinct ask price levels, in ascending price order.
func TestWalkMultipleAskLevels(t *testing.T) {
	b := NewBook(nil)

	for i := 0; i < 10; i++ {
		id := uint64(i + 1)
		price := strconv.Itoa(100 + i)
		require.NoError(t, b.AddOrder(newOrder(id, Sell, price, 1)))
	}

	require.NoError(t, b.AddOrder(newOrder(999, Buy, "115", 5)))
	trades := b.MatchOrders()
	require.Len(t, trades, 5)

	for i := 0; i < 5; i++ {
		assert.Equal(t, uint64(i+1), trades[i].SellOrderID)
	}

	asks := b.SnapshotAsks()
	require.Len(t, asks, 5)
	assert.True(t, asks[0].Price.Equal(px("105")))
}

// TestFIFONotTimestamp checks that priority within a level follows
// insertion order into the FIFO, not timestamp comparison — two orders
// inserted with out-of-order timestamps still fill in insertion order.
func TestFIFONotTimestamp(t *testing.T) {
	b := NewBook(nil)

	first := newOrder(1, Buy, "100", 5)
	first.Timestamp = 500 // later wall-clock reading than the second order

	second := newOrder(2, Buy, "100", 5)
	second.Timestamp = 100

	require.NoError(t, b.AddOrder(first))
	require.NoError(t, b.AddOrder(second))
	require.NoError(t, b.AddOrder(newOrder(3, Sell, "100", 5)))

	trades := b.MatchOrders()
	require.Len(t, trades, 1)
	assert.Equal(t, uint64(1), trades[0].BuyOrderID, "earlier-inserted order fills first regardless of timestamp")
}
