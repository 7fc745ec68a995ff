package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddOrderStoresInIndex(t *testing.T) {
	b := NewBook(nil)
	o := newOrder(1, Buy, "100", 10)
	require.NoError(t, b.AddOrder(o))

	ro, ok := b.index[1]
	require.True(t, ok)
	assert.Equal(t, Buy, ro.side)
	assert.True(t, ro.price.Equal(px("100")))
}

func TestCancelOrderRemovesFromLevelNotSiblings(t *testing.T) {
	b := NewBook(nil)
	require.NoError(t, b.AddOrder(newOrder(1, Sell, "105", 5)))
	require.NoError(t, b.AddOrder(newOrder(2, Sell, "105", 5)))

	b.CancelOrder(1)

	lvl, ok := b.asks.levelAt(px("105"))
	require.True(t, ok)
	assert.Equal(t, 1, lvl.orders.Len())

	_, stillIndexed := b.index[1]
	assert.False(t, stillIndexed)
}

func TestCancelLastOrderRemovesLevel(t *testing.T) {
	b := NewBook(nil)
	require.NoError(t, b.AddOrder(newOrder(1, Buy, "99", 5)))

	b.CancelOrder(1)

	assert.Equal(t, 0, b.bids.len())
	_, ok := b.bids.levelAt(px("99"))
	assert.False(t, ok)
}

func TestLadderOrderingDescendingBidsAscendingAsks(t *testing.T) {
	b := NewBook(nil)
	require.NoError(t, b.AddOrder(newOrder(1, Buy, "99", 1)))
	require.NoError(t, b.AddOrder(newOrder(2, Buy, "101", 1)))
	require.NoError(t, b.AddOrder(newOrder(3, Buy, "100", 1)))

	require.NoError(t, b.AddOrder(newOrder(4, Sell, "201", 1)))
	require.NoError(t, b.AddOrder(newOrder(5, Sell, "199", 1)))
	require.NoError(t, b.AddOrder(newOrder(6, Sell, "200", 1)))

	bids := b.SnapshotBids()
	require.Len(t, bids, 3)
	assert.True(t, bids[0].Price.Equal(px("101")))
	assert.True(t, bids[1].Price.Equal(px("100")))
	assert.True(t, bids[2].Price.Equal(px("99")))

	asks := b.SnapshotAsks()
	require.Len(t, asks, 3)
	assert.True(t, asks[0].Price.Equal(px("199")))
	assert.True(t, asks[1].Price.Equal(px("200")))
	assert.True(t, asks[2].Price.Equal(px("201")))
}

func TestQuantizedPricesShareALevel(t *testing.T) {
	b := NewBook(nil)
	require.NoError(t, b.AddOrder(newOrder(1, Buy, "100.000000001", 3)))
	require.NoError(t, b.AddOrder(newOrder(2, Buy, "100.000000002", 4)))

	bids := b.SnapshotBids()
	require.Len(t, bids, 1)
	assert.Equal(t, int64(7), bids[0].Quantity)
}
