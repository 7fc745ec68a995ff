package engine

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Book is the single mutation gate over the ladders, the order index,
// and the trade log (spec §4.1, §5). Every exported method that reads or
// mutates that state acquires mu for its whole duration (RegisterMetrics
// touches only the Prometheus collectors and does not); readers copy state out rather than lending
// references to it, so nothing with a pointer into the book's internals
// ever escapes the façade.
type Book struct {
	mu sync.Mutex

	bids  *ladder
	asks  *ladder
	index map[uint64]*restingOrder

	trades      []Trade
	nextTradeID uint64

	totalVolume   int64
	totalNotional decimal.Decimal
	bidDepth      int64
	askDepth      int64

	metrics *bookMetrics
	log     *zap.Logger
}

// NewBook constructs an empty book. logger may be nil, in which case a
// no-op logger is used.
func NewBook(logger *zap.Logger) *Book {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Book{
		bids:          newLadder(true),
		asks:          newLadder(false),
		index:         make(map[uint64]*restingOrder),
		totalNotional: decimal.Zero,
		metrics:       newBookMetrics(),
		log:           logger,
	}
}

// RegisterMetrics registers the book's Prometheus collectors with reg.
// Call once per process, after construction and before serving /metrics.
func (b *Book) RegisterMetrics(reg prometheus.Registerer) {
	b.metrics.Register(reg)
}

func (b *Book) ladderFor(side Side) *ladder {
	if side == Buy {
		return b.bids
	}
	return b.asks
}

// adjustDepth keeps the two running depth counters in lockstep with
// every ladder mutation, so MarketSummary never has to re-walk either
// ladder (spec §4.6 — "exposed for efficiency" taken literally).
func (b *Book) adjustDepth(side Side, delta int64) {
	if side == Buy {
		b.bidDepth += delta
	} else {
		b.askDepth += delta
	}
}

// AddOrder places o at the tail of the FIFO at its price on the
// appropriate ladder and registers it in the index. It does not match.
//
// Preconditions enforced here: order_id not already present, quantity >
// 0, price > 0 (spec §4.1). Invariant 1 (no crossed book) may be
// temporarily violated until the next MatchOrders call — that is by
// design, not a bug: matching is a separate, explicit operation.
func (b *Book) AddOrder(o *Order) error {
	if o.Quantity <= 0 || o.Price.Sign() <= 0 {
		return ErrInvalidOrder
	}
	if o.Side != Buy && o.Side != Sell {
		return ErrInvalidOrder
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.index[o.OrderID]; exists {
		return ErrDuplicateOrderID
	}

	lad := b.ladderFor(o.Side)
	lvl := lad.getOrCreate(o.Price)

	ro := &restingOrder{order: o, side: o.Side, price: o.Price}
	ro.elem = lvl.orders.PushBack(ro)
	b.index[o.OrderID] = ro

	b.adjustDepth(o.Side, o.Quantity)
	b.metrics.observeResting(o.Side, o.Quantity)
	b.log.Debug("order resting",
		zap.Uint64("order_id", o.OrderID),
		zap.String("side", o.Side.String()),
		zap.String("price", o.Price.String()),
		zap.Int64("quantity", o.Quantity),
	)
	return nil
}

// CancelOrder removes order_id from its ladder and from the index. An
// unknown ID is a silent no-op (spec §4.1, §7).
func (b *Book) CancelOrder(orderID uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancelLocked(orderID)
}

func (b *Book) cancelLocked(orderID uint64) {
	ro, ok := b.index[orderID]
	if !ok {
		return
	}
	lad := b.ladderFor(ro.side)
	lvl, ok := lad.levelAt(ro.price)
	if ok {
		lvl.orders.Remove(ro.elem)
		if lvl.orders.Len() == 0 {
			lad.remove(ro.price)
		}
		b.adjustDepth(ro.side, -ro.order.Quantity)
		b.metrics.observeResting(ro.side, -ro.order.Quantity)
	}
	delete(b.index, orderID)
}

// MatchOrders runs the matching algorithm to completion and returns the
// trades it produced. Returning them — instead of invoking a callback
// from inside the gate — is the decoupling mechanism spec §5 calls for:
// a broadcaster can take the slice and notify listeners after the lock
// is released.
func (b *Book) MatchOrders() []Trade {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.matchLocked()
}

// SnapshotBids returns bids aggregated by price, descending.
func (b *Book) SnapshotBids() []LevelView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bids.snapshot()
}

// SnapshotAsks returns asks aggregated by price, ascending.
func (b *Book) SnapshotAsks() []LevelView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.asks.snapshot()
}

// SnapshotTrades returns the trade log in insertion (trade_id) order.
func (b *Book) SnapshotTrades() []Trade {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Trade, len(b.trades))
	copy(out, b.trades)
	return out
}

// MarketSummary is the set of derived counters spec §4.1 calls out for
// efficient exposure.
type MarketSummary struct {
	TotalTrades   int64
	TotalVolume   int64
	TotalNotional decimal.Decimal
	TotalBidDepth int64
	TotalAskDepth int64
}

func (b *Book) MarketSummary() MarketSummary {
	b.mu.Lock()
	defer b.mu.Unlock()
	return MarketSummary{
		TotalTrades:   int64(len(b.trades)),
		TotalVolume:   b.totalVolume,
		TotalNotional: b.totalNotional,
		TotalBidDepth: b.bidDepth,
		TotalAskDepth: b.askDepth,
	}
}
