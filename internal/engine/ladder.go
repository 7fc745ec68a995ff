package engine

import (
	"github.com/google/btree"
	"github.com/shopspring/decimal"
)

// ladderItem is the value stored in the btree. desc flips the
// comparator so that Ascend() visits the best price first on both
// sides: bids descending (best = highest price), asks ascending
// (best = lowest price) — one type serves both ladders.
type ladderItem struct {
	level *priceLevel
	desc  bool
}

func (it ladderItem) Less(other btree.Item) bool {
	o := other.(ladderItem)
	if it.desc {
		return it.level.price.GreaterThan(o.level.price)
	}
	return it.level.price.LessThan(o.level.price)
}

// ladder is one side's price-indexed ordered container (spec §4.2).
// A btree gives O(log P) insertion, removal, and best-price access in
// the number of distinct price levels P; a map keyed by the quantized
// price gives O(1) level lookup for AddOrder's "does this price already
// have a level" check.
type ladder struct {
	tree  *btree.BTree
	desc  bool
	byKey map[string]*priceLevel
}

func newLadder(desc bool) *ladder {
	return &ladder{tree: btree.New(32), desc: desc, byKey: make(map[string]*priceLevel)}
}

func (l *ladder) levelAt(price decimal.Decimal) (*priceLevel, bool) {
	lvl, ok := l.byKey[quantize(price)]
	return lvl, ok
}

// getOrCreate returns the level for price, creating and inserting an
// empty one into the tree if none exists yet. Invariant 3 ("a price key
// exists in a ladder iff its FIFO is non-empty") is maintained by the
// caller immediately pushing an order onto the returned level.
func (l *ladder) getOrCreate(price decimal.Decimal) *priceLevel {
	key := quantize(price)
	if lvl, ok := l.byKey[key]; ok {
		return lvl
	}
	lvl := newPriceLevel(price)
	l.byKey[key] = lvl
	l.tree.ReplaceOrInsert(ladderItem{level: lvl, desc: l.desc})
	return lvl
}

// remove drops the level at price entirely. Callers must only call this
// once the level's FIFO is empty.
func (l *ladder) remove(price decimal.Decimal) {
	key := quantize(price)
	lvl, ok := l.byKey[key]
	if !ok {
		return
	}
	delete(l.byKey, key)
	l.tree.Delete(ladderItem{level: lvl, desc: l.desc})
}

// best returns the head-of-book level, or nil if the ladder is empty.
func (l *ladder) best() *priceLevel {
	var best *priceLevel
	l.tree.Ascend(func(i btree.Item) bool {
		best = i.(ladderItem).level
		return false
	})
	return best
}

func (l *ladder) len() int { return l.tree.Len() }

// LevelView is the aggregated, read-only view of one price level
// returned by the book's snapshot operations (spec §4.1).
type LevelView struct {
	Price    decimal.Decimal
	Quantity int64
}

// snapshot walks the ladder in its natural direction (bids descending,
// asks ascending) and copies out (price, total quantity) pairs.
func (l *ladder) snapshot() []LevelView {
	out := make([]LevelView, 0, l.tree.Len())
	l.tree.Ascend(func(i btree.Item) bool {
		lvl := i.(ladderItem).level
		out = append(out, LevelView{Price: lvl.price, Quantity: lvl.totalQuantity()})
		return true
	})
	return out
}
