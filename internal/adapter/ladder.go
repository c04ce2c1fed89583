package adapter

import (
	"sort"

	"github.com/shopspring/decimal"
)

type ladderLevel struct {
	price decimal.Decimal
	qty   decimal.Decimal
}

// Ladder is one exchange's view of one side of the book, kept sorted
// best-first: descending for bids, ascending for asks. Prices are unique.
// A Ladder is not safe for concurrent use; the Aggregator serialises access.
type Ladder struct {
	exchange Exchange
	side     Side
	levels   []ladderLevel
}

// NewLadder creates an empty ladder for one exchange and side.
func NewLadder(exchange Exchange, side Side) *Ladder {
	return &Ladder{exchange: exchange, side: side}
}

// Side returns the side this ladder holds.
func (l *Ladder) Side() Side { return l.side }

// Len returns the number of price levels.
func (l *Ladder) Len() int { return len(l.levels) }

// Reset drops every level.
func (l *Ladder) Reset() { l.levels = l.levels[:0] }

// Truncate keeps only the n best levels.
func (l *Ladder) Truncate(n int) {
	if n >= 0 && n < len(l.levels) {
		l.levels = l.levels[:n]
	}
}

// Apply inserts, replaces or removes the level at u.Price. A non-positive
// quantity removes the level; removing an absent price is a no-op.
func (l *Ladder) Apply(u Update) {
	i, found := l.search(u.Price)

	if !u.Quantity.IsPositive() {
		if found {
			l.levels = append(l.levels[:i], l.levels[i+1:]...)
		}
		return
	}

	if found {
		l.levels[i].qty = u.Quantity
		return
	}

	l.levels = append(l.levels, ladderLevel{})
	copy(l.levels[i+1:], l.levels[i:])
	l.levels[i] = ladderLevel{price: u.Price, qty: u.Quantity}
}

// TopN returns up to n best levels. The returned slice is freshly
// allocated and safe to retain.
func (l *Ladder) TopN(n int) []PriceLevel {
	if n > len(l.levels) {
		n = len(l.levels)
	}
	if n <= 0 {
		return nil
	}
	out := make([]PriceLevel, n)
	for i := 0; i < n; i++ {
		out[i] = PriceLevel{
			Price:    l.levels[i].price,
			Quantity: l.levels[i].qty,
			Exchange: l.exchange,
		}
	}
	return out
}

// search returns the index of price, or the index it would be inserted at.
func (l *Ladder) search(price decimal.Decimal) (int, bool) {
	i := sort.Search(len(l.levels), func(i int) bool {
		return !l.side.Better(l.levels[i].price, price)
	})
	return i, i < len(l.levels) && l.levels[i].price.Equal(price)
}
