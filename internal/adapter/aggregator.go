package adapter

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/caesar-terminal/bookagg/internal/logger"
)

// DefaultDepth is the number of merged levels kept per side.
const DefaultDepth = 10

// SummaryPublisher receives every Summary the aggregator produces.
// Publish must not block.
type SummaryPublisher interface {
	Publish(*Summary)
}

// AggregatorConfig holds tunable parameters for an Aggregator.
type AggregatorConfig struct {
	Depth int

	// SuppressUnchanged skips emission when a recompute leaves both merged
	// ladders identical to the previous Summary.
	SuppressUnchanged bool
}

// exchangeBook is one exchange's pair of ladders.
type exchangeBook struct {
	bids *Ladder
	asks *Ladder
}

func (b *exchangeBook) ladder(s Side) *Ladder {
	switch s {
	case Bid:
		return b.bids
	case Ask:
		return b.asks
	default:
		panic(fmt.Sprintf("adapter: invalid side %d", s))
	}
}

// Aggregator owns every enabled exchange's ladders and merges them into a
// bounded top-of-book Summary after each applied update. All mutation and
// merging happens under one lock, so no two updates interleave.
type Aggregator struct {
	cfg       AggregatorConfig
	exchanges []Exchange // tie-break order
	rank      map[Exchange]int
	pub       SummaryPublisher
	log       *logrus.Entry

	mu     sync.Mutex
	books  map[Exchange]*exchangeBook
	bids   []PriceLevel
	asks   []PriceLevel
	seq    uint64
	latest *Summary

	nowFunc func() time.Time
}

// NewAggregator creates an Aggregator for the given exchanges. It panics if
// the exchange set is empty.
func NewAggregator(exchanges []Exchange, cfg AggregatorConfig, pub SummaryPublisher) *Aggregator {
	if len(exchanges) == 0 {
		panic("adapter: aggregator requires at least one exchange")
	}
	if cfg.Depth <= 0 {
		cfg.Depth = DefaultDepth
	}

	ordered := make([]Exchange, len(exchanges))
	copy(ordered, exchanges)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	agg := &Aggregator{
		cfg:       cfg,
		exchanges: ordered,
		rank:      make(map[Exchange]int, len(ordered)),
		pub:       pub,
		log:       logger.Get().WithComponent("aggregator"),
		books:     make(map[Exchange]*exchangeBook, len(ordered)),
		nowFunc:   time.Now,
	}
	for i, ex := range ordered {
		agg.rank[ex] = i
		agg.books[ex] = &exchangeBook{
			bids: NewLadder(ex, Bid),
			asks: NewLadder(ex, Ask),
		}
	}
	return agg
}

// Exchanges returns the enabled exchanges in tie-break order.
func (a *Aggregator) Exchanges() []Exchange {
	out := make([]Exchange, len(a.exchanges))
	copy(out, a.exchanges)
	return out
}

// Latest returns the most recent Summary, or nil before the first one.
func (a *Aggregator) Latest() *Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.latest
}

// OnUpdate applies a single update to its ladder, re-merges that side only,
// and emits a Summary.
func (a *Aggregator) OnUpdate(u Update) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.book(u.Exchange).ladder(u.Side).Apply(u)
	a.remerge(u.Side)
	a.emit()
}

// ApplyBatch applies every update decoded from one exchange message as a
// single step and emits at most one Summary. A Replace batch clears both of
// the exchange's ladders first.
func (a *Aggregator) ApplyBatch(b Batch) {
	if b.Empty() {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	book := a.book(b.Exchange)
	var bidsTouched, asksTouched bool
	if b.Replace {
		book.bids.Reset()
		book.asks.Reset()
		bidsTouched, asksTouched = true, true
	}
	for _, u := range b.Updates {
		if u.Exchange != b.Exchange {
			panic(fmt.Sprintf("adapter: %s update inside %s batch", u.Exchange, b.Exchange))
		}
		book.ladder(u.Side).Apply(u)
		switch u.Side {
		case Bid:
			bidsTouched = true
		case Ask:
			asksTouched = true
		}
	}

	if b.Depth > 0 {
		book.bids.Truncate(b.Depth)
		book.asks.Truncate(b.Depth)
	}

	if bidsTouched {
		a.remerge(Bid)
	}
	if asksTouched {
		a.remerge(Ask)
	}
	a.emit()
}

// Run applies batches from in until ctx is cancelled or in is closed.
// Batches still queued at cancellation are not applied.
func (a *Aggregator) Run(ctx context.Context, in <-chan Batch) {
	a.log.WithField("exchanges", a.exchanges).Info("aggregator started")
	defer a.log.Info("aggregator stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-in:
			if !ok {
				return
			}
			a.ApplyBatch(b)
		}
	}
}

func (a *Aggregator) book(ex Exchange) *exchangeBook {
	book, ok := a.books[ex]
	if !ok {
		panic(fmt.Sprintf("adapter: update for disabled exchange %q", ex))
	}
	return book
}

// remerge rebuilds the merged ladder for one side. Caller holds mu.
func (a *Aggregator) remerge(side Side) {
	merged := Merge(side, a.cfg.Depth, a.rank, a.collect(side)...)
	switch side {
	case Bid:
		a.bids = merged
	case Ask:
		a.asks = merged
	}
}

func (a *Aggregator) collect(side Side) [][]PriceLevel {
	out := make([][]PriceLevel, 0, len(a.exchanges))
	for _, ex := range a.exchanges {
		out = append(out, a.books[ex].ladder(side).TopN(a.cfg.Depth))
	}
	return out
}

// emit publishes a new Summary. Caller holds mu, which keeps sequence
// numbers and publication order in step.
func (a *Aggregator) emit() {
	if a.cfg.SuppressUnchanged && a.latest != nil &&
		levelsEqual(a.latest.Bids, a.bids) && levelsEqual(a.latest.Asks, a.asks) {
		return
	}

	a.seq++
	s := &Summary{
		Bids:      a.bids,
		Asks:      a.asks,
		Sequence:  a.seq,
		Timestamp: a.nowFunc(),
	}
	if len(s.Bids) > 0 && len(s.Asks) > 0 {
		s.Spread = s.Asks[0].Price.Sub(s.Bids[0].Price)
		s.HasSpread = true
	}
	a.latest = s

	if a.pub != nil {
		a.pub.Publish(s)
	}
}

// Merge combines per-exchange ladders for one side into a single ladder of
// at most depth levels, best first. Equal prices are ordered by rank, with
// exchanges missing from rank placed last by name. Merge is pure: the same
// inputs always yield the same output.
func Merge(side Side, depth int, rank map[Exchange]int, ladders ...[]PriceLevel) []PriceLevel {
	total := 0
	for _, l := range ladders {
		total += len(l)
	}
	if total == 0 {
		return nil
	}

	all := make([]PriceLevel, 0, total)
	for _, l := range ladders {
		all = append(all, l...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		pi, pj := all[i].Price, all[j].Price
		if !pi.Equal(pj) {
			return side.Better(pi, pj)
		}
		return rankLess(rank, all[i].Exchange, all[j].Exchange)
	})

	if len(all) > depth {
		all = all[:depth:depth]
	}
	return all
}

func rankLess(rank map[Exchange]int, a, b Exchange) bool {
	ra, okA := rank[a]
	rb, okB := rank[b]
	switch {
	case okA && okB:
		return ra < rb
	case okA != okB:
		return okA
	default:
		return a < b
	}
}

func levelsEqual(a, b []PriceLevel) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Exchange != b[i].Exchange ||
			!a[i].Price.Equal(b[i].Price) ||
			!a[i].Quantity.Equal(b[i].Quantity) {
			return false
		}
	}
	return true
}
