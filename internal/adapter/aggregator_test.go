package adapter

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(ex Exchange, updates ...Update) Batch {
	return Batch{Exchange: ex, Replace: true, Updates: updates}
}

func delta(ex Exchange, updates ...Update) Batch {
	return Batch{Exchange: ex, Updates: updates}
}

func TestAggregator_MergesTopN(t *testing.T) {
	rec := &recorder{}
	agg := NewAggregator([]Exchange{ExchangeBinance, ExchangeBitstamp}, AggregatorConfig{Depth: 2}, rec)

	agg.ApplyBatch(snapshot(ExchangeBinance, upd(ExchangeBinance, Bid, "100", "2")))
	agg.ApplyBatch(snapshot(ExchangeBitstamp,
		upd(ExchangeBitstamp, Bid, "101", "1"),
		upd(ExchangeBitstamp, Bid, "99", "3"),
	))

	sum := rec.last()
	require.NotNil(t, sum)
	requireLevels(t, []PriceLevel{
		lvl("101", "1", ExchangeBitstamp),
		lvl("100", "2", ExchangeBinance),
	}, sum.Bids)
	assert.Empty(t, sum.Asks)
	assert.False(t, sum.HasSpread, "spread must be absent with an empty ask side")
}

func TestAggregator_Spread(t *testing.T) {
	rec := &recorder{}
	agg := NewAggregator([]Exchange{ExchangeBinance, ExchangeKraken}, AggregatorConfig{Depth: 10}, rec)

	agg.ApplyBatch(snapshot(ExchangeBinance,
		upd(ExchangeBinance, Bid, "0.0700", "1"),
		upd(ExchangeBinance, Ask, "0.0705", "1"),
	))
	agg.ApplyBatch(snapshot(ExchangeKraken,
		upd(ExchangeKraken, Bid, "0.0701", "1"),
		upd(ExchangeKraken, Ask, "0.0703", "1"),
	))

	sum := rec.last()
	require.True(t, sum.HasSpread)
	assert.True(t, sum.Spread.Equal(d("0.0002")), "spread %s", sum.Spread)

	bid, ok := sum.BestBid()
	require.True(t, ok)
	assert.Equal(t, ExchangeKraken, bid.Exchange)
	ask, ok := sum.BestAsk()
	require.True(t, ok)
	assert.Equal(t, ExchangeKraken, ask.Exchange)
}

func TestAggregator_CrossedBookAllowed(t *testing.T) {
	rec := &recorder{}
	agg := NewAggregator([]Exchange{ExchangeBinance, ExchangeCoinbase}, AggregatorConfig{Depth: 5}, rec)

	agg.ApplyBatch(snapshot(ExchangeBinance, upd(ExchangeBinance, Bid, "101", "1")))
	agg.ApplyBatch(snapshot(ExchangeCoinbase, upd(ExchangeCoinbase, Ask, "100", "1")))

	sum := rec.last()
	require.True(t, sum.HasSpread)
	assert.True(t, sum.Spread.Equal(d("-1")))
}

func TestAggregator_TieBreakByExchange(t *testing.T) {
	rec := &recorder{}
	// Construction order must not matter.
	agg := NewAggregator([]Exchange{ExchangeKraken, ExchangeCoinbase, ExchangeBinance}, AggregatorConfig{Depth: 10}, rec)

	agg.ApplyBatch(snapshot(ExchangeKraken, upd(ExchangeKraken, Ask, "50", "3")))
	agg.ApplyBatch(snapshot(ExchangeBinance, upd(ExchangeBinance, Ask, "50", "1")))
	agg.ApplyBatch(snapshot(ExchangeCoinbase, upd(ExchangeCoinbase, Ask, "50", "2")))

	requireLevels(t, []PriceLevel{
		lvl("50", "1", ExchangeBinance),
		lvl("50", "2", ExchangeCoinbase),
		lvl("50", "3", ExchangeKraken),
	}, rec.last().Asks)
	assert.Equal(t, []Exchange{ExchangeBinance, ExchangeCoinbase, ExchangeKraken}, agg.Exchanges())
}

func TestAggregator_ReplaceDropsMissingLevels(t *testing.T) {
	rec := &recorder{}
	agg := NewAggregator([]Exchange{ExchangeBitstamp}, AggregatorConfig{Depth: 10}, rec)

	agg.ApplyBatch(snapshot(ExchangeBitstamp,
		upd(ExchangeBitstamp, Bid, "10", "1"),
		upd(ExchangeBitstamp, Ask, "11", "1"),
	))
	agg.ApplyBatch(snapshot(ExchangeBitstamp, upd(ExchangeBitstamp, Bid, "9", "4")))

	sum := rec.last()
	requireLevels(t, []PriceLevel{lvl("9", "4", ExchangeBitstamp)}, sum.Bids)
	assert.Empty(t, sum.Asks)
}

func TestAggregator_EmptyReplaceClearsExchange(t *testing.T) {
	rec := &recorder{}
	agg := NewAggregator([]Exchange{ExchangeBinance, ExchangeBitstamp}, AggregatorConfig{Depth: 10}, rec)

	agg.ApplyBatch(snapshot(ExchangeBinance, upd(ExchangeBinance, Bid, "10", "1")))
	agg.ApplyBatch(snapshot(ExchangeBitstamp, upd(ExchangeBitstamp, Bid, "11", "1")))
	agg.ApplyBatch(Batch{Exchange: ExchangeBitstamp, Replace: true})

	requireLevels(t, []PriceLevel{lvl("10", "1", ExchangeBinance)}, rec.last().Bids)
}

func TestAggregator_UntouchedSideCarriedOver(t *testing.T) {
	rec := &recorder{}
	agg := NewAggregator([]Exchange{ExchangeBinance}, AggregatorConfig{Depth: 10}, rec)

	agg.ApplyBatch(snapshot(ExchangeBinance,
		upd(ExchangeBinance, Bid, "10", "1"),
		upd(ExchangeBinance, Ask, "11", "1"),
	))
	agg.OnUpdate(upd(ExchangeBinance, Bid, "10.5", "2"))

	sum := rec.last()
	requireLevels(t, []PriceLevel{
		lvl("10.5", "2", ExchangeBinance),
		lvl("10", "1", ExchangeBinance),
	}, sum.Bids)
	requireLevels(t, []PriceLevel{lvl("11", "1", ExchangeBinance)}, sum.Asks)
	assert.True(t, sum.Spread.Equal(d("0.5")))
}

func TestAggregator_SequenceIncreases(t *testing.T) {
	rec := &recorder{}
	agg := NewAggregator([]Exchange{ExchangeBinance}, AggregatorConfig{}, rec)

	agg.ApplyBatch(snapshot(ExchangeBinance, upd(ExchangeBinance, Bid, "1", "1")))
	agg.ApplyBatch(delta(ExchangeBinance, upd(ExchangeBinance, Bid, "2", "1")))
	agg.ApplyBatch(delta(ExchangeBinance)) // empty, skipped
	agg.ApplyBatch(delta(ExchangeBinance, upd(ExchangeBinance, Bid, "2", "0")))

	require.Len(t, rec.sums, 3)
	for i, s := range rec.sums {
		assert.Equal(t, uint64(i+1), s.Sequence)
	}
	assert.Same(t, rec.last(), agg.Latest())
}

func TestAggregator_DepthBoundsOutput(t *testing.T) {
	rec := &recorder{}
	agg := NewAggregator([]Exchange{ExchangeBinance, ExchangeKraken}, AggregatorConfig{Depth: 3}, rec)

	agg.ApplyBatch(snapshot(ExchangeBinance,
		upd(ExchangeBinance, Ask, "1", "1"),
		upd(ExchangeBinance, Ask, "3", "1"),
		upd(ExchangeBinance, Ask, "5", "1"),
	))
	agg.ApplyBatch(snapshot(ExchangeKraken,
		upd(ExchangeKraken, Ask, "2", "1"),
		upd(ExchangeKraken, Ask, "4", "1"),
	))

	requireLevels(t, []PriceLevel{
		lvl("1", "1", ExchangeBinance),
		lvl("2", "1", ExchangeKraken),
		lvl("3", "1", ExchangeBinance),
	}, rec.last().Asks)
}

func TestAggregator_BatchDepthTruncatesLadder(t *testing.T) {
	rec := &recorder{}
	agg := NewAggregator([]Exchange{ExchangeKraken}, AggregatorConfig{Depth: 10}, rec)

	agg.ApplyBatch(Batch{Exchange: ExchangeKraken, Replace: true, Depth: 2, Updates: []Update{
		upd(ExchangeKraken, Bid, "10", "1"),
		upd(ExchangeKraken, Bid, "9", "1"),
	}})
	// A better bid pushes 9 out of the subscribed depth.
	agg.ApplyBatch(Batch{Exchange: ExchangeKraken, Depth: 2, Updates: []Update{
		upd(ExchangeKraken, Bid, "11", "1"),
	}})

	requireLevels(t, []PriceLevel{
		lvl("11", "1", ExchangeKraken),
		lvl("10", "1", ExchangeKraken),
	}, rec.last().Bids)
}

func TestAggregator_SuppressUnchanged(t *testing.T) {
	rec := &recorder{}
	agg := NewAggregator([]Exchange{ExchangeBinance, ExchangeBitstamp}, AggregatorConfig{Depth: 1, SuppressUnchanged: true}, rec)

	agg.ApplyBatch(snapshot(ExchangeBinance, upd(ExchangeBinance, Bid, "10", "1")))
	// Below the merged depth: output unchanged.
	agg.ApplyBatch(snapshot(ExchangeBitstamp, upd(ExchangeBitstamp, Bid, "9", "1")))
	require.Len(t, rec.sums, 1)

	agg.ApplyBatch(delta(ExchangeBitstamp, upd(ExchangeBitstamp, Bid, "12", "1")))
	require.Len(t, rec.sums, 2)
	assert.Equal(t, uint64(2), rec.last().Sequence)
}

func TestAggregator_EmitsUnchangedByDefault(t *testing.T) {
	rec := &recorder{}
	agg := NewAggregator([]Exchange{ExchangeBinance}, AggregatorConfig{Depth: 1}, rec)

	agg.ApplyBatch(snapshot(ExchangeBinance, upd(ExchangeBinance, Bid, "10", "1")))
	agg.ApplyBatch(snapshot(ExchangeBinance, upd(ExchangeBinance, Bid, "10", "1")))
	assert.Len(t, rec.sums, 2)
}

func TestAggregator_PanicsOnMisuse(t *testing.T) {
	assert.Panics(t, func() { NewAggregator(nil, AggregatorConfig{}, nil) })

	agg := NewAggregator([]Exchange{ExchangeBinance}, AggregatorConfig{}, nil)
	assert.Panics(t, func() { agg.OnUpdate(upd(ExchangeKraken, Bid, "1", "1")) })
	assert.Panics(t, func() {
		agg.ApplyBatch(delta(ExchangeBinance, upd(ExchangeKraken, Bid, "1", "1")))
	})
	assert.Panics(t, func() {
		agg.OnUpdate(Update{Exchange: ExchangeBinance, Side: Side(9), Price: d("1"), Quantity: d("1")})
	})
}

func TestAggregator_RunStopsOnClose(t *testing.T) {
	rec := &recorder{}
	agg := NewAggregator([]Exchange{ExchangeBinance}, AggregatorConfig{}, rec)

	in := make(chan Batch, 2)
	in <- snapshot(ExchangeBinance, upd(ExchangeBinance, Bid, "1", "1"))
	in <- delta(ExchangeBinance, upd(ExchangeBinance, Ask, "2", "1"))
	close(in)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	agg.Run(ctx, in)

	require.Len(t, rec.sums, 2)
	assert.True(t, rec.last().HasSpread)
}

func TestMerge_Deterministic(t *testing.T) {
	rank := map[Exchange]int{ExchangeBinance: 0, ExchangeBitstamp: 1}
	a := []PriceLevel{lvl("5", "1", ExchangeBitstamp), lvl("4", "1", ExchangeBitstamp)}
	b := []PriceLevel{lvl("5", "2", ExchangeBinance), lvl("3", "1", ExchangeBinance)}

	first := Merge(Bid, 3, rank, a, b)
	second := Merge(Bid, 3, rank, b, a)
	requireLevels(t, first, second)
	requireLevels(t, []PriceLevel{
		lvl("5", "2", ExchangeBinance),
		lvl("5", "1", ExchangeBitstamp),
		lvl("4", "1", ExchangeBitstamp),
	}, first)

	assert.Nil(t, Merge(Ask, 3, rank))
}

func TestAggregator_ConcurrentFeedsSerialized(t *testing.T) {
	const perExchange = 250
	rec := &recorder{}
	agg := NewAggregator(AllExchanges, AggregatorConfig{Depth: 5}, rec)

	var wg sync.WaitGroup
	for _, ex := range AllExchanges {
		ex := ex
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perExchange; j++ {
				bid := fmt.Sprintf("0.07%03d", j%50)
				ask := fmt.Sprintf("0.08%03d", j%50)
				qty := fmt.Sprint(j % 3)
				switch {
				case j%10 == 0:
					agg.ApplyBatch(snapshot(ex, upd(ex, Bid, bid, "1"), upd(ex, Ask, ask, "1")))
				case j%2 == 0:
					agg.ApplyBatch(delta(ex, upd(ex, Bid, bid, qty), upd(ex, Ask, ask, qty)))
				default:
					agg.OnUpdate(upd(ex, Bid+Side(j%4/2), bid, qty))
				}
			}
		}()
	}
	wg.Wait()

	require.Len(t, rec.sums, len(AllExchanges)*perExchange)
	for i, sum := range rec.sums {
		require.Equal(t, uint64(i+1), sum.Sequence, "sequence must be contiguous")
		require.LessOrEqual(t, len(sum.Bids), 5)
		require.LessOrEqual(t, len(sum.Asks), 5)
		for k := 1; k < len(sum.Bids); k++ {
			require.False(t, sum.Bids[k].Price.GreaterThan(sum.Bids[k-1].Price),
				"summary %d bids out of order: %v", sum.Sequence, sum.Bids)
		}
		for k := 1; k < len(sum.Asks); k++ {
			require.False(t, sum.Asks[k].Price.LessThan(sum.Asks[k-1].Price),
				"summary %d asks out of order: %v", sum.Sequence, sum.Asks)
		}
		for _, side := range [][]PriceLevel{sum.Bids, sum.Asks} {
			for _, l := range side {
				require.True(t, l.Quantity.IsPositive(), "zero-quantity level in summary %d", sum.Sequence)
			}
		}
	}
	assert.Equal(t, uint64(len(rec.sums)), agg.Latest().Sequence)
}
