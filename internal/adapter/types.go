package adapter

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Exchange identifies the source of market data.
type Exchange string

const (
	ExchangeBinance  Exchange = "binance"
	ExchangeBitstamp Exchange = "bitstamp"
	ExchangeKraken   Exchange = "kraken"
	ExchangeCoinbase Exchange = "coinbase"
)

// AllExchanges lists every supported exchange in tie-break order.
var AllExchanges = []Exchange{
	ExchangeBinance,
	ExchangeBitstamp,
	ExchangeCoinbase,
	ExchangeKraken,
}

// ParseExchange maps a configuration name onto an Exchange.
func ParseExchange(s string) (Exchange, error) {
	e := Exchange(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllExchanges {
		if e == known {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown exchange %q", s)
}

// Pair is a currency pair such as ETH/BTC.
type Pair struct {
	Base  string
	Quote string
}

// ParsePair parses "BASE/QUOTE". Case is normalised to upper.
func ParsePair(s string) (Pair, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Pair{}, fmt.Errorf("pair %q: want BASE/QUOTE", s)
	}
	return Pair{
		Base:  strings.ToUpper(parts[0]),
		Quote: strings.ToUpper(parts[1]),
	}, nil
}

func (p Pair) String() string { return p.Base + "/" + p.Quote }

// Lower renders the pair the way Binance and Bitstamp name streams, e.g. "ethbtc".
func (p Pair) Lower() string { return strings.ToLower(p.Base + p.Quote) }

// Dashed renders the pair as a Coinbase product id, e.g. "ETH-BTC".
func (p Pair) Dashed() string { return p.Base + "-" + p.Quote }

// Side is one side of an order book.
type Side uint8

const (
	Bid Side = iota + 1
	Ask
)

func (s Side) String() string {
	switch s {
	case Bid:
		return "bid"
	case Ask:
		return "ask"
	default:
		return "unknown"
	}
}

// Better reports whether price a ranks ahead of price b on this side:
// higher for bids, lower for asks.
func (s Side) Better(a, b decimal.Decimal) bool {
	switch s {
	case Bid:
		return a.GreaterThan(b)
	case Ask:
		return a.LessThan(b)
	default:
		panic(fmt.Sprintf("adapter: invalid side %d", s))
	}
}

// Update is a single normalised price-level change. A zero Quantity
// removes the level.
type Update struct {
	Exchange Exchange
	Side     Side
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// Batch is the set of updates decoded from one exchange message. When
// Replace is set, the exchange's ladders on both sides are cleared before
// Updates are applied, so levels absent from the batch disappear.
type Batch struct {
	Exchange Exchange
	Replace  bool
	Updates  []Update
	Received time.Time

	// Depth, when positive, caps both of the exchange's ladders after the
	// updates are applied. Exchanges that maintain a fixed-depth book stop
	// reporting levels that fall out of range.
	Depth int
}

// Empty reports whether the batch carries nothing to apply.
func (b Batch) Empty() bool { return !b.Replace && len(b.Updates) == 0 }

// PriceLevel represents a single bid or ask at a given price.
type PriceLevel struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
	Exchange Exchange
}

// Summary is one published snapshot of the merged ladders. It is never
// mutated after the aggregator hands it out.
type Summary struct {
	Spread    decimal.Decimal
	HasSpread bool // false when either side is empty
	Bids      []PriceLevel
	Asks      []PriceLevel
	Sequence  uint64
	Timestamp time.Time
}

// BestBid returns the top merged bid, if any.
func (s *Summary) BestBid() (PriceLevel, bool) {
	if len(s.Bids) == 0 {
		return PriceLevel{}, false
	}
	return s.Bids[0], true
}

// BestAsk returns the top merged ask, if any.
func (s *Summary) BestAsk() (PriceLevel, bool) {
	if len(s.Asks) == 0 {
		return PriceLevel{}, false
	}
	return s.Asks[0], true
}
