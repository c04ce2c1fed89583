package binance

import (
	"encoding/json"
	"fmt"

	"github.com/caesar-terminal/bookagg/internal/adapter"
)

const baseURL = "wss://stream.binance.com:9443/ws/"

// Partial book depth message. Every message is a complete top-N snapshot.
type rawDepth struct {
	LastUpdateID int64      `json:"lastUpdateId"`
	Bids         [][]string `json:"bids"`
	Asks         [][]string `json:"asks"`

	// Set on control responses, e.g. {"result":null,"id":1}.
	ID *int64 `json:"id"`
}

// Codec decodes the Binance partial book depth stream.
type Codec struct {
	// Levels is the stream depth: 5, 10 or 20.
	Levels int
	// UpdateSpeed is "100ms" or "1000ms".
	UpdateSpeed string
}

// New returns a Codec for the 20-level, 100ms stream.
func New() *Codec {
	return &Codec{Levels: 20, UpdateSpeed: "100ms"}
}

func (c *Codec) Exchange() adapter.Exchange { return adapter.ExchangeBinance }

// URL addresses the stream directly, so no subscription frame is needed.
func (c *Codec) URL(pair adapter.Pair) string {
	return fmt.Sprintf("%s%s@depth%d@%s", baseURL, pair.Lower(), c.Levels, c.UpdateSpeed)
}

func (c *Codec) Subscriptions(adapter.Pair) ([][]byte, error) { return nil, nil }

func (c *Codec) Decode(raw []byte) (adapter.Batch, error) {
	var msg rawDepth
	if err := json.Unmarshal(raw, &msg); err != nil {
		return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeBinance, err)
	}
	if msg.ID != nil {
		return adapter.Batch{}, nil
	}
	if msg.LastUpdateID == 0 {
		return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeBinance,
			fmt.Errorf("unexpected message: %.120s", raw))
	}

	bids, err := adapter.ParseStringLevels(adapter.ExchangeBinance, adapter.Bid, msg.Bids)
	if err != nil {
		return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeBinance, err)
	}
	asks, err := adapter.ParseStringLevels(adapter.ExchangeBinance, adapter.Ask, msg.Asks)
	if err != nil {
		return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeBinance, err)
	}

	return adapter.Batch{
		Exchange: adapter.ExchangeBinance,
		Replace:  true,
		Updates:  append(bids, asks...),
	}, nil
}
