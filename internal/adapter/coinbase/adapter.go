package coinbase

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/caesar-terminal/bookagg/internal/adapter"
)

const wsURL = "wss://ws-feed.exchange.coinbase.com"

type subscribeMsg struct {
	Type       string   `json:"type"`
	ProductIDs []string `json:"product_ids"`
	Channels   []string `json:"channels"`
}

// rawMessage covers every message type on the level2 channels.
type rawMessage struct {
	Type      string     `json:"type"`
	ProductID string     `json:"product_id"`
	Bids      [][]string `json:"bids"`
	Asks      [][]string `json:"asks"`
	Changes   [][]string `json:"changes"` // [side, price, size]
	Time      string     `json:"time"`
	Message   string     `json:"message"`
	Reason    string     `json:"reason"`
}

// Codec decodes the Coinbase Exchange level2_batch channel: a full
// snapshot, then batched l2update changes where size 0 removes a level.
type Codec struct {
	// Channel is "level2_batch" by default.
	Channel string
}

func New() *Codec { return &Codec{Channel: "level2_batch"} }

func (c *Codec) Exchange() adapter.Exchange { return adapter.ExchangeCoinbase }

func (c *Codec) URL(adapter.Pair) string { return wsURL }

func (c *Codec) Subscriptions(pair adapter.Pair) ([][]byte, error) {
	msg, err := json.Marshal(subscribeMsg{
		Type:       "subscribe",
		ProductIDs: []string{pair.Dashed()},
		Channels:   []string{c.Channel, "heartbeat"},
	})
	if err != nil {
		return nil, err
	}
	return [][]byte{msg}, nil
}

func (c *Codec) Decode(raw []byte) (adapter.Batch, error) {
	var msg rawMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeCoinbase, err)
	}

	switch msg.Type {
	case "snapshot":
		return decodeSnapshot(msg)
	case "l2update":
		return decodeChanges(msg)
	case "error":
		return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeCoinbase,
			fmt.Errorf("exchange error: %s (%s)", msg.Message, msg.Reason))
	default:
		// subscriptions, heartbeat.
		return adapter.Batch{}, nil
	}
}

func decodeSnapshot(msg rawMessage) (adapter.Batch, error) {
	bids, err := adapter.ParseStringLevels(adapter.ExchangeCoinbase, adapter.Bid, msg.Bids)
	if err != nil {
		return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeCoinbase, err)
	}
	asks, err := adapter.ParseStringLevels(adapter.ExchangeCoinbase, adapter.Ask, msg.Asks)
	if err != nil {
		return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeCoinbase, err)
	}
	return adapter.Batch{
		Exchange: adapter.ExchangeCoinbase,
		Replace:  true,
		Updates:  append(bids, asks...),
	}, nil
}

func decodeChanges(msg rawMessage) (adapter.Batch, error) {
	batch := adapter.Batch{
		Exchange: adapter.ExchangeCoinbase,
		Updates:  make([]adapter.Update, 0, len(msg.Changes)),
	}
	for _, ch := range msg.Changes {
		if len(ch) < 3 {
			return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeCoinbase,
				fmt.Errorf("change: want [side, price, size], got %d fields", len(ch)))
		}
		var side adapter.Side
		switch ch[0] {
		case "buy":
			side = adapter.Bid
		case "sell":
			side = adapter.Ask
		default:
			return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeCoinbase,
				fmt.Errorf("change: unknown side %q", ch[0]))
		}
		u, err := adapter.ParseLevel(adapter.ExchangeCoinbase, side, ch[1], ch[2])
		if err != nil {
			return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeCoinbase, err)
		}
		batch.Updates = append(batch.Updates, u)
	}
	if t, err := time.Parse(time.RFC3339Nano, msg.Time); err == nil {
		batch.Received = t
	}
	return batch, nil
}
