package kraken

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/caesar-terminal/bookagg/internal/adapter"
)

const wsURL = "wss://ws.kraken.com/v2"

// command is the Kraken v2 request envelope.
type command struct {
	Method string        `json:"method"`
	Params commandParams `json:"params"`
}

type commandParams struct {
	Channel  string   `json:"channel"`
	Symbol   []string `json:"symbol"`
	Depth    int      `json:"depth"`
	Snapshot bool     `json:"snapshot"`
}

// --- Raw wire types ---

type rawEnvelope struct {
	Channel string          `json:"channel"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`

	// Method responses.
	Method  string `json:"method"`
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

// Prices arrive as JSON numbers; decimal keeps them exact.
type rawLevel struct {
	Price decimal.Decimal `json:"price"`
	Qty   decimal.Decimal `json:"qty"`
}

type rawBook struct {
	Symbol   string     `json:"symbol"`
	Bids     []rawLevel `json:"bids"`
	Asks     []rawLevel `json:"asks"`
	Checksum uint32     `json:"checksum"`
}

// Codec decodes the Kraken v2 book channel: one snapshot after
// subscribing, then incremental updates where a zero qty deletes a level.
type Codec struct {
	// Depth is the subscribed book depth: 10, 25, 100, 500 or 1000.
	Depth int
}

func New() *Codec { return &Codec{Depth: 10} }

func (c *Codec) Exchange() adapter.Exchange { return adapter.ExchangeKraken }

func (c *Codec) URL(adapter.Pair) string { return wsURL }

func (c *Codec) Subscriptions(pair adapter.Pair) ([][]byte, error) {
	msg, err := json.Marshal(command{
		Method: "subscribe",
		Params: commandParams{
			Channel:  "book",
			Symbol:   []string{pair.String()},
			Depth:    c.Depth,
			Snapshot: true,
		},
	})
	if err != nil {
		return nil, err
	}
	return [][]byte{msg}, nil
}

func (c *Codec) Decode(raw []byte) (adapter.Batch, error) {
	var env rawEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeKraken, err)
	}

	if env.Method != "" {
		if env.Success != nil && !*env.Success {
			return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeKraken,
				fmt.Errorf("%s rejected: %s", env.Method, env.Error))
		}
		return adapter.Batch{}, nil
	}

	if env.Channel != "book" {
		// heartbeat, status.
		return adapter.Batch{}, nil
	}

	var books []rawBook
	if err := json.Unmarshal(env.Data, &books); err != nil {
		return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeKraken, err)
	}

	batch := adapter.Batch{Exchange: adapter.ExchangeKraken, Depth: c.Depth}
	switch env.Type {
	case "snapshot":
		batch.Replace = true
	case "update":
	default:
		return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeKraken,
			fmt.Errorf("unknown book message type %q", env.Type))
	}

	for _, b := range books {
		for _, side := range []struct {
			side   adapter.Side
			levels []rawLevel
		}{{adapter.Bid, b.Bids}, {adapter.Ask, b.Asks}} {
			for _, l := range side.levels {
				if !l.Price.IsPositive() || l.Qty.IsNegative() {
					return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeKraken,
						fmt.Errorf("%s level %s@%s: out of range", side.side, l.Qty, l.Price))
				}
				batch.Updates = append(batch.Updates, adapter.Update{
					Exchange: adapter.ExchangeKraken,
					Side:     side.side,
					Price:    l.Price,
					Quantity: l.Qty,
				})
			}
		}
	}
	return batch, nil
}
