package bitstamp

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/caesar-terminal/bookagg/internal/adapter"
)

const wsURL = "wss://ws.bitstamp.net"

type subscribeMsg struct {
	Event string        `json:"event"`
	Data  subscribeData `json:"data"`
}

type subscribeData struct {
	Channel string `json:"channel"`
}

// rawEnvelope is used for event-type detection; Data varies by event.
type rawEnvelope struct {
	Event   string          `json:"event"`
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
}

type rawOrderBook struct {
	Microtimestamp string     `json:"microtimestamp"`
	Bids           [][]string `json:"bids"`
	Asks           [][]string `json:"asks"`
}

type rawError struct {
	Code    any    `json:"code"`
	Message string `json:"message"`
}

// Codec decodes the Bitstamp live order book channel. Each data event
// carries the top 100 levels per side and replaces the previous book.
type Codec struct{}

func New() *Codec { return &Codec{} }

func (c *Codec) Exchange() adapter.Exchange { return adapter.ExchangeBitstamp }

func (c *Codec) URL(adapter.Pair) string { return wsURL }

func channel(pair adapter.Pair) string { return "order_book_" + pair.Lower() }

func (c *Codec) Subscriptions(pair adapter.Pair) ([][]byte, error) {
	msg, err := json.Marshal(subscribeMsg{
		Event: "bts:subscribe",
		Data:  subscribeData{Channel: channel(pair)},
	})
	if err != nil {
		return nil, err
	}
	return [][]byte{msg}, nil
}

func (c *Codec) Decode(raw []byte) (adapter.Batch, error) {
	var env rawEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeBitstamp, err)
	}

	switch env.Event {
	case "data":
		return c.decodeBook(env.Data)
	case "bts:request_reconnect":
		return adapter.Batch{}, fmt.Errorf("bitstamp: %w", adapter.ErrReconnectRequested)
	case "bts:error":
		var e rawError
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeBitstamp,
				fmt.Errorf("exchange error with unreadable payload %s: %w", env.Data, err))
		}
		return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeBitstamp,
			fmt.Errorf("exchange error %v: %s", e.Code, e.Message))
	default:
		// bts:subscription_succeeded, bts:heartbeat and the like.
		return adapter.Batch{}, nil
	}
}

func (c *Codec) decodeBook(data json.RawMessage) (adapter.Batch, error) {
	var book rawOrderBook
	if err := json.Unmarshal(data, &book); err != nil {
		return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeBitstamp, err)
	}

	bids, err := adapter.ParseStringLevels(adapter.ExchangeBitstamp, adapter.Bid, book.Bids)
	if err != nil {
		return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeBitstamp, err)
	}
	asks, err := adapter.ParseStringLevels(adapter.ExchangeBitstamp, adapter.Ask, book.Asks)
	if err != nil {
		return adapter.Batch{}, adapter.DecodeError(adapter.ExchangeBitstamp, err)
	}

	return adapter.Batch{
		Exchange: adapter.ExchangeBitstamp,
		Replace:  true,
		Updates:  append(bids, asks...),
		Received: parseMicros(book.Microtimestamp),
	}, nil
}

// parseMicros converts a Unix-microsecond string to time.Time.
func parseMicros(s string) time.Time {
	us, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMicro(us)
}
