package bitstamp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caesar-terminal/bookagg/internal/adapter"
)

func TestSubscriptions(t *testing.T) {
	c := New()
	assert.Equal(t, "wss://ws.bitstamp.net", c.URL(adapter.Pair{Base: "ETH", Quote: "BTC"}))

	subs, err := c.Subscriptions(adapter.Pair{Base: "ETH", Quote: "BTC"})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.JSONEq(t, `{"event":"bts:subscribe","data":{"channel":"order_book_ethbtc"}}`, string(subs[0]))
}

func TestDecode_OrderBook(t *testing.T) {
	raw := `{"event":"data","channel":"order_book_ethbtc","data":{
		"timestamp":"1700000000","microtimestamp":"1700000000123456",
		"bids":[["0.07010000","3.1"],["0.07000000","1"]],
		"asks":[["0.07030000","0.5"]]}}`

	b, err := New().Decode([]byte(raw))
	require.NoError(t, err)
	assert.True(t, b.Replace)
	assert.Equal(t, adapter.ExchangeBitstamp, b.Exchange)
	require.Len(t, b.Updates, 3)
	assert.Equal(t, "0.0701", b.Updates[0].Price.String())
	assert.Equal(t, adapter.Ask, b.Updates[2].Side)
	assert.Equal(t, time.UnixMicro(1700000000123456), b.Received)
}

func TestDecode_ControlEvents(t *testing.T) {
	c := New()

	b, err := c.Decode([]byte(`{"event":"bts:subscription_succeeded","channel":"order_book_ethbtc","data":{}}`))
	require.NoError(t, err)
	assert.True(t, b.Empty())

	_, err = c.Decode([]byte(`{"event":"bts:request_reconnect","channel":"","data":""}`))
	assert.ErrorIs(t, err, adapter.ErrReconnectRequested)
	assert.NotErrorIs(t, err, adapter.ErrDecode)

	_, err = c.Decode([]byte(`{"event":"bts:error","channel":"","data":{"code":null,"message":"Bad subscription string."}}`))
	assert.ErrorIs(t, err, adapter.ErrDecode)
	assert.Contains(t, err.Error(), "Bad subscription string.")

	_, err = c.Decode([]byte(`{"event":"bts:error","channel":"","data":"maintenance"}`))
	assert.ErrorIs(t, err, adapter.ErrDecode)
	assert.Contains(t, err.Error(), "unreadable payload")
	assert.NotContains(t, err.Error(), "<nil>")
}

func TestDecode_Malformed(t *testing.T) {
	c := New()
	for _, raw := range []string{
		`not json`,
		`{"event":"data","data":{"bids":[["x","1"]],"asks":[]}}`,
		`{"event":"data","data":"oops"}`,
	} {
		_, err := c.Decode([]byte(raw))
		assert.ErrorIs(t, err, adapter.ErrDecode, raw)
	}
}
