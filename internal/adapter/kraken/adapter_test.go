package kraken

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caesar-terminal/bookagg/internal/adapter"
)

func TestSubscriptions(t *testing.T) {
	subs, err := New().Subscriptions(adapter.Pair{Base: "ETH", Quote: "BTC"})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.JSONEq(t,
		`{"method":"subscribe","params":{"channel":"book","symbol":["ETH/BTC"],"depth":10,"snapshot":true}}`,
		string(subs[0]))
}

func TestDecode_SnapshotThenUpdate(t *testing.T) {
	c := New()

	snap := `{"channel":"book","type":"snapshot","data":[{"symbol":"ETH/BTC",
		"bids":[{"price":0.07012,"qty":1.25},{"price":0.0701,"qty":3}],
		"asks":[{"price":0.07015,"qty":0.5}],"checksum":1}]}`
	b, err := c.Decode([]byte(snap))
	require.NoError(t, err)
	assert.True(t, b.Replace)
	assert.Equal(t, 10, b.Depth)
	require.Len(t, b.Updates, 3)
	assert.Equal(t, "0.07012", b.Updates[0].Price.String())
	assert.Equal(t, "1.25", b.Updates[0].Quantity.String())
	assert.Equal(t, adapter.Ask, b.Updates[2].Side)

	update := `{"channel":"book","type":"update","data":[{"symbol":"ETH/BTC",
		"bids":[{"price":0.0701,"qty":0}],"asks":[],"checksum":2}]}`
	b, err = c.Decode([]byte(update))
	require.NoError(t, err)
	assert.False(t, b.Replace)
	require.Len(t, b.Updates, 1)
	assert.True(t, b.Updates[0].Quantity.IsZero())
}

func TestDecode_NonBookMessagesIgnored(t *testing.T) {
	c := New()
	for _, raw := range []string{
		`{"channel":"heartbeat"}`,
		`{"channel":"status","type":"update","data":[{"system":"online"}]}`,
		`{"method":"subscribe","result":{"channel":"book","symbol":"ETH/BTC"},"success":true}`,
	} {
		b, err := c.Decode([]byte(raw))
		require.NoError(t, err, raw)
		assert.True(t, b.Empty(), raw)
	}
}

func TestDecode_Errors(t *testing.T) {
	c := New()
	for name, raw := range map[string]string{
		"not json":          `[`,
		"rejected":          `{"method":"subscribe","success":false,"error":"Currency pair not supported"}`,
		"unknown type":      `{"channel":"book","type":"delta","data":[]}`,
		"bad data":          `{"channel":"book","type":"update","data":{}}`,
		"negative quantity": `{"channel":"book","type":"update","data":[{"bids":[{"price":1,"qty":-1}],"asks":[]}]}`,
		"zero price":        `{"channel":"book","type":"update","data":[{"bids":[],"asks":[{"price":0,"qty":1}]}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := c.Decode([]byte(raw))
			assert.ErrorIs(t, err, adapter.ErrDecode)
		})
	}
}
