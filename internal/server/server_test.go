package server

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"

	"github.com/caesar-terminal/bookagg/internal/adapter"
	orderbookv1 "github.com/caesar-terminal/bookagg/internal/gen/orderbook/v1"
)

type fakeHealth []adapter.FeedHealth

func (f fakeHealth) Snapshot() []adapter.FeedHealth { return f }

// startServer serves svc over an in-memory listener and returns a client.
func startServer(t *testing.T, svc orderbookv1.OrderbookAggregatorServer) orderbookv1.OrderbookAggregatorClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := NewWithListener(lis, svc)
	go srv.Serve()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
		srv.grpcServer.Stop()
	})
	return orderbookv1.NewOrderbookAggregatorClient(conn)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testSummary(seq uint64) *adapter.Summary {
	return &adapter.Summary{
		Bids: []adapter.PriceLevel{
			{Price: dec("0.07012"), Quantity: dec("1.5"), Exchange: adapter.ExchangeKraken},
			{Price: dec("0.0701"), Quantity: dec("2"), Exchange: adapter.ExchangeBinance},
		},
		Asks: []adapter.PriceLevel{
			{Price: dec("0.07015"), Quantity: dec("0.25"), Exchange: adapter.ExchangeCoinbase},
		},
		Spread:    dec("0.00003"),
		HasSpread: true,
		Sequence:  seq,
		Timestamp: time.Unix(1700000000, 42),
	}
}

func TestBookSummary_Streams(t *testing.T) {
	hub := adapter.NewHub(8)
	client := startServer(t, NewService(hub, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	stream, err := client.BookSummary(ctx, &orderbookv1.Empty{})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 5*time.Millisecond)
	hub.Publish(testSummary(1))
	hub.Publish(testSummary(2))

	got, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.Sequence)
	assert.True(t, got.HasSpread)
	assert.Equal(t, "0.00003", got.SpreadExact)
	assert.InDelta(t, 0.00003, got.Spread, 1e-12)
	require.Len(t, got.Bids, 2)
	require.Len(t, got.Asks, 1)
	assert.True(t, proto.Equal(&orderbookv1.Level{
		Exchange:    "kraken",
		Price:       0.07012,
		Amount:      1.5,
		PriceExact:  "0.07012",
		AmountExact: "1.5",
	}, got.Bids[0]), "got %v", got.Bids[0])
	assert.Equal(t, "coinbase", got.Asks[0].Exchange)
	assert.Equal(t, time.Unix(1700000000, 42).UnixNano(), got.TimestampUnixNano)

	got, err = stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.Sequence)
}

func TestBookSummary_EndsWhenHubCloses(t *testing.T) {
	hub := adapter.NewHub(8)
	hub.Publish(testSummary(7))
	client := startServer(t, NewService(hub, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	stream, err := client.BookSummary(ctx, &orderbookv1.Empty{})
	require.NoError(t, err)

	// New streams start from the latest summary.
	got, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got.Sequence)

	hub.Close()
	_, err = stream.Recv()
	assert.ErrorIs(t, err, io.EOF, "hub close ends the stream cleanly")
}

func TestBookSummary_ClientCancelUnsubscribes(t *testing.T) {
	hub := adapter.NewHub(8)
	client := startServer(t, NewService(hub, nil))

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := client.BookSummary(ctx, &orderbookv1.Empty{})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	_, err = stream.Recv()
	assert.Equal(t, codes.Canceled, status.Code(err))
	require.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestFeedStatus(t *testing.T) {
	last := time.Unix(1700000000, 0)
	health := fakeHealth{
		{
			FeedStatus: adapter.FeedStatus{
				Exchange:     adapter.ExchangeBinance,
				State:        adapter.StateStreaming,
				LastMessage:  last,
				Reconnects:   2,
				DecodeErrors: 1,
				Batches:      100,
			},
			LastBatch: last,
		},
		{
			FeedStatus: adapter.FeedStatus{Exchange: adapter.ExchangeKraken, State: adapter.StateReconnecting},
			Stale:      true,
		},
	}
	client := startServer(t, NewService(adapter.NewHub(1), health))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	reply, err := client.FeedStatus(ctx, &orderbookv1.Empty{})
	require.NoError(t, err)
	require.Len(t, reply.Feeds, 2)

	assert.True(t, proto.Equal(&orderbookv1.ExchangeStatus{
		Exchange:            "binance",
		State:               "streaming",
		Reconnects:          2,
		DecodeErrors:        1,
		Batches:             100,
		LastMessageUnixNano: last.UnixNano(),
	}, reply.Feeds[0]), "got %v", reply.Feeds[0])
	assert.True(t, proto.Equal(&orderbookv1.ExchangeStatus{Exchange: "kraken", State: "reconnecting", Stale: true}, reply.Feeds[1]),
		"got %v", reply.Feeds[1])
}

func TestFeedStatus_NoHealth(t *testing.T) {
	client := startServer(t, NewService(adapter.NewHub(1), nil))

	reply, err := client.FeedStatus(context.Background(), &orderbookv1.Empty{})
	require.NoError(t, err)
	assert.Empty(t, reply.Feeds)
}

func TestNew_ListenError(t *testing.T) {
	_, err := New("256.0.0.1:bad", NewService(adapter.NewHub(1), nil))
	assert.Error(t, err)
}

func TestSummaryToProto_OneSidedBook(t *testing.T) {
	sum := &adapter.Summary{
		Bids:      []adapter.PriceLevel{{Price: dec("0.069"), Quantity: dec("3"), Exchange: adapter.ExchangeBitstamp}},
		Sequence:  4,
		Timestamp: time.Unix(0, 99),
	}
	got := SummaryToProto(sum)

	assert.False(t, got.HasSpread)
	assert.Zero(t, got.Spread)
	assert.Empty(t, got.SpreadExact)
	assert.Empty(t, got.Asks)
	require.Len(t, got.Bids, 1)
	assert.Equal(t, "bitstamp", got.Bids[0].Exchange)
	assert.Equal(t, "3", got.Bids[0].AmountExact)
	assert.Equal(t, int64(99), got.TimestampUnixNano)

	b, err := proto.Marshal(got)
	require.NoError(t, err)
	var back orderbookv1.Summary
	require.NoError(t, proto.Unmarshal(b, &back))
	assert.True(t, proto.Equal(got, &back))
}

func TestServiceDescriptor(t *testing.T) {
	svc := orderbookv1.File_api_orderbook_proto.Services().Get(0)
	assert.Equal(t, "orderbook.OrderbookAggregator", string(svc.FullName()))
	assert.True(t, svc.Methods().ByName("BookSummary").IsStreamingServer())
	assert.False(t, svc.Methods().ByName("FeedStatus").IsStreamingServer())
}
