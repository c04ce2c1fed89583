package adapter

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/caesar-terminal/bookagg/internal/logger"
)

var (
	// ErrDecode marks a single malformed or unexpected exchange message.
	// The message is skipped and the connection kept.
	ErrDecode = errors.New("decode")

	// ErrReconnectRequested is returned by a codec when the exchange asks
	// the client to reconnect.
	ErrReconnectRequested = errors.New("exchange requested reconnect")
)

// Codec translates one exchange's wire protocol into Batches.
type Codec interface {
	Exchange() Exchange

	// URL returns the WebSocket endpoint for pair.
	URL(pair Pair) string

	// Subscriptions returns the frames to send after every connect.
	Subscriptions(pair Pair) ([][]byte, error)

	// Decode parses one raw message. A Batch with no updates and Replace
	// unset (acks, heartbeats) is skipped. Errors wrap ErrDecode or
	// ErrReconnectRequested.
	Decode(raw []byte) (Batch, error)
}

// FeedConfig holds tunable parameters for a Feed.
type FeedConfig struct {
	WS WSConfig

	// ErrorRate and ErrorBurst bound tolerated decode errors; exceeding the
	// budget forces a reconnect.
	ErrorRate  rate.Limit
	ErrorBurst int
}

// DefaultFeedConfig returns defaults for the given endpoint.
func DefaultFeedConfig(url string) FeedConfig {
	return FeedConfig{
		WS:         DefaultWSConfig(url),
		ErrorRate:  5,
		ErrorBurst: 10,
	}
}

// FeedStatus is a point-in-time view of a Feed's health.
type FeedStatus struct {
	Exchange     Exchange
	State        ConnState
	LastMessage  time.Time
	Reconnects   uint64
	DecodeErrors uint64
	Batches      uint64
}

// Feed maintains one exchange connection for one pair and forwards decoded
// Batches to the aggregator. It never gives up reconnecting; only ctx
// cancellation stops it.
//
// After every (re)connect the feed discards deltas until the exchange's
// first full snapshot arrives, so the aggregator never applies deltas on
// top of a book from a previous connection. When a connection drops the
// feed emits an empty Replace batch: while reconnecting the exchange
// contributes nothing to the merge.
type Feed struct {
	codec   Codec
	pair    Pair
	ws      *WSClient
	out     chan<- Batch
	limiter *rate.Limiter
	log     *logrus.Entry

	conn     uint64 // generation of the last frame seen
	synced   bool   // a snapshot arrived on the current connection
	lastMsg  atomic.Int64
	errs     atomic.Uint64
	batches  atomic.Uint64
	monitors []func(Exchange, time.Time)
}

// NewFeed creates a Feed. If cfg.WS.URL is empty, the codec's URL is used.
func NewFeed(codec Codec, pair Pair, cfg FeedConfig, out chan<- Batch) *Feed {
	if cfg.WS.URL == "" {
		cfg.WS.URL = codec.URL(pair)
	}
	if cfg.ErrorRate <= 0 {
		cfg.ErrorRate = 5
	}
	if cfg.ErrorBurst <= 0 {
		cfg.ErrorBurst = 10
	}

	f := &Feed{
		codec:   codec,
		pair:    pair,
		ws:      NewWSClient(cfg.WS),
		out:     out,
		limiter: rate.NewLimiter(cfg.ErrorRate, cfg.ErrorBurst),
		log: logger.Get().WithComponent("feed").WithFields(logger.Fields{
			"exchange": codec.Exchange(),
			"pair":     pair.String(),
		}),
	}
	f.ws.OnConnect = f.subscribe
	return f
}

// Exchange returns the exchange this feed serves.
func (f *Feed) Exchange() Exchange { return f.codec.Exchange() }

// State returns the connection state.
func (f *Feed) State() ConnState { return f.ws.State() }

// OnBatch registers a callback invoked with the receive time of every
// forwarded batch. Must be called before Run.
func (f *Feed) OnBatch(fn func(Exchange, time.Time)) {
	f.monitors = append(f.monitors, fn)
}

// Status reports the feed's current health.
func (f *Feed) Status() FeedStatus {
	st := FeedStatus{
		Exchange:     f.codec.Exchange(),
		State:        f.ws.State(),
		Reconnects:   f.ws.Reconnects(),
		DecodeErrors: f.errs.Load(),
		Batches:      f.batches.Load(),
	}
	if ns := f.lastMsg.Load(); ns != 0 {
		st.LastMessage = time.Unix(0, ns)
	}
	return st
}

// Run streams until ctx is cancelled and returns ctx.Err().
func (f *Feed) Run(ctx context.Context) error {
	f.log.Info("feed started")
	defer f.log.Info("feed stopped")

	go f.ws.Run(ctx)

	for frame := range f.ws.Frames() {
		if !f.handle(ctx, frame) {
			break
		}
	}
	// Drain so the client can finish closing.
	for range f.ws.Frames() {
	}
	return ctx.Err()
}

func (f *Feed) subscribe(_ context.Context, ws *WSClient) error {
	msgs, err := f.codec.Subscriptions(f.pair)
	if err != nil {
		return fmt.Errorf("build subscriptions: %w", err)
	}
	for _, m := range msgs {
		if err := ws.Send(m); err != nil {
			return fmt.Errorf("send subscription: %w", err)
		}
	}
	return nil
}

// handle processes one frame. It returns false once ctx is done.
func (f *Feed) handle(ctx context.Context, frame Frame) bool {
	if frame.Conn != f.conn {
		f.conn = frame.Conn
		f.synced = false
	}

	if frame.Closed {
		f.synced = false
		return f.forward(ctx, Batch{
			Exchange: f.codec.Exchange(),
			Replace:  true,
			Received: time.Now(),
		})
	}

	now := time.Now()
	f.lastMsg.Store(now.UnixNano())

	batch, err := f.codec.Decode(frame.Data)
	if err != nil {
		f.onError(err, frame.Data)
		return true
	}
	if batch.Empty() {
		return true
	}
	if batch.Replace {
		f.synced = true
	} else if !f.synced {
		f.log.Debug("delta before snapshot, skipped")
		return true
	}
	if batch.Received.IsZero() {
		batch.Received = now
	}
	if !f.forward(ctx, batch) {
		return false
	}
	for _, fn := range f.monitors {
		fn(batch.Exchange, batch.Received)
	}
	return true
}

// forward hands b to the aggregator. Monitors are notified by the caller
// for batches that carry exchange data, not for the disconnect clear.
func (f *Feed) forward(ctx context.Context, b Batch) bool {
	select {
	case f.out <- b:
	case <-ctx.Done():
		return false
	}
	f.batches.Add(1)
	return true
}

func (f *Feed) onError(err error, raw []byte) {
	if errors.Is(err, ErrReconnectRequested) {
		f.log.WithError(err).Warn("exchange requested reconnect")
		f.ws.ForceReconnect()
		return
	}

	f.errs.Add(1)
	f.log.WithError(err).WithField("bytes", len(raw)).Warn("skipping undecodable message")
	if !f.limiter.Allow() {
		f.log.Warn("decode error budget exhausted, reconnecting")
		f.ws.ForceReconnect()
	}
}
