package adapter

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jpillora/backoff"
	"github.com/sirupsen/logrus"

	"github.com/caesar-terminal/bookagg/internal/logger"
)

// ConnState is the lifecycle state of a WebSocket connection.
type ConnState int32

const (
	StateConnecting ConnState = iota
	StateStreaming
	StateReconnecting
	StateStopped
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateStreaming:
		return "streaming"
	case StateReconnecting:
		return "reconnecting"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// WSConfig holds tunable parameters for a WSClient.
type WSConfig struct {
	URL string

	// Buffer sizes for the underlying TCP connection.
	ReadBufferSize  int
	WriteBufferSize int

	// HeartbeatTimeout is the maximum duration of silence before the client
	// considers the connection dead and triggers a reconnect.
	HeartbeatTimeout time.Duration

	// Backoff parameters for reconnection. Retries never give up.
	BackoffInitial time.Duration
	BackoffMax     time.Duration
	BackoffFactor  float64
	BackoffJitter  bool

	HandshakeTimeout time.Duration

	// Headers sent during the WebSocket handshake.
	Headers http.Header
}

// DefaultWSConfig returns defaults suited to public market-data streams.
func DefaultWSConfig(url string) WSConfig {
	return WSConfig{
		URL:              url,
		ReadBufferSize:   16384,
		WriteBufferSize:  4096,
		HeartbeatTimeout: 30 * time.Second,
		BackoffInitial:   time.Second,
		BackoffMax:       30 * time.Second,
		BackoffFactor:    2.0,
		BackoffJitter:    true,
		HandshakeTimeout: 10 * time.Second,
	}
}

// Frame is one inbound message, or a marker that connection Conn closed.
type Frame struct {
	Conn   uint64 // connection generation, starting at 1
	Data   []byte
	Closed bool
}

// WSClient is a resilient WebSocket connection manager. It dials with
// exponential backoff until it succeeds, re-runs OnConnect on every new
// connection, monitors heartbeats through the read deadline, and delivers
// frames in arrival order on a single channel.
type WSClient struct {
	cfg WSConfig
	log *logrus.Entry

	state      atomic.Int32
	gen        atomic.Uint64
	reconnects atomic.Uint64

	mu   sync.RWMutex
	conn *websocket.Conn

	writeMu sync.Mutex

	frames chan Frame

	// OnConnect runs after every successful dial and before frames from
	// the new connection are read, typically to send subscriptions.
	OnConnect func(ctx context.Context, ws *WSClient) error

	// onReconnect is called after each successful reconnection (testing hook).
	onReconnect func()
}

// NewWSClient creates a new WebSocket client. Call Run to start it.
func NewWSClient(cfg WSConfig) *WSClient {
	ws := &WSClient{
		cfg:    cfg,
		log:    logger.Get().WithComponent("ws").WithField("url", cfg.URL),
		frames: make(chan Frame, 256),
	}
	ws.state.Store(int32(StateConnecting))
	return ws
}

// State returns the current connection state.
func (ws *WSClient) State() ConnState {
	return ConnState(ws.state.Load())
}

// Reconnects returns how many times the client has re-established a
// dropped connection.
func (ws *WSClient) Reconnects() uint64 { return ws.reconnects.Load() }

// Frames returns the inbound frame channel. It is closed when Run returns.
func (ws *WSClient) Frames() <-chan Frame { return ws.frames }

// Send writes a text message on the current connection.
func (ws *WSClient) Send(data []byte) error {
	ws.mu.RLock()
	c := ws.conn
	ws.mu.RUnlock()
	if c == nil {
		return errors.New("ws: not connected")
	}

	ws.writeMu.Lock()
	defer ws.writeMu.Unlock()
	return c.WriteMessage(websocket.TextMessage, data)
}

// ForceReconnect drops the current connection; Run reconnects with backoff.
func (ws *WSClient) ForceReconnect() {
	ws.mu.RLock()
	c := ws.conn
	ws.mu.RUnlock()
	if c != nil {
		c.Close()
	}
}

// Run connects and keeps the connection alive until ctx is cancelled.
// Shutdown is honoured at the next read or backoff wait.
func (ws *WSClient) Run(ctx context.Context) {
	defer close(ws.frames)
	defer ws.state.Store(int32(StateStopped))

	bo := &backoff.Backoff{
		Min:    ws.cfg.BackoffInitial,
		Max:    ws.cfg.BackoffMax,
		Factor: ws.cfg.BackoffFactor,
		Jitter: ws.cfg.BackoffJitter,
	}

	// Unblock the read loop on shutdown.
	stop := context.AfterFunc(ctx, ws.ForceReconnect)
	defer stop()

	first := true
	for {
		if ctx.Err() != nil {
			return
		}
		ws.state.Store(int32(StateConnecting))
		if err := ws.dial(ctx); err != nil {
			ws.state.Store(int32(StateReconnecting))
			delay := bo.Duration()
			ws.log.WithError(err).WithField("retry_in", delay).Warn("ws: dial failed")
			if !sleep(ctx, delay) {
				return
			}
			continue
		}

		gen := ws.gen.Add(1)
		if ws.OnConnect != nil {
			if err := ws.OnConnect(ctx, ws); err != nil {
				ws.log.WithError(err).Warn("ws: connect hook failed, reconnecting")
				ws.closeConn()
				ws.state.Store(int32(StateReconnecting))
				if !sleep(ctx, bo.Duration()) {
					return
				}
				continue
			}
		}

		bo.Reset()
		ws.state.Store(int32(StateStreaming))
		if !first {
			ws.reconnects.Add(1)
			if ws.onReconnect != nil {
				ws.onReconnect()
			}
		}
		first = false
		ws.log.WithField("conn", gen).Info("ws: streaming")

		err := ws.readLoop(ctx, gen)
		ws.closeConn()
		if ctx.Err() != nil {
			return
		}
		ws.state.Store(int32(StateReconnecting))
		if !ws.emit(ctx, Frame{Conn: gen, Closed: true}) {
			return
		}

		delay := bo.Duration()
		ws.log.WithError(err).WithField("retry_in", delay).Warn("ws: connection lost")
		if !sleep(ctx, delay) {
			return
		}
	}
}

// dial establishes the WebSocket connection with TCP_NODELAY enabled.
func (ws *WSClient) dial(ctx context.Context) error {
	ws.mu.RLock()
	url := ws.cfg.URL
	ws.mu.RUnlock()

	dialer := websocket.Dialer{
		ReadBufferSize:   ws.cfg.ReadBufferSize,
		WriteBufferSize:  ws.cfg.WriteBufferSize,
		HandshakeTimeout: ws.cfg.HandshakeTimeout,
		Proxy:            http.ProxyFromEnvironment,
		NetDialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			d := net.Dialer{}
			conn, err := d.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			if tc, ok := conn.(*net.TCPConn); ok {
				tc.SetNoDelay(true)
			}
			return conn, nil
		},
	}

	conn, _, err := dialer.DialContext(ctx, url, ws.cfg.Headers)
	if err != nil {
		return err
	}

	ws.mu.Lock()
	ws.conn = conn
	ws.mu.Unlock()
	return nil
}

func (ws *WSClient) closeConn() {
	ws.mu.Lock()
	if ws.conn != nil {
		ws.conn.Close()
		ws.conn = nil
	}
	ws.mu.Unlock()
}

// readLoop reads messages until the connection fails. It doubles as the
// heartbeat monitor: silence longer than HeartbeatTimeout is a failure.
func (ws *WSClient) readLoop(ctx context.Context, gen uint64) error {
	ws.mu.RLock()
	c := ws.conn
	ws.mu.RUnlock()
	if c == nil {
		return errors.New("ws: connection closed")
	}

	for {
		if ws.cfg.HeartbeatTimeout > 0 {
			c.SetReadDeadline(time.Now().Add(ws.cfg.HeartbeatTimeout))
		}
		_, msg, err := c.ReadMessage()
		if err != nil {
			return err
		}
		if !ws.emit(ctx, Frame{Conn: gen, Data: msg}) {
			return ctx.Err()
		}
	}
}

// emit delivers f in order. Frames are never dropped: losing a delta
// would silently corrupt the consumer's book.
func (ws *WSClient) emit(ctx context.Context, f Frame) bool {
	select {
	case ws.frames <- f:
		return true
	case <-ctx.Done():
		return false
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
