package adapter

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/caesar-terminal/bookagg/internal/logger"
)

// HealthConfig holds tunable parameters for the HealthMonitor.
type HealthConfig struct {
	// StaleThreshold is the maximum age of an exchange's last batch before
	// it is reported stale. Default: 10s.
	StaleThreshold time.Duration

	// LogInterval is how often the monitor logs a health line. Zero
	// disables periodic logging.
	LogInterval time.Duration
}

// DefaultHealthConfig returns production defaults.
func DefaultHealthConfig() HealthConfig {
	return HealthConfig{
		StaleThreshold: 10 * time.Second,
		LogInterval:    time.Minute,
	}
}

// StatusProvider is satisfied by *Feed.
type StatusProvider interface {
	Status() FeedStatus
}

// FeedHealth combines a feed's connection status with data freshness.
type FeedHealth struct {
	FeedStatus
	LastBatch time.Time
	Stale     bool
}

// Healthy reports whether the feed is streaming and its data is fresh.
func (h FeedHealth) Healthy() bool {
	return h.State == StateStreaming && !h.Stale
}

// HealthMonitor tracks per-exchange connection state and data freshness.
// It only observes; it never tears down connections.
type HealthMonitor struct {
	cfg HealthConfig
	log *logrus.Entry

	mu        sync.RWMutex
	feeds     map[Exchange]StatusProvider
	lastBatch map[Exchange]time.Time

	nowFunc func() time.Time // injectable clock for testing
}

// NewHealthMonitor creates an empty monitor.
func NewHealthMonitor(cfg HealthConfig) *HealthMonitor {
	if cfg.StaleThreshold <= 0 {
		cfg.StaleThreshold = DefaultHealthConfig().StaleThreshold
	}
	return &HealthMonitor{
		cfg:       cfg,
		log:       logger.Get().WithComponent("health"),
		feeds:     make(map[Exchange]StatusProvider),
		lastBatch: make(map[Exchange]time.Time),
		nowFunc:   time.Now,
	}
}

// Watch registers a feed's status for reporting.
func (hm *HealthMonitor) Watch(ex Exchange, p StatusProvider) {
	hm.mu.Lock()
	hm.feeds[ex] = p
	hm.mu.Unlock()
}

// Record notes that a batch from ex was received at t.
func (hm *HealthMonitor) Record(ex Exchange, t time.Time) {
	hm.mu.Lock()
	if t.After(hm.lastBatch[ex]) {
		hm.lastBatch[ex] = t
	}
	hm.mu.Unlock()
}

// Snapshot returns the health of every watched feed, ordered by exchange.
func (hm *HealthMonitor) Snapshot() []FeedHealth {
	now := hm.nowFunc()

	hm.mu.RLock()
	out := make([]FeedHealth, 0, len(hm.feeds))
	for ex, p := range hm.feeds {
		st := p.Status()
		st.Exchange = ex
		last := hm.lastBatch[ex]
		out = append(out, FeedHealth{
			FeedStatus: st,
			LastBatch:  last,
			Stale:      last.IsZero() || now.Sub(last) > hm.cfg.StaleThreshold,
		})
	}
	hm.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Exchange < out[j].Exchange })
	return out
}

// Run logs a health line every LogInterval until ctx is cancelled.
func (hm *HealthMonitor) Run(ctx context.Context) {
	if hm.cfg.LogInterval <= 0 {
		<-ctx.Done()
		return
	}
	ticker := time.NewTicker(hm.cfg.LogInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, h := range hm.Snapshot() {
				entry := hm.log.WithFields(logger.Fields{
					"exchange":      h.Exchange,
					"state":         h.State.String(),
					"stale":         h.Stale,
					"reconnects":    h.Reconnects,
					"decode_errors": h.DecodeErrors,
					"batches":       h.Batches,
				})
				if h.Healthy() {
					entry.Info("feed healthy")
				} else {
					entry.Warn("feed unhealthy")
				}
			}
		}
	}
}
