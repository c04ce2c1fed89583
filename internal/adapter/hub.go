package adapter

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/caesar-terminal/bookagg/internal/logger"
)

// DefaultHubCapacity is the per-subscriber buffer size.
const DefaultHubCapacity = 32

// ErrUnsubscribed is returned by Subscription.Next once the subscription
// has been removed or the hub has closed.
var ErrUnsubscribed = errors.New("adapter: subscription closed")

// Subscription is one consumer's handle on the hub. Each subscription has
// its own bounded buffer, so consumers are paced independently.
type Subscription struct {
	id      string
	hub     *Hub
	ch      chan *Summary
	dropped atomic.Uint64

	mu     sync.Mutex
	closed bool
}

// ID returns the subscription's unique identifier.
func (s *Subscription) ID() string { return s.id }

// C returns the delivery channel. It is emptied and closed on unsubscribe.
func (s *Subscription) C() <-chan *Summary { return s.ch }

// Dropped returns how many summaries were discarded because this
// subscriber's buffer was full.
func (s *Subscription) Dropped() uint64 { return s.dropped.Load() }

// Next blocks for the next Summary. It returns ErrUnsubscribed when the
// subscription ends, or ctx.Err() if ctx is done first.
func (s *Subscription) Next(ctx context.Context) (*Summary, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case sum, ok := <-s.ch:
		if !ok {
			return nil, ErrUnsubscribed
		}
		return sum, nil
	}
}

// Close unsubscribes from the hub. Safe to call more than once.
func (s *Subscription) Close() { s.hub.Unsubscribe(s) }

// deliver enqueues sum with latest-wins semantics: when the buffer is full
// the oldest buffered Summary is discarded to make room. It never blocks.
func (s *Subscription) deliver(sum *Summary) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}

	dropped := false
	for {
		select {
		case s.ch <- sum:
			return !dropped
		default:
		}
		select {
		case <-s.ch:
			dropped = true
			s.dropped.Add(1)
		default:
		}
	}
}

func (s *Subscription) close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.closed = true
drain:
	for {
		select {
		case <-s.ch:
		default:
			break drain
		}
	}
	close(s.ch)
	return true
}

// Hub fans Summaries out to any number of subscribers. Publish never
// blocks: a subscriber that falls behind loses its oldest buffered
// summaries and sees a gap in Sequence, while every other subscriber and
// the aggregator carry on unaffected.
type Hub struct {
	capacity int
	log      *logrus.Entry

	mu     sync.RWMutex
	subs   map[string]*Subscription
	latest *Summary
	closed bool
}

// NewHub creates a Hub whose subscribers each buffer up to capacity
// summaries.
func NewHub(capacity int) *Hub {
	if capacity <= 0 {
		capacity = DefaultHubCapacity
	}
	return &Hub{
		capacity: capacity,
		log:      logger.Get().WithComponent("hub"),
		subs:     make(map[string]*Subscription),
	}
}

// Subscribe registers a new consumer. If a Summary has already been
// published, the subscription starts with the latest one buffered. After
// Close, the returned subscription is already ended.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{
		id:  uuid.NewString(),
		hub: h,
		ch:  make(chan *Summary, h.capacity),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		sub.close()
		return sub
	}
	if h.latest != nil {
		sub.deliver(h.latest)
	}
	h.subs[sub.id] = sub

	h.log.WithFields(logger.Fields{"subscription": sub.id, "subscribers": len(h.subs)}).
		Info("subscriber added")
	return sub
}

// Unsubscribe removes a subscription and closes its channel; buffered
// summaries are discarded. Idempotent.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	_, ok := h.subs[sub.id]
	delete(h.subs, sub.id)
	remaining := len(h.subs)
	h.mu.Unlock()

	if sub.close() && ok {
		h.log.WithFields(logger.Fields{
			"subscription": sub.id,
			"subscribers":  remaining,
			"dropped":      sub.Dropped(),
		}).Info("subscriber removed")
	}
}

// Publish delivers sum to every active subscription. The hub lock is held
// for the whole fan-out so a concurrent Subscribe sees either the previous
// latest plus this delivery, or this summary as its primer, never both.
func (h *Hub) Publish(sum *Summary) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.latest = sum

	for _, sub := range h.subs {
		if !sub.deliver(sum) {
			h.log.WithFields(logger.Fields{
				"subscription": sub.id,
				"sequence":     sum.Sequence,
			}).Debug("subscriber overrun, dropped oldest summary")
		}
	}
}

// Latest returns the most recently published Summary, or nil.
func (h *Hub) Latest() *Summary {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Len returns the number of active subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close ends every subscription. Later Publish calls are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	subs := h.subs
	h.subs = make(map[string]*Subscription)
	h.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
	h.log.WithField("subscribers", len(subs)).Info("hub closed")
}
