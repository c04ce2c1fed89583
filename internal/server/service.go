package server

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/status"

	"github.com/caesar-terminal/bookagg/internal/adapter"
	orderbookv1 "github.com/caesar-terminal/bookagg/internal/gen/orderbook/v1"
	"github.com/caesar-terminal/bookagg/internal/logger"
)

// HealthReporter is satisfied by *adapter.HealthMonitor.
type HealthReporter interface {
	Snapshot() []adapter.FeedHealth
}

// Service implements the OrderbookAggregator gRPC service on top of the
// summary hub.
type Service struct {
	orderbookv1.UnimplementedOrderbookAggregatorServer
	hub    *adapter.Hub
	health HealthReporter
	log    *logrus.Entry
}

// NewService creates a Service. health may be nil, in which case
// FeedStatus reports no feeds.
func NewService(hub *adapter.Hub, health HealthReporter) *Service {
	return &Service{
		hub:    hub,
		health: health,
		log:    logger.Get().WithComponent("grpc"),
	}
}

// BookSummary streams summaries to one client until the client goes away
// or the hub closes. The client's subscription is always released.
func (s *Service) BookSummary(_ *orderbookv1.Empty, stream orderbookv1.OrderbookAggregator_BookSummaryServer) error {
	ctx := stream.Context()
	sub := s.hub.Subscribe()
	defer sub.Close()

	log := s.log.WithField("subscription", sub.ID())
	log.Info("summary stream opened")
	defer func() {
		log.WithField("dropped", sub.Dropped()).Info("summary stream closed")
	}()

	for {
		sum, err := sub.Next(ctx)
		switch {
		case errors.Is(err, adapter.ErrUnsubscribed):
			return nil
		case err != nil:
			return status.FromContextError(err).Err()
		}
		if err := stream.Send(SummaryToProto(sum)); err != nil {
			return err
		}
	}
}

// FeedStatus reports the health of every feed.
func (s *Service) FeedStatus(ctx context.Context, _ *orderbookv1.Empty) (*orderbookv1.FeedStatusReply, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	reply := &orderbookv1.FeedStatusReply{}
	if s.health == nil {
		return reply, nil
	}
	for _, h := range s.health.Snapshot() {
		st := &orderbookv1.ExchangeStatus{
			Exchange:     string(h.Exchange),
			State:        h.State.String(),
			Stale:        h.Stale,
			Reconnects:   h.Reconnects,
			DecodeErrors: h.DecodeErrors,
			Batches:      h.Batches,
		}
		if !h.LastMessage.IsZero() {
			st.LastMessageUnixNano = h.LastMessage.UnixNano()
		}
		reply.Feeds = append(reply.Feeds, st)
	}
	return reply, nil
}

// SummaryToProto converts a merged Summary to its wire form.
func SummaryToProto(s *adapter.Summary) *orderbookv1.Summary {
	out := &orderbookv1.Summary{
		Bids:              levelsToProto(s.Bids),
		Asks:              levelsToProto(s.Asks),
		HasSpread:         s.HasSpread,
		Sequence:          s.Sequence,
		TimestampUnixNano: s.Timestamp.UnixNano(),
	}
	if s.HasSpread {
		out.Spread = s.Spread.InexactFloat64()
		out.SpreadExact = s.Spread.String()
	}
	return out
}

func levelsToProto(levels []adapter.PriceLevel) []*orderbookv1.Level {
	out := make([]*orderbookv1.Level, len(levels))
	for i, l := range levels {
		out[i] = &orderbookv1.Level{
			Exchange:    string(l.Exchange),
			Price:       l.Price.InexactFloat64(),
			Amount:      l.Quantity.InexactFloat64(),
			PriceExact:  l.Price.String(),
			AmountExact: l.Quantity.String(),
		}
	}
	return out
}
