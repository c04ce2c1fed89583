// Package app assembles the aggregator process from its configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
	"golang.org/x/time/rate"

	"github.com/caesar-terminal/bookagg/internal/adapter"
	"github.com/caesar-terminal/bookagg/internal/adapter/binance"
	"github.com/caesar-terminal/bookagg/internal/adapter/bitstamp"
	"github.com/caesar-terminal/bookagg/internal/adapter/coinbase"
	"github.com/caesar-terminal/bookagg/internal/adapter/kraken"
	"github.com/caesar-terminal/bookagg/internal/config"
	"github.com/caesar-terminal/bookagg/internal/logger"
	"github.com/caesar-terminal/bookagg/internal/server"
)

// CodecFor returns the wire codec for ex.
func CodecFor(ex adapter.Exchange) (adapter.Codec, error) {
	switch ex {
	case adapter.ExchangeBinance:
		return binance.New(), nil
	case adapter.ExchangeBitstamp:
		return bitstamp.New(), nil
	case adapter.ExchangeKraken:
		return kraken.New(), nil
	case adapter.ExchangeCoinbase:
		return coinbase.New(), nil
	}
	return nil, fmt.Errorf("no codec for exchange %q", ex)
}

// Option customises an App, mainly for tests.
type Option func(*options)

type options struct {
	urls     map[adapter.Exchange]string
	listener net.Listener
	redis    adapter.RedisClient
}

// WithFeedURL overrides the endpoint dialled for ex.
func WithFeedURL(ex adapter.Exchange, url string) Option {
	return func(o *options) { o.urls[ex] = url }
}

// WithListener serves gRPC on lis instead of the configured address.
func WithListener(lis net.Listener) Option {
	return func(o *options) { o.listener = lis }
}

// WithRedisClient mirrors summaries to c regardless of configuration.
func WithRedisClient(c adapter.RedisClient) Option {
	return func(o *options) { o.redis = c }
}

// App owns every long-running component.
type App struct {
	cfg     *config.Config
	log     *logrus.Entry
	batches chan adapter.Batch

	hub    *adapter.Hub
	agg    *adapter.Aggregator
	feeds  []*adapter.Feed
	health *adapter.HealthMonitor
	mirror *adapter.RedisWriter
	srv    *server.Server

	closers []func() error
}

// New builds the component graph: hub, aggregator, one feed per enabled
// exchange, health monitor, optional Redis mirror and the gRPC server.
// Nothing runs until Run.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{urls: make(map[adapter.Exchange]string)}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		cfg:     cfg,
		log:     logger.Get().WithComponent("app"),
		batches: make(chan adapter.Batch, cfg.Feed.Queue),
		hub:     adapter.NewHub(cfg.Hub.Buffer),
		health: adapter.NewHealthMonitor(adapter.HealthConfig{
			StaleThreshold: cfg.Health.StaleThreshold,
			LogInterval:    cfg.Health.LogInterval,
		}),
	}
	a.agg = adapter.NewAggregator(cfg.Exchanges, adapter.AggregatorConfig{
		Depth:             cfg.Depth,
		SuppressUnchanged: cfg.SuppressUnchanged,
	}, a.hub)

	for _, ex := range cfg.Exchanges {
		codec, err := CodecFor(ex)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
		}
		feed := adapter.NewFeed(codec, cfg.Pair, a.feedConfig(o.urls[ex]), a.batches)
		feed.OnBatch(a.health.Record)
		a.health.Watch(ex, feed)
		a.feeds = append(a.feeds, feed)
	}

	redisClient := o.redis
	if redisClient == nil && cfg.Redis.Enabled {
		c, closeFn, err := adapter.NewRedisClient(ctx, adapter.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		redisClient = c
		a.closers = append(a.closers, closeFn)
	}
	if redisClient != nil {
		a.mirror = adapter.NewRedisWriter(redisClient, cfg.Pair, a.hub.Subscribe())
	}

	svc := server.NewService(a.hub, a.health)
	if o.listener != nil {
		a.srv = server.NewWithListener(o.listener, svc)
	} else {
		srv, err := server.New(cfg.GRPC.Addr, svc)
		if err != nil {
			a.close()
			return nil, err
		}
		a.srv = srv
	}
	return a, nil
}

func (a *App) feedConfig(url string) adapter.FeedConfig {
	ws := adapter.DefaultWSConfig(url)
	ws.HeartbeatTimeout = a.cfg.Feed.HeartbeatTimeout
	ws.BackoffInitial = a.cfg.Feed.BackoffInitial
	ws.BackoffMax = a.cfg.Feed.BackoffMax
	return adapter.FeedConfig{
		WS:         ws,
		ErrorRate:  rate.Limit(a.cfg.Feed.ErrorRate),
		ErrorBurst: a.cfg.Feed.ErrorBurst,
	}
}

// Run starts every component and blocks until ctx is cancelled or the
// gRPC server fails. Shutdown stops the feeds and aggregator, closes the
// hub so open streams end, then drains the server.
func (a *App) Run(ctx context.Context) error {
	a.log.WithFields(logger.Fields{
		"exchanges": a.cfg.Exchanges,
		"pair":      a.cfg.Pair.String(),
		"depth":     a.cfg.Depth,
	}).Info("starting")

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	var wg conc.WaitGroup
	for _, f := range a.feeds {
		wg.Go(func() { f.Run(runCtx) })
	}
	wg.Go(func() { a.agg.Run(runCtx, a.batches) })
	wg.Go(func() { a.health.Run(runCtx) })
	if a.mirror != nil {
		wg.Go(func() { a.mirror.Run(runCtx) })
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- a.srv.Serve() }()

	var err error
	select {
	case <-ctx.Done():
		a.log.Info("shutting down")
	case err = <-serveErr:
		if err != nil {
			err = fmt.Errorf("grpc serve: %w", err)
			a.log.WithError(err).Error("server failed, shutting down")
		}
	}

	stop()
	wg.Wait()
	a.hub.Close()
	a.srv.GracefulStop()

	if cerr := a.close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	a.log.Info("stopped")
	return err
}

func (a *App) close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
