package adapter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/caesar-terminal/bookagg/internal/logger"
)

// RedisClient abstracts the Redis operations used by RedisWriter.
// In production this is satisfied by NewRedisClient; in tests by a mock.
type RedisClient interface {
	HSet(ctx context.Context, key string, values ...any) error
}

// RedisOptions holds connection settings for NewRedisClient.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

type goRedisClient struct {
	c *redis.Client
}

// NewRedisClient connects to Redis and verifies the connection with PING.
// The returned close function releases the connection pool.
func NewRedisClient(ctx context.Context, opts RedisOptions) (RedisClient, func() error, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return nil, nil, fmt.Errorf("redis: ping %s: %w", opts.Addr, err)
	}
	return goRedisClient{c: c}, c.Close, nil
}

func (g goRedisClient) HSet(ctx context.Context, key string, values ...any) error {
	return g.c.HSet(ctx, key, values...).Err()
}

// topOfBook is the last-written best bid/ask so duplicate writes are skipped.
type topOfBook struct {
	Bid    string
	Ask    string
	Spread string
}

// RedisWriter mirrors the latest merged top of book into Redis using the
// schema:
//
//	Key:    book:{pair}
//	Fields: bid, bid_exchange, ask, ask_exchange, spread, seq, ts
//
// It consumes its own hub subscription, so a slow Redis only costs this
// writer intermediate summaries. Only the newest state is kept.
type RedisWriter struct {
	client RedisClient
	key    string
	sub    *Subscription
	log    *logrus.Entry

	last    topOfBook
	written bool
}

// NewRedisWriter creates a RedisWriter that reads from sub.
func NewRedisWriter(client RedisClient, pair Pair, sub *Subscription) *RedisWriter {
	return &RedisWriter{
		client: client,
		key:    "book:" + pair.String(),
		sub:    sub,
		log:    logger.Get().WithComponent("redis").WithField("key", "book:"+pair.String()),
	}
}

// Run writes summaries until ctx is cancelled or the subscription ends.
// The subscription is closed on return.
func (rw *RedisWriter) Run(ctx context.Context) {
	defer rw.sub.Close()

	for {
		sum, err := rw.sub.Next(ctx)
		if err != nil {
			return
		}
		if err := rw.write(ctx, sum); err != nil {
			rw.log.WithError(err).WithField("sequence", sum.Sequence).Warn("redis write failed")
		}
	}
}

// write issues an HSET unless best bid, best ask and spread are unchanged.
func (rw *RedisWriter) write(ctx context.Context, sum *Summary) error {
	var tob topOfBook
	var bidEx, askEx string
	if b, ok := sum.BestBid(); ok {
		tob.Bid, bidEx = b.Price.String(), string(b.Exchange)
	}
	if a, ok := sum.BestAsk(); ok {
		tob.Ask, askEx = a.Price.String(), string(a.Exchange)
	}
	if sum.HasSpread {
		tob.Spread = sum.Spread.String()
	}

	if rw.written && tob == rw.last {
		return nil
	}

	err := rw.client.HSet(ctx, rw.key,
		"bid", tob.Bid,
		"bid_exchange", bidEx,
		"ask", tob.Ask,
		"ask_exchange", askEx,
		"spread", tob.Spread,
		"seq", strconv.FormatUint(sum.Sequence, 10),
		"ts", strconv.FormatInt(sum.Timestamp.UnixMilli(), 10),
	)
	if err != nil {
		return err
	}
	rw.last = tob
	rw.written = true
	return nil
}
