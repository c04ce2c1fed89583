package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/caesar-terminal/bookagg/internal/adapter"
)

// ErrInvalidConfig is wrapped by every validation failure. It is fatal at
// startup: no component is constructed from an invalid Config.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all application configuration. It is read once at startup
// and treated as immutable afterwards.
type Config struct {
	Env       string
	Exchanges []adapter.Exchange
	Pair      adapter.Pair
	Depth     int

	// SuppressUnchanged skips summaries identical to the previous one.
	SuppressUnchanged bool

	GRPC   GRPCConfig
	Hub    HubConfig
	Feed   FeedConfig
	Health HealthConfig
	Redis  RedisConfig
	Log    LogConfig
}

// GRPCConfig holds the streaming endpoint settings.
type GRPCConfig struct {
	Addr string `mapstructure:"addr"`
}

// HubConfig holds fan-out settings.
type HubConfig struct {
	Buffer int `mapstructure:"buffer"`
}

// FeedConfig holds per-exchange connection settings.
type FeedConfig struct {
	BackoffInitial   time.Duration `mapstructure:"backoff_initial"`
	BackoffMax       time.Duration `mapstructure:"backoff_max"`
	HeartbeatTimeout time.Duration `mapstructure:"heartbeat_timeout"`
	ErrorRate        float64       `mapstructure:"error_rate"`
	ErrorBurst       int           `mapstructure:"error_burst"`
	Queue            int           `mapstructure:"queue"`
}

// HealthConfig holds feed health reporting settings.
type HealthConfig struct {
	StaleThreshold time.Duration `mapstructure:"stale_threshold"`
	LogInterval    time.Duration `mapstructure:"log_interval"`
}

// RedisConfig holds the optional latest-summary mirror settings.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("exchanges", "binance,bitstamp,kraken,coinbase")
	v.SetDefault("pair", "ETH/BTC")
	v.SetDefault("depth", adapter.DefaultDepth)
	v.SetDefault("suppress_unchanged", false)

	v.SetDefault("grpc.addr", ":50051")
	v.SetDefault("hub.buffer", adapter.DefaultHubCapacity)

	// Feed defaults
	v.SetDefault("feed.backoff_initial", time.Second)
	v.SetDefault("feed.backoff_max", 30*time.Second)
	v.SetDefault("feed.heartbeat_timeout", 30*time.Second)
	v.SetDefault("feed.error_rate", 5.0)
	v.SetDefault("feed.error_burst", 10)
	v.SetDefault("feed.queue", 1024)

	v.SetDefault("health.stale_threshold", 10*time.Second)
	v.SetDefault("health.log_interval", time.Minute)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_age_days", 7)
}

// Load reads configuration from, in increasing precedence: defaults, an
// optional config file (--config or BOOKAGG_CONFIG), environment variables
// prefixed with BOOKAGG_, and command-line flags in args.
func Load(args []string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKAGG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	fs := pflag.NewFlagSet("bookagg", pflag.ContinueOnError)
	fs.String("config", "", "path to a YAML, TOML or JSON config file")
	fs.String("exchanges", "", "comma-separated exchanges to aggregate")
	fs.String("pair", "", "currency pair, e.g. ETH/BTC")
	fs.Int("depth", 0, "merged levels per side")
	fs.Int("port", 0, "gRPC listen port")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for _, name := range []string{"exchanges", "pair", "depth"} {
		if f := fs.Lookup(name); f.Changed {
			v.Set(name, f.Value.String())
		}
	}
	if f := fs.Lookup("port"); f.Changed {
		v.Set("grpc.addr", ":"+f.Value.String())
	}

	file, _ := fs.GetString("config")
	if file == "" {
		file = v.GetString("config")
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := &Config{
		Env:               v.GetString("env"),
		Depth:             v.GetInt("depth"),
		SuppressUnchanged: v.GetBool("suppress_unchanged"),
	}

	exchanges, err := parseExchanges(v.GetStringSlice("exchanges"))
	if err != nil {
		return nil, err
	}
	cfg.Exchanges = exchanges

	pair, err := adapter.ParsePair(v.GetString("pair"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.Pair = pair

	cfg.GRPC = GRPCConfig{Addr: v.GetString("grpc.addr")}
	cfg.Hub = HubConfig{Buffer: v.GetInt("hub.buffer")}

	cfg.Feed = FeedConfig{
		BackoffInitial:   v.GetDuration("feed.backoff_initial"),
		BackoffMax:       v.GetDuration("feed.backoff_max"),
		HeartbeatTimeout: v.GetDuration("feed.heartbeat_timeout"),
		ErrorRate:        v.GetFloat64("feed.error_rate"),
		ErrorBurst:       v.GetInt("feed.error_burst"),
		Queue:            v.GetInt("feed.queue"),
	}

	cfg.Health = HealthConfig{
		StaleThreshold: v.GetDuration("health.stale_threshold"),
		LogInterval:    v.GetDuration("health.log_interval"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("redis.enabled"),
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}

	cfg.Log = LogConfig{
		Level:      v.GetString("log.level"),
		Format:     v.GetString("log.format"),
		File:       v.GetString("log.file"),
		MaxSizeMB:  v.GetInt("log.max_size_mb"),
		MaxAgeDays: v.GetInt("log.max_age_days"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseExchanges accepts a config-file list as well as comma-separated
// flag and env values, rejecting unknown names and duplicates.
func parseExchanges(items []string) ([]adapter.Exchange, error) {
	var out []adapter.Exchange
	seen := make(map[adapter.Exchange]bool)
	for _, item := range items {
		for _, name := range strings.Split(item, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			ex, err := adapter.ParseExchange(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
			}
			if seen[ex] {
				return nil, fmt.Errorf("%w: exchange %s listed twice", ErrInvalidConfig, ex)
			}
			seen[ex] = true
			out = append(out, ex)
		}
	}
	return out, nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	switch {
	case len(c.Exchanges) == 0:
		return fmt.Errorf("%w: no exchanges enabled", ErrInvalidConfig)
	case c.Depth < 1:
		return fmt.Errorf("%w: depth must be at least 1, got %d", ErrInvalidConfig, c.Depth)
	case c.Hub.Buffer < 1:
		return fmt.Errorf("%w: hub buffer must be at least 1, got %d", ErrInvalidConfig, c.Hub.Buffer)
	case c.Feed.Queue < 0:
		return fmt.Errorf("%w: feed queue must not be negative", ErrInvalidConfig)
	case c.Feed.BackoffInitial <= 0 || c.Feed.BackoffMax < c.Feed.BackoffInitial:
		return fmt.Errorf("%w: feed backoff must satisfy 0 < initial <= max", ErrInvalidConfig)
	case c.GRPC.Addr == "":
		return fmt.Errorf("%w: grpc address is empty", ErrInvalidConfig)
	}
	return nil
}
