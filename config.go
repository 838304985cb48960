package goToken

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"log/slog"
	"time"

	"github.com/MrEthical07/goToken/internal/audit"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "GOTOKEN_"

const (
	maxLeeway = 2 * time.Minute
	// maxExpirationMs is the largest lifetime a time.Duration can hold.
	maxExpirationMs = math.MaxInt64 / int64(time.Millisecond)
)

// Config is the complete engine configuration. It is read once at startup and
// treated as immutable afterwards.
type Config struct {
	JWT     JWTConfig     `envPrefix:"JWT_"`
	Audit   AuditConfig   `envPrefix:"AUDIT_"`
	Metrics MetricsConfig `envPrefix:"METRICS_"`
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig carries the signing secret and token policy.
type JWTConfig struct {
	// Secret is the base64 (standard alphabet) encoded HMAC key material.
	Secret string `env:"SECRET"`
	// ExpirationMs is the token lifetime in milliseconds.
	ExpirationMs int64         `env:"EXPIRATION_MS" envDefault:"86400000"`
	Issuer       string        `env:"ISSUER"`
	Audience     string        `env:"AUDIENCE"`
	Leeway       time.Duration `env:"LEEWAY" envDefault:"0s"`
}

// Lifetime returns ExpirationMs as a duration.
func (c JWTConfig) Lifetime() time.Duration {
	return time.Duration(c.ExpirationMs) * time.Millisecond
}

// LogValue keeps the secret out of structured logs.
func (c JWTConfig) LogValue() slog.Value {
	secret := "unset"
	if c.Secret != "" {
		secret = "redacted"
	}
	return slog.GroupValue(
		slog.String("secret", secret),
		slog.Duration("lifetime", c.Lifetime()),
		slog.String("issuer", c.Issuer),
		slog.String("audience", c.Audience),
		slog.Duration("leeway", c.Leeway),
	)
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls asynchronous audit delivery.
type AuditConfig struct {
	Enabled     bool          `env:"ENABLED"`
	BufferSize  int           `env:"BUFFER_SIZE" envDefault:"1024"`
	DropIfFull  bool          `env:"DROP_IF_FULL" envDefault:"true"`
	SinkTimeout time.Duration `env:"SINK_TIMEOUT" envDefault:"2s"`
	// RedisAddr, when set, lets callers route audit events to a Redis stream.
	RedisAddr   string `env:"REDIS_ADDR"`
	RedisStream string `env:"REDIS_STREAM" envDefault:"gotoken:audit"`
	RedisMaxLen int64  `env:"REDIS_MAX_LEN" envDefault:"10000"`
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls in-process counters and latency histograms.
type MetricsConfig struct {
	Enabled                 bool `env:"ENABLED" envDefault:"true"`
	EnableLatencyHistograms bool `env:"LATENCY_HISTOGRAMS"`
}

// DefaultConfig returns the same defaults LoadConfig applies, without a secret.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			ExpirationMs: 24 * 60 * 60 * 1000,
		},
		Audit: AuditConfig{
			BufferSize:  1024,
			DropIfFull:  true,
			SinkTimeout: 2 * time.Second,
			RedisStream: audit.DefaultStream,
			RedisMaxLen: audit.DefaultStreamLen,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// LoadConfig reads optional dotenv files, then the GOTOKEN_* environment.
// Missing dotenv files are skipped; variables already set in the environment
// win over file values.
func LoadConfig(files ...string) (Config, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("%w: load %s: %v", ErrInvalidConfig, file, err)
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Validate checks everything except the secret, which Build resolves.
func (c Config) Validate() error {
	if c.JWT.ExpirationMs <= 0 {
		return fmt.Errorf("%w: expiration must be positive", ErrInvalidLifetime)
	}
	if c.JWT.ExpirationMs > maxExpirationMs {
		return fmt.Errorf("%w: expiration exceeds %d ms", ErrInvalidLifetime, int64(maxExpirationMs))
	}
	if c.JWT.Lifetime() < time.Second {
		return ErrInvalidLifetime
	}
	if c.JWT.Leeway < 0 || c.JWT.Leeway > maxLeeway {
		return fmt.Errorf("%w: leeway must be between 0 and %s", ErrInvalidConfig, maxLeeway)
	}
	if c.Audit.BufferSize < 0 {
		return fmt.Errorf("%w: audit buffer size must not be negative", ErrInvalidConfig)
	}
	if c.Audit.SinkTimeout < 0 {
		return fmt.Errorf("%w: audit sink timeout must not be negative", ErrInvalidConfig)
	}
	if c.Audit.RedisMaxLen < 0 {
		return fmt.Errorf("%w: audit stream length must not be negative", ErrInvalidConfig)
	}
	return nil
}
