package goToken

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MrEthical07/goToken/internal/audit"
	"github.com/MrEthical07/goToken/jwt"
	"github.com/MrEthical07/goToken/keys"
	"github.com/redis/go-redis/v9"
)

// Builder assembles an Engine. A Builder can be built once.
type Builder struct {
	config      Config
	keyProvider keys.Provider
	auditSink   AuditSink
	redis       redis.UniversalClient
	logger      *slog.Logger
	clock       func() time.Time

	built bool
}

// New returns a Builder seeded with DefaultConfig.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the configuration. Build validates it.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithKeyProvider overrides key resolution from Config.JWT.Secret.
func (b *Builder) WithKeyProvider(p keys.Provider) *Builder {
	b.keyProvider = p
	return b
}

// WithAuditSink sets the sink used when Config.Audit.Enabled is true.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithRedis routes audit events to a Redis stream when no explicit sink is set.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithLogger sets the structured logger. Without one the engine logs nothing.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithClock replaces time.Now for issuance and validation.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.clock = now
	return b
}

// Build validates the configuration and resolves the signing key. Any error
// here is a configuration error and should stop the process.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	b.built = true

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider := b.keyProvider
	if provider == nil {
		if strings.TrimSpace(cfg.JWT.Secret) == "" {
			return nil, fmt.Errorf("%w: jwt secret is not configured", keys.ErrInvalidKeyConfiguration)
		}
		provider = keys.NewBase64Provider(cfg.JWT.Secret)
	}

	manager, err := jwt.NewManager(jwt.Config{
		Lifetime: cfg.JWT.Lifetime(),
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		Leeway:   cfg.JWT.Leeway,
	}, provider)
	if err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With(slog.String("component", "gotoken"))

	clock := b.clock
	if clock == nil {
		clock = time.Now
	}

	sink := b.auditSink
	if sink == nil && b.redis != nil {
		sink = NewRedisStreamSink(b.redis, cfg.Audit)
	}

	e := &Engine{
		config:  cfg,
		manager: manager,
		metrics: NewMetrics(cfg.Metrics),
		logger:  logger,
		now:     clock,
		audit: audit.NewDispatcher(audit.Config{
			Enabled:     cfg.Audit.Enabled,
			BufferSize:  cfg.Audit.BufferSize,
			DropIfFull:  cfg.Audit.DropIfFull,
			SinkTimeout: cfg.Audit.SinkTimeout,
		}, sink),
	}

	logger.Info("token engine ready",
		slog.String("alg", manager.Alg()),
		slog.Duration("lifetime", manager.Lifetime()),
		slog.Bool("audit", cfg.Audit.Enabled),
	)

	return e, nil
}
