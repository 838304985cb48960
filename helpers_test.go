package goToken

import (
	"bytes"
	"encoding/base64"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testSecret(fill byte, size int) string {
	return base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{fill}, size))
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.JWT.Secret = testSecret(0x42, 64)
	cfg.JWT.ExpirationMs = 60_000
	cfg.Metrics.EnableLatencyHistograms = true
	return cfg
}

// lockedBuffer is a concurrency-safe log destination.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEngine struct {
	*Engine
	clock *fixedClock
	logs  *lockedBuffer
	sink  *ChannelSink
}

func newTestEngine(t *testing.T, cfg Config) testEngine {
	t.Helper()

	clock := &fixedClock{now: testEpoch}
	logs := &lockedBuffer{}
	sink := NewChannelSink(8192)
	cfg.Audit.Enabled = true

	engine, err := New().
		WithConfig(cfg).
		WithAuditSink(sink).
		WithLogger(slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))).
		WithClock(clock.Now).
		Build()
	require.NoError(t, err)
	t.Cleanup(engine.Close)

	return testEngine{Engine: engine, clock: clock, logs: logs, sink: sink}
}

type user struct {
	name string
}

func (u user) Username() string {
	return u.name
}
