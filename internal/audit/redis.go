package audit

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultStream      = "gotoken:audit"
	DefaultStreamLen   = 10000
	defaultEmitTimeout = 2 * time.Second
)

// RedisStreamConfig controls where RedisStreamSink appends events.
type RedisStreamConfig struct {
	Stream  string
	MaxLen  int64
	Timeout time.Duration
}

// RedisStreamSink appends each event to a Redis stream with approximate
// MAXLEN trimming. Failed appends are counted, never retried.
type RedisStreamSink struct {
	client  redis.UniversalClient
	cfg     RedisStreamConfig
	failed  atomic.Uint64
	written atomic.Uint64
}

func NewRedisStreamSink(client redis.UniversalClient, cfg RedisStreamConfig) *RedisStreamSink {
	if cfg.Stream == "" {
		cfg.Stream = DefaultStream
	}
	if cfg.MaxLen <= 0 {
		cfg.MaxLen = DefaultStreamLen
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultEmitTimeout
	}
	return &RedisStreamSink{client: client, cfg: cfg}
}

func (s *RedisStreamSink) Emit(ctx context.Context, event Event) {
	if s == nil || s.client == nil {
		return
	}
	values := map[string]any{
		"id":         event.ID,
		"timestamp":  event.Timestamp.UTC().Format(time.RFC3339Nano),
		"event_type": event.EventType,
		"success":    event.Success,
	}
	if event.Subject != "" {
		values["subject"] = event.Subject
	}
	if event.Error != "" {
		values["error"] = event.Error
	}
	if event.Reason != "" {
		values["reason"] = event.Reason
	}
	if len(event.Metadata) > 0 {
		if data, err := json.Marshal(event.Metadata); err == nil {
			values["metadata"] = string(data)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.cfg.Stream,
		MaxLen: s.cfg.MaxLen,
		Approx: true,
		Values: values,
	}).Err()
	if err != nil {
		s.failed.Add(1)
		return
	}
	s.written.Add(1)
}

// Failed returns the number of events that could not be appended.
func (s *RedisStreamSink) Failed() uint64 {
	return s.failed.Load()
}

// Written returns the number of events appended.
func (s *RedisStreamSink) Written() uint64 {
	return s.written.Load()
}
