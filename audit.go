package goToken

import (
	"io"

	"github.com/MrEthical07/goToken/internal/audit"
	"github.com/redis/go-redis/v9"
)

type (
	AuditEvent      = audit.Event
	AuditSink       = audit.Sink
	NoOpSink        = audit.NoOpSink
	ChannelSink     = audit.ChannelSink
	JSONWriterSink  = audit.JSONWriterSink
	RedisStreamSink = audit.RedisStreamSink
)

const (
	AuditEventTokenIssued      = "token_issued"
	AuditEventIssueFailure     = "token_issue_failure"
	AuditEventTokenRejected    = "token_rejected"
	auditMetadataOperation     = "op"
	auditMetadataAlgorithm     = "alg"
	auditOperationValidate     = "validate"
	auditOperationExtract      = "extract_subject"
	auditOperationIssue        = "issue"
	auditErrorEmptySubject     = "empty_subject"
	auditErrorKeyConfiguration = "key_configuration"
)

func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}

// NewRedisStreamSink appends audit events to cfg.RedisStream, trimmed to
// roughly cfg.RedisMaxLen entries.
func NewRedisStreamSink(client redis.UniversalClient, cfg AuditConfig) *RedisStreamSink {
	return audit.NewRedisStreamSink(client, audit.RedisStreamConfig{
		Stream:  cfg.RedisStream,
		MaxLen:  cfg.RedisMaxLen,
		Timeout: cfg.SinkTimeout,
	})
}
