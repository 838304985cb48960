package goToken

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MrEthical07/goToken/jwt"
	"github.com/google/uuid"
)

// reportRejection records one rejection: log, counter, audit. Only the kind and
// its fixed reason leave this function.
func (e *Engine) reportRejection(op string, res ValidationResult) {
	if id, ok := RejectionMetric(res.Kind); ok {
		e.metrics.Inc(id)
	}

	e.logger.LogAttrs(context.Background(), slog.LevelWarn, "token rejected",
		slog.String("op", op),
		slog.String("kind", res.Kind.String()),
		slog.String("reason", res.Reason),
	)

	e.emitAudit(AuditEvent{
		EventType: AuditEventTokenRejected,
		Error:     res.Kind.String(),
		Reason:    res.Reason,
		Metadata:  map[string]string{auditMetadataOperation: op},
	})
}

func (e *Engine) reportIssueFailure(err error) {
	code := auditErrorKeyConfiguration
	level := slog.LevelError
	if errors.Is(err, jwt.ErrEmptySubject) {
		code = auditErrorEmptySubject
		level = slog.LevelWarn
	}

	e.logger.LogAttrs(context.Background(), level, "token issuance failed",
		slog.String("op", auditOperationIssue),
		slog.String("error", code),
	)

	e.emitAudit(AuditEvent{
		EventType: AuditEventIssueFailure,
		Error:     code,
		Metadata:  map[string]string{auditMetadataOperation: auditOperationIssue},
	})
}

func (e *Engine) emitAudit(event AuditEvent) {
	if e == nil || e.audit == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = e.now().UTC()
	e.audit.Emit(context.Background(), event)
}
