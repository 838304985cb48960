package goToken

import (
	"errors"
	"log/slog"
	"time"

	"github.com/MrEthical07/goToken/internal/audit"
	"github.com/MrEthical07/goToken/jwt"
)

// Engine issues and validates tokens with a single process-wide signing key.
//
// Engine is immutable after Build and safe for concurrent use.
type Engine struct {
	config  Config
	manager *jwt.Manager
	audit   *audit.Dispatcher
	metrics *Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// Close flushes pending audit events.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.audit.Close()
}

// AuditDropped returns the number of audit events discarded because the
// dispatcher buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a copy of the counters and the validate latency
// histogram. It is empty when metrics are disabled.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// Algorithm returns the JOSE algorithm tokens are signed with.
func (e *Engine) Algorithm() string {
	if e == nil {
		return ""
	}
	return e.manager.Alg()
}

// Issue signs a token for subject valid from now for the configured lifetime.
func (e *Engine) Issue(subject string) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}
	return e.IssueAt(subject, e.now())
}

// IssueFor signs a token for the principal's username.
func (e *Engine) IssueFor(principal Principal) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}
	if principal == nil {
		return e.IssueAt("", e.now())
	}
	return e.IssueAt(principal.Username(), e.now())
}

// IssueAt signs a token as of now. NumericDate claims hold whole seconds, so
// now is rounded down: iat = now.Truncate(time.Second) and exp = iat + lifetime.
// A token issued at 12:00:00.600 with a one-second lifetime expires at
// 12:00:01, not 12:00:01.600.
func (e *Engine) IssueAt(subject string, now time.Time) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}

	token, err := e.manager.Issue(subject, now)
	if err != nil {
		e.metrics.Inc(MetricIssueFailure)
		e.reportIssueFailure(err)
		return "", err
	}

	e.metrics.Inc(MetricIssueSuccess)
	e.emitAudit(AuditEvent{
		EventType: AuditEventTokenIssued,
		Subject:   subject,
		Success:   true,
		Metadata:  map[string]string{auditMetadataAlgorithm: e.manager.Alg()},
	})
	return token, nil
}

// Validate verifies token against the current time. Callers must treat any
// non-valid result as unauthenticated; Kind is for diagnostics.
func (e *Engine) Validate(token string) ValidationResult {
	if e == nil {
		return ValidationResult{Kind: KindInvalidArgument, Reason: ErrEngineNotReady.Error()}
	}
	return e.ValidateAt(token, e.now())
}

// ValidateAt verifies token as of now.
func (e *Engine) ValidateAt(token string, now time.Time) ValidationResult {
	if e == nil {
		return ValidationResult{Kind: KindInvalidArgument, Reason: ErrEngineNotReady.Error()}
	}

	var start time.Time
	if e.metrics.LatencyEnabled() {
		start = time.Now()
	}
	res := e.manager.Verify(token, now)
	if e.metrics.LatencyEnabled() {
		e.metrics.Observe(MetricValidateLatency, time.Since(start))
	}

	if !res.Valid() {
		e.reportRejection(auditOperationValidate, res)
		return res
	}
	e.metrics.Inc(MetricValidateSuccess)
	return res
}

// ExtractSubject verifies token and returns its subject. It never returns a
// subject from a token that failed verification; the error is a *Rejection
// matching ErrTokenRejected and the sentinel of its kind.
func (e *Engine) ExtractSubject(token string) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}
	return e.ExtractSubjectAt(token, e.now())
}

// ExtractSubjectAt is ExtractSubject as of now.
func (e *Engine) ExtractSubjectAt(token string, now time.Time) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}

	subject, err := e.manager.Subject(token, now)
	if err != nil {
		var rej *jwt.Rejection
		if errors.As(err, &rej) {
			e.reportRejection(auditOperationExtract, ValidationResult{Kind: rej.Kind, Reason: rej.Reason})
		}
		return "", err
	}
	e.metrics.Inc(MetricExtractSuccess)
	return subject, nil
}
