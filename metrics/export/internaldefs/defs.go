package internaldefs

import (
	goToken "github.com/MrEthical07/goToken"
)

type CounterDef struct {
	ID   goToken.MetricID
	Name string
	Help string
}

type HistogramDef struct {
	ID   goToken.MetricID
	Name string
	Help string
}

// RejectionDef binds one rejection kind to the counter that tracks it and to
// the label value it is published under.
type RejectionDef struct {
	Kind  goToken.RejectionKind
	ID    goToken.MetricID
	Label string
}

const (
	// AuditDroppedName is the counter for events discarded by the audit dispatcher.
	AuditDroppedName = "gotoken_audit_dropped_total"
	AuditDroppedHelp = "Audit events dropped because the dispatcher buffer was full or closed."

	// RejectionsName is a single counter family with one series per kind.
	RejectionsName = "gotoken_rejections_total"
	RejectionsHelp = "Tokens rejected by Validate or ExtractSubject, by rejection kind."
	KindLabel      = "kind"
)

var CounterDefs = []CounterDef{
	{ID: goToken.MetricIssueSuccess, Name: "gotoken_issue_success_total", Help: "Tokens issued."},
	{ID: goToken.MetricIssueFailure, Name: "gotoken_issue_failure_total", Help: "Issuance attempts that failed."},
	{ID: goToken.MetricValidateSuccess, Name: "gotoken_validate_success_total", Help: "Tokens accepted by Validate."},
	{ID: goToken.MetricExtractSuccess, Name: "gotoken_extract_subject_success_total", Help: "Subjects extracted from verified tokens."},
}

// RejectionDefs follows goToken.RejectionKinds, so adding a kind adds a series.
var RejectionDefs = buildRejectionDefs()

func buildRejectionDefs() []RejectionDef {
	kinds := goToken.RejectionKinds()
	defs := make([]RejectionDef, 0, len(kinds))
	for _, kind := range kinds {
		id, ok := goToken.RejectionMetric(kind)
		if !ok {
			continue
		}
		defs = append(defs, RejectionDef{Kind: kind, ID: id, Label: kind.String()})
	}
	return defs
}

var HistogramDefs = []HistogramDef{
	{ID: goToken.MetricValidateLatency, Name: "gotoken_validate_latency_seconds", Help: "Validate latency histogram."},
}

// HistogramBounds are the upper bounds, in seconds, of the validate latency buckets.
var HistogramBounds = []string{
	"0.00001",
	"0.000025",
	"0.00005",
	"0.0001",
	"0.00025",
	"0.001",
	"0.005",
	"+Inf",
}

// HistogramBoundSuffix is HistogramBounds spelled for instrument names.
var HistogramBoundSuffix = []string{
	"10us",
	"25us",
	"50us",
	"100us",
	"250us",
	"1ms",
	"5ms",
	"inf",
}

func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
