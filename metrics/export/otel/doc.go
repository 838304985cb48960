// Package otel publishes goToken metrics through OpenTelemetry observable
// instruments.
//
// [NewOTelExporter] registers one Int64ObservableCounter per counter and one
// Int64ObservableGauge per histogram bucket. Rejections are a single counter,
// gotoken_rejections_total, observed once per rejection kind with a "kind"
// attribute. A single callback reads [goToken.Engine.MetricsSnapshot] on each
// collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider; callers supply the Meter.
//   - Mutate engine state.
package otel
