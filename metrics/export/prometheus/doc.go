// Package prometheus renders goToken counters and the validate latency
// histogram in Prometheus text exposition format.
//
// Counter names are gotoken_*_total. Rejections form one family,
// gotoken_rejections_total{kind="..."}, with a series for every rejection
// kind. The histogram is gotoken_validate_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry; callers mount the Handler.
//   - Mutate engine state.
package prometheus
