// Package audit delivers token lifecycle events to pluggable sinks.
//
// # Components
//
//   - [Sink]: interface for event consumers (channel, JSON writer, Redis stream, no-op).
//   - [Dispatcher]: buffered async relay with drop-if-full / block-if-full semantics.
//   - [Event]: structured record: id, timestamp, type, subject, kind, metadata.
//
// # Architecture boundaries
//
// This package owns event buffering and sink delivery. It does NOT decide which
// events to emit; the Engine does.
//
// # What this package must NOT do
//
//   - Filter or suppress events based on business logic.
//   - Import goToken or any sibling package.
//   - Accept raw tokens or key material in events.
package audit
