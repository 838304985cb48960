// Package goToken issues and validates stateless, HMAC-signed access tokens.
//
// An [Engine] is built once at startup through [Builder.Build]. Build resolves
// the base64 signing secret and fails loudly on configuration errors; after that
// issuance cannot fail except for a blank subject, and validation never returns
// a raw parser error. Every rejected token is classified into a [RejectionKind],
// logged once and counted per kind. With auditing enabled it also reaches the
// audit sink.
//
// Engine methods are safe to call from multiple goroutines. Nothing on the
// issue/validate path performs I/O or takes a lock; audit delivery happens on
// a separate goroutine behind a bounded buffer.
//
// # Architecture boundaries
//
// goToken is the public surface. Key resolution lives in keys, token encoding
// and classification in jwt, audit buffering under internal/.
//
// # What this package must NOT do
//
//   - Expose the presented token or the signing secret.
//   - Look up principals, verify passwords or route HTTP requests.
//   - Keep per-token state; there is no revocation list.
package goToken
