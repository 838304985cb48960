// Package keys resolves the configured base64 signing secret into an HMAC
// signing key.
//
// # Algorithm selection
//
// The HMAC variant is a function of the decoded key length and nothing else,
// see [MethodForKeySize]. A 64-byte secret always signs with HS512, a 48-byte
// secret with HS384, a 32-byte secret with HS256. Secrets shorter than 32 bytes
// are rejected with [ErrInvalidKeyConfiguration].
//
// # What this package must NOT do
//
//   - Re-decode the secret per call once a [Provider] has resolved it.
//   - Print, log or otherwise expose key material.
package keys
