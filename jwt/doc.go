// Package jwt issues and verifies compact HMAC-signed access tokens and
// classifies every rejected token into a closed set of [Kind] values.
//
// # Claims
//
// Tokens carry the registered claims sub, iat and exp (plus iss/aud when
// configured). Timestamps are NumericDate seconds; issuance truncates now to the
// second, so exp is always iat + lifetime.
//
// # Validity window
//
// A token is accepted iff iat <= now < exp, widened by the configured leeway.
// At exactly now == exp it is rejected as [KindExpired].
//
// # What this package must NOT do
//
//   - Return claims from a token whose signature did not verify.
//   - Surface raw parser errors; every failure becomes a [*Rejection].
//   - Include the presented token or key material in any error.
package jwt
