package goToken

import "github.com/MrEthical07/goToken/jwt"

// Principal is the authenticated identity supplied by the caller's
// authentication step. Only Username is read, once, at issuance.
type Principal interface {
	Username() string
}

// ValidationResult is Valid when Kind is KindNone; otherwise Kind says why the
// token was rejected and Reason gives a fixed, non-sensitive description.
type ValidationResult = jwt.Result

// RejectionKind is the closed set of reasons a token can be rejected for.
type RejectionKind = jwt.Kind

// Rejection is the error type returned by ExtractSubject.
type Rejection = jwt.Rejection

const (
	KindNone                 = jwt.KindNone
	KindMalformed            = jwt.KindMalformed
	KindExpired              = jwt.KindExpired
	KindUnsupportedAlgorithm = jwt.KindUnsupportedAlgorithm
	KindInvalidArgument      = jwt.KindInvalidArgument
	KindSignatureMismatch    = jwt.KindSignatureMismatch
	KindNotYetValid          = jwt.KindNotYetValid
	KindInvalidClaims        = jwt.KindInvalidClaims
)

// RejectionKinds lists every kind a rejected token can carry, KindNone
// excluded, in a stable order.
func RejectionKinds() []RejectionKind {
	return jwt.Kinds()
}

// KindOf returns the rejection kind carried by err, or KindNone when err is
// not a rejection.
func KindOf(err error) RejectionKind {
	return jwt.KindOf(err)
}
