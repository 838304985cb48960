package jwt

import "errors"

// Kind classifies why a presented token was rejected. KindNone means valid.
type Kind uint8

const (
	KindNone Kind = iota
	// KindMalformed: the token is not three well-formed base64url segments.
	KindMalformed
	// KindExpired: the signature verified but now >= exp.
	KindExpired
	// KindUnsupportedAlgorithm: the header declares no algorithm, none, or a non-HMAC one.
	KindUnsupportedAlgorithm
	// KindInvalidArgument: the token is empty or its payload is not a claims object.
	KindInvalidArgument
	// KindSignatureMismatch: the structure is fine but the signature does not verify,
	// including tokens signed with an HMAC key of another size.
	KindSignatureMismatch
	// KindNotYetValid: iat or nbf lies in the future.
	KindNotYetValid
	// KindInvalidClaims: a required claim is missing or iss/aud do not match.
	KindInvalidClaims
	kindCount
)

var (
	// ErrRejected matches every rejection regardless of kind.
	ErrRejected             = errors.New("token rejected")
	ErrMalformed            = errors.New("malformed token")
	ErrExpired              = errors.New("token expired")
	ErrUnsupportedAlgorithm = errors.New("unsupported token algorithm")
	ErrInvalidArgument      = errors.New("invalid token argument")
	ErrSignatureMismatch    = errors.New("token signature mismatch")
	ErrNotYetValid          = errors.New("token not yet valid")
	ErrInvalidClaims        = errors.New("invalid token claims")
)

var kindNames = [kindCount]string{
	KindNone:                 "none",
	KindMalformed:            "malformed",
	KindExpired:              "expired",
	KindUnsupportedAlgorithm: "unsupported_algorithm",
	KindInvalidArgument:      "invalid_argument",
	KindSignatureMismatch:    "signature_mismatch",
	KindNotYetValid:          "not_yet_valid",
	KindInvalidClaims:        "invalid_claims",
}

var kindErrors = [kindCount]error{
	KindMalformed:            ErrMalformed,
	KindExpired:              ErrExpired,
	KindUnsupportedAlgorithm: ErrUnsupportedAlgorithm,
	KindInvalidArgument:      ErrInvalidArgument,
	KindSignatureMismatch:    ErrSignatureMismatch,
	KindNotYetValid:          ErrNotYetValid,
	KindInvalidClaims:        ErrInvalidClaims,
}

func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Sentinel returns the package error matching k, or nil for KindNone.
func (k Kind) Sentinel() error {
	if k >= kindCount {
		return ErrRejected
	}
	return kindErrors[k]
}

// Kinds lists every rejection kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindMalformed; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Rejection is the error returned for a token that failed verification.
// Reason is a fixed, non-sensitive description.
type Rejection struct {
	Kind   Kind
	Reason string
}

func (r *Rejection) Error() string {
	if r.Reason == "" {
		return "token rejected: " + r.Kind.String()
	}
	return "token rejected: " + r.Kind.String() + ": " + r.Reason
}

// Is matches ErrRejected and the sentinel of the rejection's kind.
func (r *Rejection) Is(target error) bool {
	if target == ErrRejected {
		return true
	}
	sentinel := r.Kind.Sentinel()
	return sentinel != nil && target == sentinel
}

// KindOf extracts the rejection kind from err. It returns KindNone for nil and
// for errors that are not rejections.
func KindOf(err error) Kind {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Kind
	}
	return KindNone
}

// Result is the outcome of a single verification pass, tagged by Kind.
type Result struct {
	Kind   Kind
	Reason string
}

// Valid reports whether the token was accepted.
func (r Result) Valid() bool {
	return r.Kind == KindNone
}

// Err returns nil for a valid result and a *Rejection otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &Rejection{Kind: r.Kind, Reason: r.Reason}
}

func reject(kind Kind, reason string) Result {
	return Result{Kind: kind, Reason: reason}
}
