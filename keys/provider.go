package keys

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// MinKeySize is the smallest decoded secret accepted (HS256).
	MinKeySize = 32
	hs384Size  = 48
	hs512Size  = 64
)

// ErrInvalidKeyConfiguration reports a secret that cannot become a signing key.
// It is a startup-class error.
var ErrInvalidKeyConfiguration = errors.New("invalid key configuration")

// SigningKey is resolved HMAC key material bound to the method its size implies.
//
// SigningKey values are immutable after resolution and safe for concurrent use.
type SigningKey struct {
	secret []byte
	method *jwt.SigningMethodHMAC
}

// Method returns the HMAC method selected for this key.
func (k *SigningKey) Method() jwt.SigningMethod {
	return k.method
}

// Alg returns the JOSE algorithm name ("HS256", "HS384" or "HS512").
func (k *SigningKey) Alg() string {
	return k.method.Alg()
}

// Size returns the decoded key length in bytes.
func (k *SigningKey) Size() int {
	return len(k.secret)
}

// Material returns the raw key bytes for signing and verification.
// Callers must not modify the returned slice.
func (k *SigningKey) Material() []byte {
	return k.secret
}

func (k *SigningKey) String() string {
	if k == nil {
		return "SigningKey(nil)"
	}
	return fmt.Sprintf("SigningKey(%s, %d bytes, redacted)", k.method.Alg(), len(k.secret))
}

func (k *SigningKey) GoString() string {
	return k.String()
}

// LogValue keeps key material out of structured logs.
func (k *SigningKey) LogValue() slog.Value {
	if k == nil {
		return slog.StringValue("nil")
	}
	return slog.GroupValue(
		slog.String("alg", k.method.Alg()),
		slog.Int("bytes", len(k.secret)),
	)
}

// MethodForKeySize returns the strongest HMAC method the key length supports.
func MethodForKeySize(n int) (*jwt.SigningMethodHMAC, error) {
	switch {
	case n >= hs512Size:
		return jwt.SigningMethodHS512, nil
	case n >= hs384Size:
		return jwt.SigningMethodHS384, nil
	case n >= MinKeySize:
		return jwt.SigningMethodHS256, nil
	default:
		return nil, fmt.Errorf("%w: secret is %d bytes, need at least %d", ErrInvalidKeyConfiguration, n, MinKeySize)
	}
}

// NewSigningKey builds a key from raw bytes. The input is copied.
func NewSigningKey(raw []byte) (*SigningKey, error) {
	method, err := MethodForKeySize(len(raw))
	if err != nil {
		return nil, err
	}
	secret := make([]byte, len(raw))
	copy(secret, raw)
	return &SigningKey{secret: secret, method: method}, nil
}

// Resolve decodes a base64 secret (standard alphabet, padded or not) into a key.
func Resolve(encoded string) (*SigningKey, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, fmt.Errorf("%w: secret is empty", ErrInvalidKeyConfiguration)
	}

	enc := base64.StdEncoding
	if !strings.HasSuffix(encoded, "=") && len(encoded)%4 != 0 {
		enc = base64.RawStdEncoding
	}
	raw, err := enc.DecodeString(encoded)
	if err != nil {
		// The decoder error carries an offset only, never secret bytes.
		return nil, fmt.Errorf("%w: secret is not valid base64: %v", ErrInvalidKeyConfiguration, err)
	}
	return NewSigningKey(raw)
}

// Provider yields the process-wide signing key.
type Provider interface {
	ResolveKey() (*SigningKey, error)
}

type base64Provider struct {
	resolve func() (*SigningKey, error)
}

// NewBase64Provider returns a Provider that decodes encoded on first use and
// returns the same key (or the same error) on every later call.
func NewBase64Provider(encoded string) Provider {
	return &base64Provider{
		resolve: sync.OnceValues(func() (*SigningKey, error) {
			return Resolve(encoded)
		}),
	}
}

func (p *base64Provider) ResolveKey() (*SigningKey, error) {
	return p.resolve()
}

type staticProvider struct {
	key *SigningKey
}

// Static wraps an already resolved key.
func Static(key *SigningKey) Provider {
	return staticProvider{key: key}
}

func (p staticProvider) ResolveKey() (*SigningKey, error) {
	if p.key == nil {
		return nil, fmt.Errorf("%w: nil key", ErrInvalidKeyConfiguration)
	}
	return p.key, nil
}
