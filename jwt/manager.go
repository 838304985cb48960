package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrEthical07/goToken/keys"
	"github.com/golang-jwt/jwt/v5"
)

const maxLeeway = 2 * time.Minute

var (
	// ErrInvalidLifetime reports a token lifetime below NumericDate resolution.
	ErrInvalidLifetime = errors.New("token lifetime must be at least one second")
	// ErrInvalidLeeway reports a negative or oversized clock leeway.
	ErrInvalidLeeway = errors.New("leeway must be between 0 and 2m")
	// ErrEmptySubject is returned by Issue for a blank subject.
	ErrEmptySubject = errors.New("subject must not be empty")
)

// Config holds the token policy. It is fixed for the lifetime of a Manager.
type Config struct {
	Lifetime time.Duration
	Issuer   string
	Audience string
	Leeway   time.Duration
}

// Manager issues and verifies tokens with one resolved signing key.
//
// Manager is immutable after NewManager and safe for concurrent use.
type Manager struct {
	config Config
	key    *keys.SigningKey
}

// NewManager validates cfg and resolves the signing key once. Both failures are
// configuration errors.
func NewManager(cfg Config, provider keys.Provider) (*Manager, error) {
	if cfg.Lifetime < time.Second {
		return nil, ErrInvalidLifetime
	}
	if cfg.Leeway < 0 || cfg.Leeway > maxLeeway {
		return nil, ErrInvalidLeeway
	}
	if provider == nil {
		return nil, fmt.Errorf("%w: no key provider", keys.ErrInvalidKeyConfiguration)
	}
	key, err := provider.ResolveKey()
	if err != nil {
		return nil, err
	}
	cfg.Issuer = strings.TrimSpace(cfg.Issuer)
	cfg.Audience = strings.TrimSpace(cfg.Audience)

	return &Manager{config: cfg, key: key}, nil
}

// Alg returns the algorithm tokens are signed with.
func (m *Manager) Alg() string {
	return m.key.Alg()
}

// Lifetime returns the configured token lifetime.
func (m *Manager) Lifetime() time.Duration {
	return m.config.Lifetime
}

// Issue signs a token for subject with iat = now (whole seconds) and
// exp = iat + lifetime.
func (m *Manager) Issue(subject string, now time.Time) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", ErrEmptySubject
	}

	issuedAt := now.Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    m.config.Issuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.config.Lifetime)),
	}
	if m.config.Audience != "" {
		claims.Audience = jwt.ClaimStrings{m.config.Audience}
	}

	signed, err := jwt.NewWithClaims(m.key.Method(), claims).SignedString(m.key.Material())
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %v", keys.ErrInvalidKeyConfiguration, err)
	}
	return signed, nil
}

// Verify checks structure, signature and validity window of token at now.
// It never returns claims.
func (m *Manager) Verify(token string, now time.Time) Result {
	_, res := m.verify(token, now)
	return res
}

// Subject verifies token exactly as Verify does and returns its sub claim.
// A rejected token yields a *Rejection and no subject.
func (m *Manager) Subject(token string, now time.Time) (string, error) {
	claims, res := m.verify(token, now)
	if !res.Valid() {
		return "", res.Err()
	}
	return claims.Subject, nil
}

func (m *Manager) verify(token string, now time.Time) (*jwt.RegisteredClaims, Result) {
	alg := m.key.Alg()
	if res := inspect(token, alg); !res.Valid() {
		return nil, res
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{alg}),
		jwt.WithStrictDecoding(),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}
	if m.config.Audience != "" {
		options = append(options, jwt.WithAudience(m.config.Audience))
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.NewParser(options...).ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != alg {
			return nil, errors.New("unexpected signing algorithm")
		}
		return m.key.Material(), nil
	})
	if err != nil {
		return nil, classify(err)
	}
	if !parsed.Valid {
		return nil, reject(KindSignatureMismatch, "token did not verify")
	}
	if claims.Subject == "" {
		return nil, reject(KindInvalidClaims, "subject claim is missing")
	}

	return claims, Result{}
}

// classify maps parser errors onto the closed Kind set. Structural problems
// were already caught by inspect, so a malformed error here comes from claim
// decoding.
func classify(err error) Result {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return reject(KindSignatureMismatch, "signature does not verify against the signing key")
	case errors.Is(err, jwt.ErrTokenExpired):
		return reject(KindExpired, "token is expired")
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return reject(KindNotYetValid, "token is not valid yet")
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return reject(KindUnsupportedAlgorithm, "token cannot be verified with the configured algorithm")
	case errors.Is(err, jwt.ErrTokenMalformed):
		return reject(KindInvalidArgument, "claims could not be decoded")
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return reject(KindInvalidClaims, "required claim is missing")
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return reject(KindInvalidClaims, "issuer is not accepted")
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return reject(KindInvalidClaims, "audience is not accepted")
	case errors.Is(err, jwt.ErrTokenInvalidClaims):
		return reject(KindInvalidClaims, "claims are not valid")
	default:
		return reject(KindMalformed, "token could not be parsed")
	}
}
