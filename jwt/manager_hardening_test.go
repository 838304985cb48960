package jwt

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	gjwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signHS(t *testing.T, method gjwt.SigningMethod, claims gjwt.Claims, secret []byte, header map[string]any) string {
	t.Helper()
	tok := gjwt.NewWithClaims(method, claims)
	for k, v := range header {
		tok.Header[k] = v
	}
	token, err := tok.SignedString(secret)
	require.NoError(t, err)
	return token
}

func validClaims() gjwt.RegisteredClaims {
	return gjwt.RegisteredClaims{
		Subject:   "alice",
		IssuedAt:  gjwt.NewNumericDate(epoch),
		ExpiresAt: gjwt.NewNumericDate(epoch.Add(time.Hour)),
	}
}

func TestVerifyRejectsAsymmetricAlgorithms(t *testing.T) {
	m := newTestManager(t, Config{}, testKey(t, 0x11, 32))

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	token, err := gjwt.NewWithClaims(gjwt.SigningMethodES256, validClaims()).SignedString(priv)
	require.NoError(t, err)

	res := m.Verify(token, epoch)
	assert.Equal(t, KindUnsupportedAlgorithm, res.Kind)
}

func TestVerifyAlgorithmHeaderIsExact(t *testing.T) {
	key := testKey(t, 0x12, 32)
	m := newTestManager(t, Config{}, key)
	payload := segment(`{"sub":"alice","iat":1772366400,"exp":1772370000}`)

	for _, header := range []string{
		`{"alg":"hs256","typ":"JWT"}`,
		`{"alg":"HS256 ","typ":"JWT"}`,
		`{"alg":256,"typ":"JWT"}`,
		`{"alg":["HS256"],"typ":"JWT"}`,
	} {
		signingInput := segment(header) + "." + payload
		sig, err := gjwt.SigningMethodHS256.Sign(signingInput, key.Material())
		require.NoError(t, err)
		token := signingInput + "." + base64.RawURLEncoding.EncodeToString(sig)

		assert.Equal(t, KindUnsupportedAlgorithm, m.Verify(token, epoch).Kind, header)
	}
}

func TestVerifyIgnoresUnknownHeadersAndClaims(t *testing.T) {
	key := testKey(t, 0x13, 32)
	m := newTestManager(t, Config{}, key)

	type extended struct {
		Role string `json:"role"`
		gjwt.RegisteredClaims
	}
	token := signHS(t, gjwt.SigningMethodHS256, extended{Role: "admin", RegisteredClaims: validClaims()}, key.Material(), map[string]any{"kid": "k2"})

	sub, err := m.Subject(token, epoch)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)
}

func TestVerifyNotBeforeHonoursLeeway(t *testing.T) {
	key := testKey(t, 0x14, 32)
	strict := newTestManager(t, Config{}, key)
	lenient := newTestManager(t, Config{Leeway: 30 * time.Second}, key)

	claims := validClaims()
	claims.NotBefore = gjwt.NewNumericDate(epoch.Add(15 * time.Second))
	token := signHS(t, gjwt.SigningMethodHS256, claims, key.Material(), nil)

	assert.Equal(t, KindNotYetValid, strict.Verify(token, epoch).Kind)
	assert.True(t, lenient.Verify(token, epoch).Valid())
	assert.True(t, strict.Verify(token, epoch.Add(15*time.Second)).Valid())
}

func TestVerifyIssuerAudienceAndLeeway(t *testing.T) {
	key := testKey(t, 0x15, 64)
	m := newTestManager(t, Config{Issuer: "gotoken", Audience: "api", Leeway: 30 * time.Second}, key)

	issued, err := m.Issue("alice", epoch)
	require.NoError(t, err)
	assert.True(t, m.Verify(issued, epoch).Valid())

	base := func() gjwt.RegisteredClaims {
		c := validClaims()
		c.Issuer = "gotoken"
		c.Audience = gjwt.ClaimStrings{"api"}
		return c
	}

	withinLeeway := base()
	withinLeeway.IssuedAt = gjwt.NewNumericDate(epoch.Add(-time.Minute))
	withinLeeway.ExpiresAt = gjwt.NewNumericDate(epoch.Add(-15 * time.Second))
	assert.True(t, m.Verify(signHS(t, gjwt.SigningMethodHS512, withinLeeway, key.Material(), nil), epoch).Valid())

	expired := base()
	expired.IssuedAt = gjwt.NewNumericDate(epoch.Add(-3 * time.Minute))
	expired.ExpiresAt = gjwt.NewNumericDate(epoch.Add(-2 * time.Minute))
	assert.Equal(t, KindExpired, m.Verify(signHS(t, gjwt.SigningMethodHS512, expired, key.Material(), nil), epoch).Kind)

	multiAudience := base()
	multiAudience.Audience = gjwt.ClaimStrings{"web", "api"}
	assert.True(t, m.Verify(signHS(t, gjwt.SigningMethodHS512, multiAudience, key.Material(), nil), epoch).Valid())

	noIssuer := base()
	noIssuer.Issuer = ""
	assert.Equal(t, KindInvalidClaims, m.Verify(signHS(t, gjwt.SigningMethodHS512, noIssuer, key.Material(), nil), epoch).Kind)
}

func TestExpiredTokenWithBadSignatureIsSignatureMismatch(t *testing.T) {
	key := testKey(t, 0x16, 32)
	other := testKey(t, 0x17, 32)
	m := newTestManager(t, Config{}, key)

	claims := validClaims()
	claims.ExpiresAt = gjwt.NewNumericDate(epoch.Add(-time.Hour))
	claims.IssuedAt = gjwt.NewNumericDate(epoch.Add(-2 * time.Hour))
	token := signHS(t, gjwt.SigningMethodHS256, claims, other.Material(), nil)

	assert.Equal(t, KindSignatureMismatch, m.Verify(token, epoch).Kind)
}
