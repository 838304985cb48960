package goToken_test

import (
	"errors"
	"testing"
	"time"

	goToken "github.com/MrEthical07/goToken"
	"github.com/MrEthical07/goToken/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time guards for the exported surface consumers depend on.
var (
	_ func() *goToken.Builder                 = goToken.New
	_ func(...string) (goToken.Config, error) = goToken.LoadConfig
	_ func() goToken.Config                   = goToken.DefaultConfig
	_ func(error) goToken.RejectionKind       = goToken.KindOf
	_ func() []goToken.RejectionKind          = goToken.RejectionKinds
	_ func(*keys.SigningKey) keys.Provider    = keys.Static
	_ error                                   = &goToken.Rejection{}

	_ func(*goToken.Engine, string) (string, error)                     = (*goToken.Engine).Issue
	_ func(*goToken.Engine, goToken.Principal) (string, error)          = (*goToken.Engine).IssueFor
	_ func(*goToken.Engine, string, time.Time) (string, error)          = (*goToken.Engine).IssueAt
	_ func(*goToken.Engine, string) goToken.ValidationResult            = (*goToken.Engine).Validate
	_ func(*goToken.Engine, string, time.Time) goToken.ValidationResult = (*goToken.Engine).ValidateAt
	_ func(*goToken.Engine, string) (string, error)                     = (*goToken.Engine).ExtractSubject
	_ func(*goToken.Engine, string, time.Time) (string, error)          = (*goToken.Engine).ExtractSubjectAt
)

func TestRejectionKindsMapToDistinctSentinels(t *testing.T) {
	sentinels := map[goToken.RejectionKind]error{
		goToken.KindMalformed:            goToken.ErrMalformed,
		goToken.KindExpired:              goToken.ErrExpired,
		goToken.KindUnsupportedAlgorithm: goToken.ErrUnsupportedAlgorithm,
		goToken.KindInvalidArgument:      goToken.ErrInvalidArgument,
		goToken.KindSignatureMismatch:    goToken.ErrSignatureMismatch,
		goToken.KindNotYetValid:          goToken.ErrNotYetValid,
		goToken.KindInvalidClaims:        goToken.ErrInvalidClaims,
	}

	kinds := goToken.RejectionKinds()
	require.Len(t, kinds, len(sentinels))
	assert.NotContains(t, kinds, goToken.KindNone)

	for _, kind := range kinds {
		var err error = &goToken.Rejection{Kind: kind, Reason: "test"}
		assert.Equal(t, kind, goToken.KindOf(err))
		assert.ErrorIs(t, err, goToken.ErrTokenRejected)
		assert.ErrorIs(t, err, sentinels[kind], "kind %s", kind)

		for other, sentinel := range sentinels {
			if other != kind {
				assert.False(t, errors.Is(err, sentinel), "%s matches %s sentinel", kind, other)
			}
		}
		_, ok := goToken.RejectionMetric(kind)
		assert.True(t, ok, "kind %s has no counter", kind)
	}

	assert.Equal(t, goToken.KindNone, goToken.KindOf(errors.New("other")))
	assert.Equal(t, goToken.KindNone, goToken.KindOf(nil))
	assert.False(t, errors.Is(goToken.ErrEngineNotReady, goToken.ErrTokenRejected))
	assert.ErrorIs(t, goToken.ErrInvalidKeyConfiguration, keys.ErrInvalidKeyConfiguration)
}
