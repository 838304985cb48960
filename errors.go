package goToken

import (
	"errors"

	"github.com/MrEthical07/goToken/jwt"
	"github.com/MrEthical07/goToken/keys"
)

var (
	// ErrInvalidConfig is returned by Config.Validate and LoadConfig.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidKeyConfiguration is a startup-class error: the secret is missing, not base64 or too short.
	ErrInvalidKeyConfiguration = keys.ErrInvalidKeyConfiguration
	// ErrInvalidLifetime is returned when the token lifetime is below one second.
	ErrInvalidLifetime = jwt.ErrInvalidLifetime
	// ErrEmptySubject is returned by Issue for a blank subject.
	ErrEmptySubject = jwt.ErrEmptySubject
	// ErrEngineNotReady is returned by methods called on a nil Engine.
	ErrEngineNotReady = errors.New("engine not initialized")

	// ErrTokenRejected matches every rejection returned by ExtractSubject.
	ErrTokenRejected        = jwt.ErrRejected
	ErrMalformed            = jwt.ErrMalformed
	ErrExpired              = jwt.ErrExpired
	ErrUnsupportedAlgorithm = jwt.ErrUnsupportedAlgorithm
	ErrInvalidArgument      = jwt.ErrInvalidArgument
	ErrSignatureMismatch    = jwt.ErrSignatureMismatch
	ErrNotYetValid          = jwt.ErrNotYetValid
	ErrInvalidClaims        = jwt.ErrInvalidClaims
)
