package domain

import "errors"

// Authentication errors. Terminal for the request, never retried server-side.
var (
	ErrNoToken             = errors.New("no token")
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUpstreamVerify      = errors.New("unable to verify user")
	ErrRefreshTokenMissing = errors.New("refresh token missing")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// Registration and verification errors.
var (
	ErrUserExists           = errors.New("user already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrVerificationRequired = errors.New("email verification required, request a new code")
	ErrInvalidCode          = errors.New("invalid or expired code")
)

// ErrCacheMiss signals an absent or expired cache entry. It is a normal
// outcome; callers fall back to the durable store.
var ErrCacheMiss = errors.New("cache miss")

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrForbidden           = errors.New("access forbidden")
)
