package domain

import "time"

// RefreshToken is the store-backed, single-use credential behind a session.
// At most one live token exists per user; rotation replaces it atomically.
type RefreshToken struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the token is past its expiry at the given instant.
// A row may outlive its expiry until the store's sweep runs, so callers must
// check this rather than trust row presence.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// VerificationCode is a one-time 4-digit email verification code.
// Issuing a new code for an email invalidates any prior one.
type VerificationCode struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	Verified  bool      `json:"verified"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the code is past its expiry at the given instant.
func (v *VerificationCode) Expired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}

// TokenPair carries a freshly issued access/refresh token pair.
// The access token is self-contained; the refresh token must be persisted by
// the caller before it is handed to the client.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}
