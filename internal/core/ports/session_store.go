package ports

import (
	"context"
	"time"

	"github.com/payflex/banking-system/internal/core/domain"
)

// RefreshTokenRepository persists refresh tokens, the sole durable evidence of
// a session. Implementations must keep at most one live token per user.
type RefreshTokenRepository interface {
	// Save removes any existing tokens for userID, then inserts the new one.
	Save(ctx context.Context, token, userID string, expiresAt time.Time) error
	// FindUserID resolves a token to its owner. Expired rows are reported as
	// domain.ErrInvalidRefreshToken even if not yet swept.
	FindUserID(ctx context.Context, token string) (string, error)
	// Consume atomically claims and deletes the token, returning its owner.
	// Of two concurrent calls with the same token, exactly one succeeds; the
	// other observes domain.ErrInvalidRefreshToken.
	Consume(ctx context.Context, token string) (string, error)
	// Delete removes the token if present. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error
}

// IdentityCache holds denormalized identity snapshots with a bounded TTL.
// It is an expendable optimization: a miss or an unreachable cache must route
// callers to the durable store, never fail the request.
type IdentityCache interface {
	// Get returns the cached snapshot or domain.ErrCacheMiss.
	Get(ctx context.Context, userID string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User, ttl time.Duration) error
	// Invalidate evicts the snapshot. Used when identity attributes change.
	Invalidate(ctx context.Context, userID string) error
}

// VerificationCodeRepository stores one-time email verification codes.
type VerificationCodeRepository interface {
	// Replace deletes any existing codes for the email and inserts the new one.
	Replace(ctx context.Context, code *domain.VerificationCode) error
	Find(ctx context.Context, email string) (*domain.VerificationCode, error)
	MarkVerified(ctx context.Context, email string) error
	Delete(ctx context.Context, email string) error
}
