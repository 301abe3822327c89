package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/payflex/banking-system/internal/core/domain"
	"github.com/payflex/banking-system/internal/core/ports"
)

// IdentityResolver validates a bearer access token and resolves it to a
// trusted identity: signature and expiry first, then the cache, then the
// durable store. The cache is never authoritative — any cache failure is
// treated as a miss.
type IdentityResolver struct {
	issuer   *TokenIssuer
	cache    ports.IdentityCache
	users    ports.UserRepository
	cacheTTL time.Duration
	log      zerolog.Logger
}

func NewIdentityResolver(issuer *TokenIssuer, cache ports.IdentityCache, users ports.UserRepository, log zerolog.Logger) *IdentityResolver {
	return &IdentityResolver{
		issuer:   issuer,
		cache:    cache,
		users:    users,
		cacheTTL: identityCacheTTL,
		log:      log,
	}
}

// Resolve returns the identity behind the token or one of the authentication
// sentinels: domain.ErrNoToken, domain.ErrInvalidToken, domain.ErrUserNotFound.
func (r *IdentityResolver) Resolve(ctx context.Context, bearerToken string) (*domain.User, error) {
	if bearerToken == "" {
		return nil, domain.ErrNoToken
	}

	userID, err := r.issuer.ParseUserID(bearerToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	if user, err := r.cache.Get(ctx, userID); err == nil {
		return user, nil
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		r.log.Warn().Err(err).Str("user_id", userID).Msg("identity cache read failed")
	}

	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Repopulate so the next resolve within the TTL is a hit. Losing a racing
	// write is fine: both writers hold the same snapshot.
	if err := r.cache.Set(ctx, user, r.cacheTTL); err != nil {
		r.log.Warn().Err(err).Str("user_id", userID).Msg("identity cache write failed")
	}

	return user, nil
}
