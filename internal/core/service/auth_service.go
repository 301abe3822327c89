package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/payflex/banking-system/internal/core/domain"
	"github.com/payflex/banking-system/internal/core/ports"
)

const (
	verificationCodeTTL = 5 * time.Minute
	identityCacheTTL    = time.Hour
)

// AuthService implements the authentication and session lifecycle: email
// verification, registration, login, refresh rotation, logout, password reset.
type AuthService struct {
	users   ports.UserRepository
	tokens  ports.RefreshTokenRepository
	codes   ports.VerificationCodeRepository
	cache   ports.IdentityCache
	issuer  *TokenIssuer
	mail    ports.MailDispatcher
	log     zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	tokens ports.RefreshTokenRepository,
	codes ports.VerificationCodeRepository,
	cache ports.IdentityCache,
	issuer *TokenIssuer,
	mail ports.MailDispatcher,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		codes:  codes,
		cache:  cache,
		issuer: issuer,
		mail:   mail,
		log:    log,
	}
}

// RequestVerificationCode issues a fresh 4-digit code for the email, replacing
// any prior code, and queues it for delivery. Emails already bound to an
// account are rejected.
func (s *AuthService) RequestVerificationCode(ctx context.Context, email string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	code, err := fourDigitCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	now := time.Now().UTC()
	vc := &domain.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(verificationCodeTTL),
		CreatedAt: now,
	}
	if err := s.codes.Replace(ctx, vc); err != nil {
		return err
	}

	s.mail.Enqueue(ports.Email{
		To:      email,
		Kind:    ports.EmailOTP,
		Subject: "Your Payflex verification code",
		Body:    fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code),
	})

	s.log.Info().Str("email", email).Msg("verification code issued")
	return nil
}

// VerifyEmail checks the submitted code and marks the email verified.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	vc, err := s.codes.Find(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCode) {
			return domain.ErrInvalidCode
		}
		return err
	}
	if vc.Code != code || vc.Expired(time.Now().UTC()) {
		return domain.ErrInvalidCode
	}
	if err := s.codes.MarkVerified(ctx, email); err != nil {
		return err
	}
	s.log.Info().Str("email", email).Msg("email verified")
	return nil
}

// Register creates the identity once the email has completed verification.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	vc, err := s.codes.Find(ctx, in.Email)
	if err != nil || !vc.Verified {
		return nil, domain.ErrVerificationRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	dob, _ := time.Parse("02-01-2006", in.DateOfBirth)

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		PhoneNumber:   in.PhoneNumber,
		PasswordHash:  string(hash),
		Role:          domain.RoleUser,
		Gender:        in.Gender,
		DateOfBirth:   dob,
		Address:       in.Address,
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	// The code served its purpose; sweep it so it cannot gate another signup.
	if err := s.codes.Delete(ctx, in.Email); err != nil {
		s.log.Warn().Err(err).Str("email", in.Email).Msg("verification code cleanup failed")
	}

	s.mail.Enqueue(ports.Email{
		To:      created.Email,
		Kind:    ports.EmailWelcome,
		Subject: "Welcome to Payflex",
		Body:    fmt.Sprintf("Hi %s, your Payflex account is ready.", created.FirstName),
	})

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies credentials, issues a token pair, persists the refresh token
// (replacing any live one) and warms the identity cache.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.TokenPair, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuer.Pair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.tokens.Save(ctx, pair.RefreshToken, user.ID, pair.RefreshExpiresAt); err != nil {
		return nil, nil, err
	}

	// Best effort: a cold cache only costs the first resolve a store read.
	if err := s.cache.Set(ctx, user, identityCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("identity cache write failed")
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return pair, user, nil
}

// Refresh redeems a refresh token for a new pair, rotating the stored token.
// The Consume call is the atomic claim: of two concurrent redemptions of the
// same token exactly one reaches the issue step, the other fails invalid.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrRefreshTokenMissing
	}

	userID, err := s.tokens.Consume(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	pair, err := s.issuer.Pair(userID)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, pair.RefreshToken, userID, pair.RefreshExpiresAt); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Msg("access token refreshed")
	return pair, nil
}

// Logout revokes the session: the refresh token row and the cached snapshot.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return domain.ErrRefreshTokenMissing
	}
	userID, err := s.tokens.Consume(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRefreshToken) {
			// Already revoked or expired; logout is idempotent.
			return nil
		}
		return err
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("identity cache eviction failed")
	}
	s.log.Info().Str("user_id", userID).Msg("user logged out")
	return nil
}

// ResetPassword replaces the credential hash and synchronously evicts the
// cached snapshot so stale identity data cannot outlive the change.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("identity cache eviction failed")
	}
	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

// fourDigitCode returns a code in [1000, 9999].
func fourDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
