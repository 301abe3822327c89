package ports

import (
	"context"

	"github.com/payflex/banking-system/internal/core/domain"
)

// RegisterInput carries the validated registration payload.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Password    string
	Gender      string
	DateOfBirth string
	Address     domain.Address
}

// AuthService implements the authentication and session lifecycle.
type AuthService interface {
	RequestVerificationCode(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, email, code string) error
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.TokenPair, *domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
}

// IdentityResolver turns a bearer access token into a trusted identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, bearerToken string) (*domain.User, error)
}
