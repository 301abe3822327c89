package ports

import (
	"context"

	"github.com/payflex/banking-system/internal/core/domain"
)

// UserRepository defines durable persistence for customer identities.
// The durable store is ground truth; caches derive from it.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
