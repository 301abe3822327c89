package ports

import (
	"context"

	"github.com/payflex/banking-system/internal/core/domain"
)

// AccountRepository reads customer accounts from the durable store.
type AccountRepository interface {
	FindByUserID(ctx context.Context, userID string) ([]domain.Account, error)
}

// TransactionRepository reads transaction history from the durable store.
type TransactionRepository interface {
	FindByUserID(ctx context.Context, userID string) ([]domain.Transaction, error)
	FindByID(ctx context.Context, id string) (*domain.Transaction, error)
}

type BankingService interface {
	Accounts(ctx context.Context, userID string) ([]domain.Account, error)
}

type TransactionService interface {
	History(ctx context.Context, userID string) ([]domain.Transaction, error)
	Transaction(ctx context.Context, userID, id string) (*domain.Transaction, error)
}
