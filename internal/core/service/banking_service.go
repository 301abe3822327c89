package service

import (
	"context"

	"github.com/payflex/banking-system/internal/core/domain"
	"github.com/payflex/banking-system/internal/core/ports"
)

// BankingService exposes account reads for the banking service binary.
type BankingService struct {
	accounts ports.AccountRepository
}

func NewBankingService(accounts ports.AccountRepository) *BankingService {
	return &BankingService{accounts: accounts}
}

// Accounts lists the user's accounts. No accounts is an empty slice, not an error.
func (s *BankingService) Accounts(ctx context.Context, userID string) ([]domain.Account, error) {
	return s.accounts.FindByUserID(ctx, userID)
}

// TransactionService exposes transaction-history reads.
type TransactionService struct {
	transactions ports.TransactionRepository
}

func NewTransactionService(transactions ports.TransactionRepository) *TransactionService {
	return &TransactionService{transactions: transactions}
}

// History lists the user's transactions, newest first.
func (s *TransactionService) History(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return s.transactions.FindByUserID(ctx, userID)
}

// Transaction fetches a single transaction, scoped to its owner.
func (s *TransactionService) Transaction(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	tx, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return tx, nil
}
