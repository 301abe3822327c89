package domain

import "time"

// AccountType enumerates the kinds of accounts a customer can hold.
type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
)

// Account is a customer bank account.
type Account struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	AccountNumber string      `json:"account_number"`
	Type          AccountType `json:"type"`
	Balance       int64       `json:"balance"` // minor units
	Currency      string      `json:"currency"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
