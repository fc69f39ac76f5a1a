// Package account holds the customer account aggregate. The balance is only
// ever mutated by the transaction engine, the loan engine, or an admin
// override; request handlers never write it directly.
package account

import (
	"time"

	"github.com/goldenbridge/bankapi/pkg/domain"
	"github.com/goldenbridge/bankapi/pkg/domain/money"
	"github.com/google/uuid"
)

// Status is the approval state of an account.
type Status string

const (
	// StatusPending is the state of a freshly registered account awaiting
	// admin approval.
	StatusPending Status = "pending"
	// StatusApproved is the state of an account cleared for banking.
	StatusApproved Status = "approved"
)

// Account represents a customer record.
//
// Invariants:
//   - Balance starts at zero and is a fixed-point value in cents.
//   - A pending account cannot authenticate.
//   - A frozen account cannot create transactions or loan applications but
//     remains readable.
type Account struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	PhoneNumber  string
	DateOfBirth  string
	Address      string
	PasswordHash string
	Balance      money.Money
	Status       Status
	IsFrozen     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New creates a pending account with a zero balance, ready for registration.
func New(fullName, email, phoneNumber, dateOfBirth, passwordHash string) *Account {
	return &Account{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		PhoneNumber:  phoneNumber,
		DateOfBirth:  dateOfBirth,
		PasswordHash: passwordHash,
		Balance:      money.Zero(),
		Status:       StatusPending,
		CreatedAt:    time.Now(),
	}
}

// IsApproved reports whether the account has been cleared by an admin.
func (a *Account) IsApproved() bool {
	return a.Status == StatusApproved
}

// CanTransact checks whether the account may initiate a transaction or a loan
// application.
func (a *Account) CanTransact() error {
	if a.IsFrozen {
		return domain.ErrAccountFrozen
	}
	return nil
}

// CanCover checks whether the balance covers an outgoing amount.
func (a *Account) CanCover(amount money.Money) error {
	if a.Balance.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}
	return nil
}
