// Package loan holds the loan application entity. A loan's balance effect
// (crediting the principal) happens only on the pending→approved transition,
// exactly once, and only through an admin decision.
package loan

import (
	"time"

	"github.com/goldenbridge/bankapi/pkg/domain/money"
	"github.com/google/uuid"
)

// Status is the lifecycle state of a loan application.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Loan is a loan application owned by one account.
type Loan struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Type       string
	Amount     money.Money
	TermMonths int
	Purpose    string
	Status     Status
	CreatedAt  time.Time
}

// New creates a pending loan application with no balance effect.
func New(userID uuid.UUID, typ string, amount money.Money, termMonths int, purpose string) *Loan {
	return &Loan{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       typ,
		Amount:     amount,
		TermMonths: termMonths,
		Purpose:    purpose,
		Status:     StatusPending,
		CreatedAt:  time.Now(),
	}
}

// IsPending reports whether the loan is still awaiting a decision.
func (l *Loan) IsPending() bool {
	return l.Status == StatusPending
}

// WithUser is a loan joined with the owner's name for admin lists.
type WithUser struct {
	Loan
	UserName string
}
