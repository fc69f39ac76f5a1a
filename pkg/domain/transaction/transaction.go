// Package transaction holds the monetary transaction entity and its status
// rules. A transaction's balance effect is applied exactly once, at the moment
// its status transitions into approved.
package transaction

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/goldenbridge/bankapi/pkg/domain"
	"github.com/goldenbridge/bankapi/pkg/domain/money"
	"github.com/google/uuid"
)

// Type is the kind of balance effect a transaction has.
type Type string

const (
	TypeDeposit    Type = "deposit"
	TypeWithdrawal Type = "withdrawal"
	TypeTransfer   Type = "transfer"
)

// ParseType validates a wire-level transaction type.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeDeposit, TypeWithdrawal, TypeTransfer:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// IsDebit reports whether the type reduces the balance.
func (t Type) IsDebit() bool {
	return t == TypeWithdrawal || t == TypeTransfer
}

// Status is the lifecycle state of a transaction.
type Status string

const (
	// StatusPendingOTP is the initial state of a user-created transaction. It
	// has no balance effect yet.
	StatusPendingOTP Status = "pending_otp"
	// StatusApproved means the balance delta has been applied.
	StatusApproved Status = "approved"
	// StatusRejected is terminal and has no balance effect.
	StatusRejected Status = "rejected"
)

// Details carries the free-form metadata captured with a transaction.
type Details struct {
	Description      string
	RecipientName    string
	RecipientAccount string
	BankName         string
	RoutingNumber    string
	SwiftCode        string
}

// Transaction is a single balance-affecting operation against one account.
type Transaction struct {
	ID        uuid.UUID
	Reference string
	UserID    uuid.UUID
	Type      Type
	Amount    money.Money
	Status    Status
	Details   Details
	CreatedAt time.Time
}

// New creates a user-initiated transaction in pending_otp with a fresh
// globally-unique reference. It has no balance effect until approved.
func New(userID uuid.UUID, typ Type, amount money.Money, details Details) *Transaction {
	return &Transaction{
		ID:        uuid.New(),
		Reference: NewReference(),
		UserID:    userID,
		Type:      typ,
		Amount:    amount,
		Status:    StatusPendingOTP,
		Details:   details,
		CreatedAt: time.Now(),
	}
}

// NewApproved creates an admin-initiated transaction. It is born approved;
// the caller applies the balance delta in the same unit of work.
func NewApproved(userID uuid.UUID, typ Type, amount money.Money, details Details) *Transaction {
	t := New(userID, typ, amount, details)
	t.Status = StatusApproved
	return t
}

// NewReference generates an external transaction reference: "T", the creation
// time in milliseconds, and a random suffix.
func NewReference() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("T%d%s", time.Now().UnixMilli(), suffix)
}

// Delta returns the signed balance effect: positive for deposits, negative
// for withdrawals and transfers.
func (t *Transaction) Delta() money.Money {
	if t.Type.IsDebit() {
		return t.Amount.Negate()
	}
	return t.Amount
}

// IsPending reports whether the transaction is still awaiting a decision.
func (t *Transaction) IsPending() bool {
	return t.Status == StatusPendingOTP
}

var confirmationCodeRe = regexp.MustCompile(`^[0-9]{6}$`)

// ValidateConfirmationCode checks the 6-digit format of a confirmation code.
// Passing the format check does not make a code acceptable; see the
// transaction service for the confirmation policy.
func ValidateConfirmationCode(code string) error {
	if !confirmationCodeRe.MatchString(code) {
		return domain.ErrInvalidConfirmationCode
	}
	return nil
}

// WithUser is a transaction joined with the owner's name for admin lists.
type WithUser struct {
	Transaction
	UserName string
}

// Summary aggregates a user's approved activity for the profile page.
type Summary struct {
	TotalDeposits    money.Money
	TotalWithdrawals money.Money
}
