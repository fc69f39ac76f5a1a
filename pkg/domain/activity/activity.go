// Package activity holds the append-only audit record written for every
// privileged mutation. An activity row commits in the same database
// transaction as the mutation it documents, never separately.
package activity

import (
	"time"

	"github.com/google/uuid"
)

// Action tags mirror the operations of the admin console.
const (
	ActionApproveUser        = "approve_user"
	ActionRejectUser         = "reject_user"
	ActionFreezeUser         = "freeze_user"
	ActionUnfreezeUser       = "unfreeze_user"
	ActionUpdateBalance      = "update_balance"
	ActionCreateTransaction  = "create_transaction"
	ActionApproveTransaction = "approve_transaction"
	ActionRejectTransaction  = "reject_transaction"
	ActionApproveLoan        = "approve_loan"
	ActionRejectLoan         = "reject_loan"
	ActionRespondTicket      = "respond_ticket"
)

// Target types for audit rows.
const (
	TargetUser          = "user"
	TargetTransaction   = "transaction"
	TargetLoan          = "loan"
	TargetSupportTicket = "support_ticket"
)

// Activity is one immutable audit entry.
type Activity struct {
	ID         uuid.UUID
	AdminID    uuid.UUID
	Action     string
	TargetType string
	TargetID   uuid.UUID
	Details    string
	CreatedAt  time.Time
}

// New builds an audit entry for the given actor, action and target.
func New(adminID uuid.UUID, action, targetType string, targetID uuid.UUID, details string) *Activity {
	return &Activity{
		ID:         uuid.New(),
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
		CreatedAt:  time.Now(),
	}
}

// WithAdmin is an audit entry joined with the acting admin's name for display.
type WithAdmin struct {
	Activity
	AdminName string
}
