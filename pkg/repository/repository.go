// Package repository defines the persistence contracts used by the services.
// Implementations live under infra. Repositories obtained from a UnitOfWork
// inside Do share one database transaction; see uow.go.
package repository

import (
	"context"

	"github.com/goldenbridge/bankapi/pkg/domain/account"
	"github.com/goldenbridge/bankapi/pkg/domain/activity"
	"github.com/goldenbridge/bankapi/pkg/domain/admin"
	"github.com/goldenbridge/bankapi/pkg/domain/loan"
	"github.com/goldenbridge/bankapi/pkg/domain/support"
	"github.com/goldenbridge/bankapi/pkg/domain/transaction"
	"github.com/google/uuid"
)

// AccountRepository persists customer accounts.
//
// GetForUpdate must acquire a row-level lock on the account so that a
// read-check-write-audit sequence inside one unit of work cannot interleave
// with a concurrent mutation of the same account. Operations on different
// accounts proceed in parallel.
type AccountRepository interface {
	Create(ctx context.Context, a *account.Account) error
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetByEmail(ctx context.Context, email string) (*account.Account, error)
	List(ctx context.Context) ([]*account.Account, error)
	Update(ctx context.Context, a *account.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdminRepository persists back-office operator accounts.
type AdminRepository interface {
	Create(ctx context.Context, u *admin.User) error
	Get(ctx context.Context, id uuid.UUID) (*admin.User, error)
	GetByUsername(ctx context.Context, username string) (*admin.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// TransactionRepository persists monetary transactions.
type TransactionRepository interface {
	Create(ctx context.Context, t *transaction.Transaction) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	GetByOwner(ctx context.Context, id, userID uuid.UUID) (*transaction.Transaction, error)
	// ListByUser returns the user's transactions newest first; limit <= 0
	// means no limit.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*transaction.Transaction, error)
	ListAll(ctx context.Context) ([]*transaction.WithUser, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status transaction.Status) error
	Summarize(ctx context.Context, userID uuid.UUID) (*transaction.Summary, error)
}

// LoanRepository persists loan applications.
type LoanRepository interface {
	Create(ctx context.Context, l *loan.Loan) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*loan.Loan, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*loan.Loan, error)
	ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status loan.Status) ([]*loan.Loan, error)
	ListPending(ctx context.Context) ([]*loan.WithUser, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status loan.Status) error
}

// ActivityRepository is the append-only audit log. Record must be issued on a
// transaction-bound repository so the audit row commits atomically with the
// mutation it documents. Entries are never updated or deleted; the canonical
// read order is creation time descending.
type ActivityRepository interface {
	Record(ctx context.Context, a *activity.Activity) error
	List(ctx context.Context) ([]*activity.WithAdmin, error)
}

// SupportRepository persists support tickets and their message threads.
type SupportRepository interface {
	CreateTicket(ctx context.Context, t *support.Ticket) error
	GetTicket(ctx context.Context, id uuid.UUID) (*support.TicketWithUser, error)
	GetTicketForUser(ctx context.Context, id, userID uuid.UUID) (*support.Ticket, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*support.Ticket, error)
	ListAll(ctx context.Context) ([]*support.TicketWithUser, error)
	UpdateTicketStatus(ctx context.Context, id uuid.UUID, status support.TicketStatus) (*support.Ticket, error)
	AddMessage(ctx context.Context, m *support.Message) error
	// ListMessages returns the conversation oldest first.
	ListMessages(ctx context.Context, ticketID uuid.UUID) ([]*support.MessageWithName, error)
}
