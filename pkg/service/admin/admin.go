// Package admin implements the admin override layer: every privileged
// mutation of accounts, transactions, loans, and tickets. Each mutation runs
// inside one unit of work together with exactly one audit entry; the two
// commit or roll back as a pair, and balance arithmetic happens under a
// row-level lock on the account.
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goldenbridge/bankapi/pkg/domain"
	"github.com/goldenbridge/bankapi/pkg/domain/account"
	"github.com/goldenbridge/bankapi/pkg/domain/activity"
	"github.com/goldenbridge/bankapi/pkg/domain/loan"
	"github.com/goldenbridge/bankapi/pkg/domain/money"
	"github.com/goldenbridge/bankapi/pkg/domain/support"
	"github.com/goldenbridge/bankapi/pkg/domain/transaction"
	"github.com/goldenbridge/bankapi/pkg/repository"
	"github.com/google/uuid"
)

// Decision is an admin verdict on a pending transaction or loan.
type Decision string

const (
	Approve Decision = "approve"
	Reject  Decision = "reject"
)

// Service provides the admin console operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates the admin service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// ListUsers returns every account, newest first.
func (s *Service) ListUsers(ctx context.Context) ([]*account.Account, error) {
	return s.uow.Accounts().List(ctx)
}

// ApproveUser transitions an account to approved.
func (s *Service) ApproveUser(ctx context.Context, adminID, userID uuid.UUID) (a *account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err = uow.Accounts().GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		a.Status = account.StatusApproved
		if err := uow.Accounts().Update(ctx, a); err != nil {
			return err
		}
		return uow.Activities().Record(ctx, activity.New(
			adminID, activity.ActionApproveUser, activity.TargetUser, userID,
			fmt.Sprintf("Approved user: %s", a.Email)))
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user approved", "adminID", adminID, "userID", userID)
	return a, nil
}

// RejectUser permanently removes a pending registration.
func (s *Service) RejectUser(ctx context.Context, adminID, userID uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err := uow.Accounts().GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if err := uow.Accounts().Delete(ctx, userID); err != nil {
			return err
		}
		return uow.Activities().Record(ctx, activity.New(
			adminID, activity.ActionRejectUser, activity.TargetUser, userID,
			fmt.Sprintf("Rejected user: %s", a.Email)))
	})
	if err != nil {
		return err
	}
	s.logger.Info("user rejected and removed", "adminID", adminID, "userID", userID)
	return nil
}

// SetFrozen sets the frozen flag unconditionally. There is no business-rule
// gate: freezing a frozen account or unfreezing a thawed one succeeds and is
// audited like any other flip.
func (s *Service) SetFrozen(ctx context.Context, adminID, userID uuid.UUID, frozen bool) (a *account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err = uow.Accounts().GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		a.IsFrozen = frozen
		if err := uow.Accounts().Update(ctx, a); err != nil {
			return err
		}
		action, verb := activity.ActionUnfreezeUser, "Unfroze"
		if frozen {
			action, verb = activity.ActionFreezeUser, "Froze"
		}
		return uow.Activities().Record(ctx, activity.New(
			adminID, action, activity.TargetUser, userID,
			fmt.Sprintf("%s user: %s", verb, a.Email)))
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("frozen flag updated", "adminID", adminID, "userID", userID, "frozen", frozen)
	return a, nil
}

// SetBalance overwrites an account balance directly, bypassing the normal
// transaction checks. The audit entry records the old and new values.
func (s *Service) SetBalance(ctx context.Context, adminID, userID uuid.UUID, newBalance float64) (a *account.Account, err error) {
	balance, err := money.NewFromFloat(newBalance)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err = uow.Accounts().GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		old := a.Balance
		a.Balance = balance
		if err := uow.Accounts().Update(ctx, a); err != nil {
			return err
		}
		return uow.Activities().Record(ctx, activity.New(
			adminID, activity.ActionUpdateBalance, activity.TargetUser, userID,
			fmt.Sprintf("Updated balance from $%s to $%s for user: %s", old, balance, a.Email)))
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("balance overwritten", "adminID", adminID, "userID", userID, "balance", balance)
	return a, nil
}

// ListTransactions returns every transaction with the owner's name, newest
// first.
func (s *Service) ListTransactions(ctx context.Context) ([]*transaction.WithUser, error) {
	return s.uow.Transactions().ListAll(ctx)
}

// CreateTransactionInput carries the admin transaction form.
type CreateTransactionInput struct {
	UserID  uuid.UUID
	Type    string
	Amount  float64
	Details transaction.Details
}

// CreateTransaction creates a transaction that is born approved: unlike the
// user path there is no confirmation step, and the balance delta is applied
// immediately, in the same unit of work as the row and its audit entry.
func (s *Service) CreateTransaction(ctx context.Context, adminID uuid.UUID, in CreateTransactionInput) (t *transaction.Transaction, err error) {
	typ, err := transaction.ParseType(in.Type)
	if err != nil {
		return nil, err
	}
	amount, err := money.NewFromFloat(in.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, money.ErrInvalidAmount
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err := uow.Accounts().GetForUpdate(ctx, in.UserID)
		if err != nil {
			return err
		}
		t = transaction.NewApproved(in.UserID, typ, amount, in.Details)
		if err := uow.Transactions().Create(ctx, t); err != nil {
			return err
		}
		a.Balance = a.Balance.Add(t.Delta())
		if err := uow.Accounts().Update(ctx, a); err != nil {
			return err
		}
		return uow.Activities().Record(ctx, activity.New(
			adminID, activity.ActionCreateTransaction, activity.TargetTransaction, t.ID,
			fmt.Sprintf("Created %s transaction for user ID: %s, Amount: $%s", typ, in.UserID, amount)))
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("admin transaction created and applied",
		"adminID", adminID, "transactionID", t.ID, "userID", in.UserID, "type", typ, "amount", amount)
	return t, nil
}

// DecideTransaction approves or rejects a pending transaction. Approval
// re-checks funds under the account lock and applies the signed delta exactly
// once; rejection has no balance effect. A transaction that is no longer
// pending fails with ErrNotFound, so a second decision can never re-apply the
// delta.
func (s *Service) DecideTransaction(ctx context.Context, adminID, transactionID uuid.UUID, decision Decision) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		t, err := uow.Transactions().GetForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if !t.IsPending() {
			return domain.ErrNotFound
		}
		switch decision {
		case Approve:
			a, err := uow.Accounts().GetForUpdate(ctx, t.UserID)
			if err != nil {
				return err
			}
			if t.Type.IsDebit() {
				if err := a.CanCover(t.Amount); err != nil {
					return err
				}
			}
			a.Balance = a.Balance.Add(t.Delta())
			if err := uow.Accounts().Update(ctx, a); err != nil {
				return err
			}
			if err := uow.Transactions().UpdateStatus(ctx, transactionID, transaction.StatusApproved); err != nil {
				return err
			}
			return uow.Activities().Record(ctx, activity.New(
				adminID, activity.ActionApproveTransaction, activity.TargetTransaction, transactionID,
				fmt.Sprintf("Approved transaction: %s", t.Reference)))
		case Reject:
			if err := uow.Transactions().UpdateStatus(ctx, transactionID, transaction.StatusRejected); err != nil {
				return err
			}
			return uow.Activities().Record(ctx, activity.New(
				adminID, activity.ActionRejectTransaction, activity.TargetTransaction, transactionID,
				fmt.Sprintf("Rejected transaction: %s", t.Reference)))
		default:
			return fmt.Errorf("unknown decision %q", decision)
		}
	})
	if err != nil {
		return err
	}
	s.logger.Info("transaction decided",
		"adminID", adminID, "transactionID", transactionID, "decision", decision)
	return nil
}

// PendingLoans returns loans awaiting a decision, with owner names.
func (s *Service) PendingLoans(ctx context.Context) ([]*loan.WithUser, error) {
	return s.uow.Loans().ListPending(ctx)
}

// DecideLoan approves or rejects a pending loan. Approval credits the
// principal to the owner's balance exactly once; rejection has no balance
// effect. A loan that is no longer pending fails with ErrNotFound.
func (s *Service) DecideLoan(ctx context.Context, adminID, loanID uuid.UUID, decision Decision) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		l, err := uow.Loans().GetForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		if !l.IsPending() {
			return domain.ErrNotFound
		}
		switch decision {
		case Approve:
			a, err := uow.Accounts().GetForUpdate(ctx, l.UserID)
			if err != nil {
				return err
			}
			a.Balance = a.Balance.Add(l.Amount)
			if err := uow.Accounts().Update(ctx, a); err != nil {
				return err
			}
			if err := uow.Loans().UpdateStatus(ctx, loanID, loan.StatusApproved); err != nil {
				return err
			}
			return uow.Activities().Record(ctx, activity.New(
				adminID, activity.ActionApproveLoan, activity.TargetLoan, loanID,
				fmt.Sprintf("Approved loan: $%s for user ID: %s", l.Amount, l.UserID)))
		case Reject:
			if err := uow.Loans().UpdateStatus(ctx, loanID, loan.StatusRejected); err != nil {
				return err
			}
			return uow.Activities().Record(ctx, activity.New(
				adminID, activity.ActionRejectLoan, activity.TargetLoan, loanID,
				fmt.Sprintf("Rejected loan: $%s for user ID: %s", l.Amount, l.UserID)))
		default:
			return fmt.Errorf("unknown decision %q", decision)
		}
	})
	if err != nil {
		return err
	}
	s.logger.Info("loan decided", "adminID", adminID, "loanID", loanID, "decision", decision)
	return nil
}

// ListTickets returns every support ticket with the owner's name.
func (s *Service) ListTickets(ctx context.Context) ([]*support.TicketWithUser, error) {
	return s.uow.Support().ListAll(ctx)
}

// GetTicket returns one ticket with the owner's name.
func (s *Service) GetTicket(ctx context.Context, ticketID uuid.UUID) (*support.TicketWithUser, error) {
	return s.uow.Support().GetTicket(ctx, ticketID)
}

// TicketConversation returns a ticket's message thread, oldest first.
func (s *Service) TicketConversation(ctx context.Context, ticketID uuid.UUID) ([]*support.MessageWithName, error) {
	return s.uow.Support().ListMessages(ctx, ticketID)
}

// RespondToTicket appends an operator message, moves the ticket to the given
// status, and audits the response as one unit.
func (s *Service) RespondToTicket(ctx context.Context, adminID, ticketID uuid.UUID, response string, status support.TicketStatus) (t *support.Ticket, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.Support().GetTicket(ctx, ticketID); err != nil {
			return err
		}
		if err := uow.Support().AddMessage(ctx, support.NewAdminMessage(ticketID, adminID, response)); err != nil {
			return err
		}
		t, err = uow.Support().UpdateTicketStatus(ctx, ticketID, status)
		if err != nil {
			return err
		}
		return uow.Activities().Record(ctx, activity.New(
			adminID, activity.ActionRespondTicket, activity.TargetSupportTicket, ticketID,
			fmt.Sprintf("Responded to ticket: %s", t.Subject)))
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("ticket responded", "adminID", adminID, "ticketID", ticketID, "status", status)
	return t, nil
}

// Activities returns the audit log, newest first.
func (s *Service) Activities(ctx context.Context) ([]*activity.WithAdmin, error) {
	return s.uow.Activities().List(ctx)
}
