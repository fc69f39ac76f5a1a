// Package transaction implements the transaction engine: creating pending
// transactions, the confirmation gate, and owner-scoped reads. The balance
// effect of a user-created transaction is applied only by an admin decision;
// see the admin service.
package transaction

import (
	"context"
	"log/slog"

	"github.com/goldenbridge/bankapi/pkg/domain"
	"github.com/goldenbridge/bankapi/pkg/domain/money"
	"github.com/goldenbridge/bankapi/pkg/domain/transaction"
	"github.com/goldenbridge/bankapi/pkg/repository"
	"github.com/google/uuid"
)

// DemoOTP is the placeholder confirmation code echoed on create responses.
// Real code delivery is not wired up; the user-facing confirmation path
// rejects every code regardless (see VerifyOTP).
const DemoOTP = "123456"

// Service provides user-facing transaction operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates the transaction service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateInput carries the transaction form.
type CreateInput struct {
	Type    string
	Amount  float64
	Details transaction.Details
}

// Create persists a pending transaction for the account. A frozen account
// fails with ErrAccountFrozen and outgoing types fail with
// ErrInsufficientFunds when the amount exceeds the current balance. No
// balance effect happens here.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (t *transaction.Transaction, err error) {
	log := s.logger.With("context", "CreateTransaction", "userID", userID)
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
		a, err := uow.Accounts().Get(ctx, userID)
		if err != nil {
			return err
		}
		if err := a.CanTransact(); err != nil {
			return err
		}
		if typ.IsDebit() {
			if err := a.CanCover(amount); err != nil {
				return err
			}
		}
		t = transaction.New(userID, typ, amount, in.Details)
		return uow.Transactions().Create(ctx, t)
	})
	if err != nil {
		log.Warn("transaction rejected", "error", err)
		return nil, err
	}
	log.Info("transaction created, confirmation required",
		"transactionID", t.ID, "reference", t.Reference, "type", typ, "amount", amount)
	return t, nil
}

// VerifyOTP is the user-facing confirmation path. The code must be six
// digits and the transaction must exist and belong to the caller — but no
// code is ever accepted: self-service confirmation is disabled and every
// attempt ends in ErrConfirmationNotEnabled. Pending transactions are
// completed exclusively through the admin decision path.
func (s *Service) VerifyOTP(ctx context.Context, userID, transactionID uuid.UUID, code string) error {
	log := s.logger.With("context", "VerifyOTP", "userID", userID, "transactionID", transactionID)
	if err := transaction.ValidateConfirmationCode(code); err != nil {
		return err
	}
	if _, err := s.uow.Transactions().GetByOwner(ctx, transactionID, userID); err != nil {
		return err
	}
	log.Info("confirmation attempt rejected, self-service confirmation disabled")
	return domain.ErrConfirmationNotEnabled
}

// List returns all of the user's transactions, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*transaction.Transaction, error) {
	return s.uow.Transactions().ListByUser(ctx, userID, 0)
}

// Recent returns the user's ten most recent transactions.
func (s *Service) Recent(ctx context.Context, userID uuid.UUID) ([]*transaction.Transaction, error) {
	return s.uow.Transactions().ListByUser(ctx, userID, 10)
}

// Receipt returns one of the user's transactions by id, ErrNotFound when it
// does not exist or belongs to someone else.
func (s *Service) Receipt(ctx context.Context, userID, transactionID uuid.UUID) (*transaction.Transaction, error) {
	return s.uow.Transactions().GetByOwner(ctx, transactionID, userID)
}

// Summary returns the user's approved deposit and withdrawal totals.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (*transaction.Summary, error) {
	return s.uow.Transactions().Summarize(ctx, userID)
}
