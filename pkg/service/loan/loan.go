// Package loan implements the loan engine's user-facing half: applications
// and reads. Decisions (and the balance credit they carry) are admin-only;
// see the admin service.
package loan

import (
	"context"
	"log/slog"

	"github.com/goldenbridge/bankapi/pkg/domain"
	"github.com/goldenbridge/bankapi/pkg/domain/loan"
	"github.com/goldenbridge/bankapi/pkg/domain/money"
	"github.com/goldenbridge/bankapi/pkg/repository"
	"github.com/google/uuid"
)

// Service provides user-facing loan operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates the loan service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// ApplyInput carries the loan application form.
type ApplyInput struct {
	Type       string
	Amount     float64
	TermMonths int
	Purpose    string
}

// Apply persists a pending loan application. A frozen account fails with
// ErrAccountFrozen. No balance effect happens here.
func (s *Service) Apply(ctx context.Context, userID uuid.UUID, in ApplyInput) (l *loan.Loan, err error) {
	log := s.logger.With("context", "ApplyForLoan", "userID", userID)
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
		l = loan.New(userID, in.Type, amount, in.TermMonths, in.Purpose)
		return uow.Loans().Create(ctx, l)
	})
	if err != nil {
		log.Warn("loan application rejected", "error", err)
		return nil, err
	}
	log.Info("loan application submitted", "loanID", l.ID, "amount", amount)
	return l, nil
}

// List returns all of the user's loans, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*loan.Loan, error) {
	return s.uow.Loans().ListByUser(ctx, userID)
}

// Active returns the user's approved loans.
func (s *Service) Active(ctx context.Context, userID uuid.UUID) ([]*loan.Loan, error) {
	return s.uow.Loans().ListByUserAndStatus(ctx, userID, loan.StatusApproved)
}

// VerifyOTP is the user-facing loan confirmation path. It is disabled: every
// attempt ends in ErrConfirmationNotEnabled, and loan decisions happen only
// through the admin console.
func (s *Service) VerifyOTP(ctx context.Context, userID uuid.UUID, code string) error {
	s.logger.Info("loan confirmation attempt rejected, self-service confirmation disabled",
		"userID", userID)
	return domain.ErrConfirmationNotEnabled
}
