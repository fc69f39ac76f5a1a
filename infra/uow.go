package infra

import (
	"context"

	"github.com/goldenbridge/bankapi/pkg/repository"
	"gorm.io/gorm"
)

// UoW implements repository.UnitOfWork on top of a gorm handle. Do wraps the
// callback in a database transaction and hands it a UoW bound to that
// transaction, so every repository obtained inside shares the same session.
type UoW struct {
	db *gorm.DB
}

// NewUoW wraps the given database handle.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside one database transaction. A non-nil error from fn rolls
// the whole unit back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: tx})
	})
}

func (u *UoW) Accounts() repository.AccountRepository {
	return &accountRepository{db: u.db}
}

func (u *UoW) Admins() repository.AdminRepository {
	return &adminRepository{db: u.db}
}

func (u *UoW) Transactions() repository.TransactionRepository {
	return &transactionRepository{db: u.db}
}

func (u *UoW) Loans() repository.LoanRepository {
	return &loanRepository{db: u.db}
}

func (u *UoW) Activities() repository.ActivityRepository {
	return &activityRepository{db: u.db}
}

func (u *UoW) Support() repository.SupportRepository {
	return &supportRepository{db: u.db}
}
