package repository

import "context"

// UnitOfWork is the transaction boundary for every mutating operation.
//
// Do executes fn inside one database transaction. Repositories obtained from
// the UnitOfWork passed to fn are bound to that transaction, so a
// read-check-write sequence and its audit row commit or roll back as one
// unit. If fn returns an error the whole unit rolls back; a mutation never
// commits without its audit entry and vice versa.
//
// Repositories obtained outside of Do run without an enclosing transaction
// and are appropriate for plain reads.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Accounts() AccountRepository
	Admins() AdminRepository
	Transactions() TransactionRepository
	Loans() LoanRepository
	Activities() ActivityRepository
	Support() SupportRepository
}
