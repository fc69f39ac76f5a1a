package infra

import (
	"context"

	"github.com/goldenbridge/bankapi/pkg/domain"
	"github.com/goldenbridge/bankapi/pkg/domain/money"
	"github.com/goldenbridge/bankapi/pkg/domain/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transactionRepository struct {
	db *gorm.DB
}

func (r *transactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	return r.db.WithContext(ctx).Create(transactionModel(t)).Error
}

// GetForUpdate locks the transaction row so concurrent decisions on the same
// transaction serialize. Callers must be inside UnitOfWork.Do.
func (r *transactionRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	var m Transaction
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return m.toDomain(), nil
}

func (r *transactionRepository) GetByOwner(ctx context.Context, id, userID uuid.UUID) (*transaction.Transaction, error) {
	var m Transaction
	err := r.db.WithContext(ctx).
		First(&m, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return m.toDomain(), nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*transaction.Transaction, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var ms []Transaction
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*transaction.Transaction, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].toDomain())
	}
	return out, nil
}

func (r *transactionRepository) ListAll(ctx context.Context) ([]*transaction.WithUser, error) {
	type row struct {
		Transaction
		UserName string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Select("transactions.*, users.full_name AS user_name").
		Joins("JOIN users ON users.id = transactions.user_id").
		Order("transactions.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*transaction.WithUser, 0, len(rows))
	for i := range rows {
		out = append(out, &transaction.WithUser{
			Transaction: *rows[i].Transaction.toDomain(),
			UserName:    rows[i].UserName,
		})
	}
	return out, nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status transaction.Status) error {
	res := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *transactionRepository) Summarize(ctx context.Context, userID uuid.UUID) (*transaction.Summary, error) {
	var deposits, withdrawals int64
	err := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("user_id = ? AND type = ? AND status = ?", userID, string(transaction.TypeDeposit), string(transaction.StatusApproved)).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&deposits).Error
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Model(&Transaction{}).
		Where("user_id = ? AND type IN ? AND status = ?", userID,
			[]string{string(transaction.TypeWithdrawal), string(transaction.TypeTransfer)},
			string(transaction.StatusApproved)).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&withdrawals).Error
	if err != nil {
		return nil, err
	}
	return &transaction.Summary{
		TotalDeposits:    money.FromCents(deposits),
		TotalWithdrawals: money.FromCents(withdrawals),
	}, nil
}
