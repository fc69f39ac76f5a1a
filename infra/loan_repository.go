package infra

import (
	"context"

	"github.com/goldenbridge/bankapi/pkg/domain"
	"github.com/goldenbridge/bankapi/pkg/domain/loan"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type loanRepository struct {
	db *gorm.DB
}

func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	return r.db.WithContext(ctx).Create(loanModel(l)).Error
}

// GetForUpdate locks the loan row so concurrent decisions on the same loan
// serialize. Callers must be inside UnitOfWork.Do.
func (r *loanRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*loan.Loan, error) {
	var m Loan
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return m.toDomain(), nil
}

func (r *loanRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*loan.Loan, error) {
	var ms []Loan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return loansToDomain(ms), nil
}

func (r *loanRepository) ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status loan.Status) ([]*loan.Loan, error) {
	var ms []Loan
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(status)).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return loansToDomain(ms), nil
}

func (r *loanRepository) ListPending(ctx context.Context) ([]*loan.WithUser, error) {
	type row struct {
		Loan
		UserName string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&Loan{}).
		Select("loans.*, users.full_name AS user_name").
		Joins("JOIN users ON users.id = loans.user_id").
		Where("loans.status = ?", string(loan.StatusPending)).
		Order("loans.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*loan.WithUser, 0, len(rows))
	for i := range rows {
		out = append(out, &loan.WithUser{
			Loan:     *rows[i].Loan.toDomain(),
			UserName: rows[i].UserName,
		})
	}
	return out, nil
}

func (r *loanRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status loan.Status) error {
	res := r.db.WithContext(ctx).Model(&Loan{}).
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

func loansToDomain(ms []Loan) []*loan.Loan {
	out := make([]*loan.Loan, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].toDomain())
	}
	return out
}
