package infra

import (
	"context"
	"errors"

	"github.com/goldenbridge/bankapi/pkg/domain"
	"github.com/goldenbridge/bankapi/pkg/domain/account"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	return r.db.WithContext(ctx).Create(userModel(a)).Error
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return m.toDomain(), nil
}

// GetForUpdate locks the account row for the duration of the enclosing
// transaction. Callers must be inside UnitOfWork.Do.
func (r *accountRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var m User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return m.toDomain(), nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "email = ?", email).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return m.toDomain(), nil
}

func (r *accountRepository) List(ctx context.Context) ([]*account.Account, error) {
	var ms []User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*account.Account, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].toDomain())
	}
	return out, nil
}

func (r *accountRepository) Update(ctx context.Context, a *account.Account) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", a.ID).Updates(map[string]any{
		"full_name":     a.FullName,
		"password_hash": a.PasswordHash,
		"email":         a.Email,
		"phone_number":  a.PhoneNumber,
		"address":       a.Address,
		"balance_cents": a.Balance.Cents(),
		"status":        string(a.Status),
		"is_frozen":     a.IsFrozen,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
