package infra

import (
	"context"

	"github.com/goldenbridge/bankapi/pkg/domain"
	"github.com/goldenbridge/bankapi/pkg/domain/admin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type adminRepository struct {
	db *gorm.DB
}

func (r *adminRepository) Create(ctx context.Context, u *admin.User) error {
	m := &AdminUser{
		ID:           u.ID,
		Username:     u.Username,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *adminRepository) Get(ctx context.Context, id uuid.UUID) (*admin.User, error) {
	var m AdminUser
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return m.toDomain(), nil
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*admin.User, error) {
	var m AdminUser
	if err := r.db.WithContext(ctx).First(&m, "username = ?", username).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return m.toDomain(), nil
}

func (r *adminRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&AdminUser{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
