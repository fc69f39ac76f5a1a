package infra

import (
	"context"

	"github.com/goldenbridge/bankapi/pkg/domain"
	"github.com/goldenbridge/bankapi/pkg/domain/support"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type supportRepository struct {
	db *gorm.DB
}

func (r *supportRepository) CreateTicket(ctx context.Context, t *support.Ticket) error {
	return r.db.WithContext(ctx).Create(ticketModel(t)).Error
}

func (r *supportRepository) GetTicket(ctx context.Context, id uuid.UUID) (*support.TicketWithUser, error) {
	type row struct {
		SupportTicket
		UserName string
	}
	var rw row
	err := r.db.WithContext(ctx).
		Model(&SupportTicket{}).
		Select("support_tickets.*, users.full_name AS user_name").
		Joins("JOIN users ON users.id = support_tickets.user_id").
		Where("support_tickets.id = ?", id).
		First(&rw).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &support.TicketWithUser{
		Ticket:   *rw.SupportTicket.toDomain(),
		UserName: rw.UserName,
	}, nil
}

func (r *supportRepository) GetTicketForUser(ctx context.Context, id, userID uuid.UUID) (*support.Ticket, error) {
	var m SupportTicket
	err := r.db.WithContext(ctx).
		First(&m, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return m.toDomain(), nil
}

func (r *supportRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*support.Ticket, error) {
	var ms []SupportTicket
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]*support.Ticket, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].toDomain())
	}
	return out, nil
}

func (r *supportRepository) ListAll(ctx context.Context) ([]*support.TicketWithUser, error) {
	type row struct {
		SupportTicket
		UserName string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&SupportTicket{}).
		Select("support_tickets.*, users.full_name AS user_name").
		Joins("JOIN users ON users.id = support_tickets.user_id").
		Order("support_tickets.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*support.TicketWithUser, 0, len(rows))
	for i := range rows {
		out = append(out, &support.TicketWithUser{
			Ticket:   *rows[i].SupportTicket.toDomain(),
			UserName: rows[i].UserName,
		})
	}
	return out, nil
}

func (r *supportRepository) UpdateTicketStatus(ctx context.Context, id uuid.UUID, status support.TicketStatus) (*support.Ticket, error) {
	res := r.db.WithContext(ctx).Model(&SupportTicket{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	var m SupportTicket
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return m.toDomain(), nil
}

func (r *supportRepository) AddMessage(ctx context.Context, m *support.Message) error {
	return r.db.WithContext(ctx).Create(messageModel(m)).Error
}

func (r *supportRepository) ListMessages(ctx context.Context, ticketID uuid.UUID) ([]*support.MessageWithName, error) {
	var ms []TicketMessage
	err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	var userName string
	err = r.db.WithContext(ctx).
		Model(&User{}).
		Select("users.full_name").
		Joins("JOIN support_tickets ON support_tickets.user_id = users.id").
		Where("support_tickets.id = ?", ticketID).
		Scan(&userName).Error
	if err != nil {
		return nil, err
	}
	out := make([]*support.MessageWithName, 0, len(ms))
	for i := range ms {
		name := "Support Team"
		if ms[i].SenderType == string(support.SenderUser) {
			name = userName
		}
		out = append(out, &support.MessageWithName{
			Message:  *ms[i].toDomain(),
			UserName: name,
		})
	}
	return out, nil
}
