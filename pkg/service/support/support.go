// Package support implements customer-side support ticket operations. Plain
// CRUD; the admin-side counterparts live in the admin service so their
// mutations flow through the audit log.
package support

import (
	"context"
	"log/slog"

	"github.com/goldenbridge/bankapi/pkg/domain/support"
	"github.com/goldenbridge/bankapi/pkg/repository"
	"github.com/google/uuid"
)

// Service provides user-facing ticket operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates the support service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateInput carries the new ticket form.
type CreateInput struct {
	Subject  string
	Message  string
	Priority string
	Category string
}

// CreateTicket opens a ticket for the user.
func (s *Service) CreateTicket(ctx context.Context, userID uuid.UUID, in CreateInput) (t *support.Ticket, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		t = support.NewTicket(userID, in.Subject, in.Message, in.Priority, in.Category)
		return uow.Support().CreateTicket(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("support ticket created", "ticketID", t.ID, "userID", userID)
	return t, nil
}

// ListTickets returns the user's tickets, newest first.
func (s *Service) ListTickets(ctx context.Context, userID uuid.UUID) ([]*support.Ticket, error) {
	return s.uow.Support().ListByUser(ctx, userID)
}

// AddResponse appends a customer message to one of their tickets and reopens
// it. ErrNotFound when the ticket does not exist or belongs to someone else.
func (s *Service) AddResponse(ctx context.Context, userID, ticketID uuid.UUID, message string) (t *support.Ticket, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.Support().GetTicketForUser(ctx, ticketID, userID); err != nil {
			return err
		}
		if err := uow.Support().AddMessage(ctx, support.NewUserMessage(ticketID, message)); err != nil {
			return err
		}
		t, err = uow.Support().UpdateTicketStatus(ctx, ticketID, support.TicketOpen)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Conversation returns a ticket's message thread, oldest first.
func (s *Service) Conversation(ctx context.Context, ticketID uuid.UUID) ([]*support.MessageWithName, error) {
	return s.uow.Support().ListMessages(ctx, ticketID)
}
