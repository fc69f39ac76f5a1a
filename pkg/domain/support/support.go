// Package support holds support tickets and their message threads. Tickets
// are plain CRUD, but admin responses feed the same audit pattern as the
// other privileged mutations.
package support

import (
	"time"

	"github.com/google/uuid"
)

// TicketStatus is the workflow state of a support ticket.
type TicketStatus string

const (
	TicketOpen     TicketStatus = "open"
	TicketPending  TicketStatus = "pending"
	TicketResolved TicketStatus = "resolved"
)

// SenderType distinguishes who wrote a ticket message.
type SenderType string

const (
	SenderUser  SenderType = "user"
	SenderAdmin SenderType = "admin"
)

// Ticket is a support request opened by a customer.
type Ticket struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Subject   string
	Message   string
	Priority  string
	Category  string
	Status    TicketStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTicket opens a ticket in the open state.
func NewTicket(userID uuid.UUID, subject, message, priority, category string) *Ticket {
	now := time.Now()
	return &Ticket{
		ID:        uuid.New(),
		UserID:    userID,
		Subject:   subject,
		Message:   message,
		Priority:  priority,
		Category:  category,
		Status:    TicketOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Message is one entry in a ticket's conversation, ordered by creation time.
type Message struct {
	ID        uuid.UUID
	TicketID  uuid.UUID
	Sender    SenderType
	Message   string
	AdminID   *uuid.UUID
	CreatedAt time.Time
}

// NewUserMessage appends a customer reply to a ticket thread.
func NewUserMessage(ticketID uuid.UUID, message string) *Message {
	return &Message{
		ID:        uuid.New(),
		TicketID:  ticketID,
		Sender:    SenderUser,
		Message:   message,
		CreatedAt: time.Now(),
	}
}

// NewAdminMessage appends an operator response to a ticket thread.
func NewAdminMessage(ticketID, adminID uuid.UUID, message string) *Message {
	return &Message{
		ID:        uuid.New(),
		TicketID:  ticketID,
		Sender:    SenderAdmin,
		Message:   message,
		AdminID:   &adminID,
		CreatedAt: time.Now(),
	}
}

// TicketWithUser is a ticket joined with the customer's name for admin lists.
type TicketWithUser struct {
	Ticket
	UserName string
}

// MessageWithName is a conversation entry with a display name resolved:
// the customer's full name for user messages, "Support Team" otherwise.
type MessageWithName struct {
	Message
	UserName string
}
