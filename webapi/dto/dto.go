// Package dto holds the wire representations shared by the handler packages.
// Monetary values are serialized as decimal dollars; internally they are
// fixed-point cents.
package dto

import (
	"time"

	"github.com/goldenbridge/bankapi/pkg/domain/account"
	"github.com/goldenbridge/bankapi/pkg/domain/activity"
	"github.com/goldenbridge/bankapi/pkg/domain/admin"
	"github.com/goldenbridge/bankapi/pkg/domain/loan"
	"github.com/goldenbridge/bankapi/pkg/domain/support"
	"github.com/goldenbridge/bankapi/pkg/domain/transaction"
	"github.com/google/uuid"
)

// User is the customer account as seen by clients. The password hash never
// leaves the server.
type User struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	Address     string    `json:"address,omitempty"`
	Balance     float64   `json:"balance"`
	Status      string    `json:"status"`
	IsFrozen    bool      `json:"is_frozen"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewUser maps an account to its wire form.
func NewUser(a *account.Account) User {
	return User{
		ID:          a.ID,
		FullName:    a.FullName,
		Email:       a.Email,
		PhoneNumber: a.PhoneNumber,
		DateOfBirth: a.DateOfBirth,
		Address:     a.Address,
		Balance:     a.Balance.Float64(),
		Status:      string(a.Status),
		IsFrozen:    a.IsFrozen,
		CreatedAt:   a.CreatedAt,
	}
}

// NewUsers maps a list of accounts.
func NewUsers(as []*account.Account) []User {
	out := make([]User, 0, len(as))
	for _, a := range as {
		out = append(out, NewUser(a))
	}
	return out
}

// Admin is the operator identity returned on admin login.
type Admin struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
}

// NewAdmin maps an operator to its wire form.
func NewAdmin(u *admin.User) Admin {
	return Admin{ID: u.ID, Username: u.Username, FullName: u.FullName}
}

// Transaction is the wire form of a monetary transaction.
type Transaction struct {
	ID               uuid.UUID `json:"id"`
	UniqueID         string    `json:"unique_id"`
	UserID           uuid.UUID `json:"user_id"`
	Type             string    `json:"type"`
	Amount           float64   `json:"amount"`
	Status           string    `json:"status"`
	Description      string    `json:"description,omitempty"`
	RecipientName    string    `json:"recipient_name,omitempty"`
	RecipientAccount string    `json:"recipient_account,omitempty"`
	BankName         string    `json:"bank_name,omitempty"`
	RoutingNumber    string    `json:"routing_number,omitempty"`
	SwiftCode        string    `json:"swift_code,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UserName         string    `json:"user_name,omitempty"`
}

// NewTransaction maps a transaction to its wire form.
func NewTransaction(t *transaction.Transaction) Transaction {
	return Transaction{
		ID:               t.ID,
		UniqueID:         t.Reference,
		UserID:           t.UserID,
		Type:             string(t.Type),
		Amount:           t.Amount.Float64(),
		Status:           string(t.Status),
		Description:      t.Details.Description,
		RecipientName:    t.Details.RecipientName,
		RecipientAccount: t.Details.RecipientAccount,
		BankName:         t.Details.BankName,
		RoutingNumber:    t.Details.RoutingNumber,
		SwiftCode:        t.Details.SwiftCode,
		CreatedAt:        t.CreatedAt,
	}
}

// NewTransactions maps a list of transactions.
func NewTransactions(ts []*transaction.Transaction) []Transaction {
	out := make([]Transaction, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewTransaction(t))
	}
	return out
}

// NewTransactionsWithUser maps the admin transaction listing.
func NewTransactionsWithUser(ts []*transaction.WithUser) []Transaction {
	out := make([]Transaction, 0, len(ts))
	for _, t := range ts {
		d := NewTransaction(&t.Transaction)
		d.UserName = t.UserName
		out = append(out, d)
	}
	return out
}

// Loan is the wire form of a loan application.
type Loan struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Type      string    `json:"type,omitempty"`
	Amount    float64   `json:"amount"`
	Term      int       `json:"term"`
	Purpose   string    `json:"purpose,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name,omitempty"`
}

// NewLoan maps a loan to its wire form.
func NewLoan(l *loan.Loan) Loan {
	return Loan{
		ID:        l.ID,
		UserID:    l.UserID,
		Type:      l.Type,
		Amount:    l.Amount.Float64(),
		Term:      l.TermMonths,
		Purpose:   l.Purpose,
		Status:    string(l.Status),
		CreatedAt: l.CreatedAt,
	}
}

// NewLoans maps a list of loans.
func NewLoans(ls []*loan.Loan) []Loan {
	out := make([]Loan, 0, len(ls))
	for _, l := range ls {
		out = append(out, NewLoan(l))
	}
	return out
}

// NewLoansWithUser maps the admin pending-loan listing.
func NewLoansWithUser(ls []*loan.WithUser) []Loan {
	out := make([]Loan, 0, len(ls))
	for _, l := range ls {
		d := NewLoan(&l.Loan)
		d.UserName = l.UserName
		out = append(out, d)
	}
	return out
}

// Activity is the wire form of an audit entry.
type Activity struct {
	ID         uuid.UUID `json:"id"`
	AdminID    uuid.UUID `json:"admin_id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   uuid.UUID `json:"target_id"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"created_at"`
	AdminName  string    `json:"admin_name"`
}

// NewActivities maps the audit log listing.
func NewActivities(as []*activity.WithAdmin) []Activity {
	out := make([]Activity, 0, len(as))
	for _, a := range as {
		out = append(out, Activity{
			ID:         a.ID,
			AdminID:    a.AdminID,
			Action:     a.Action,
			TargetType: a.TargetType,
			TargetID:   a.TargetID,
			Details:    a.Details,
			CreatedAt:  a.CreatedAt,
			AdminName:  a.AdminName,
		})
	}
	return out
}

// Ticket is the wire form of a support ticket.
type Ticket struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Priority  string    `json:"priority,omitempty"`
	Category  string    `json:"category,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserName  string    `json:"user_name,omitempty"`
}

// NewTicket maps a ticket to its wire form.
func NewTicket(t *support.Ticket) Ticket {
	return Ticket{
		ID:        t.ID,
		UserID:    t.UserID,
		Subject:   t.Subject,
		Message:   t.Message,
		Priority:  t.Priority,
		Category:  t.Category,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// NewTickets maps a list of tickets.
func NewTickets(ts []*support.Ticket) []Ticket {
	out := make([]Ticket, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewTicket(t))
	}
	return out
}

// NewTicketWithUser maps an admin ticket view.
func NewTicketWithUser(t *support.TicketWithUser) Ticket {
	d := NewTicket(&t.Ticket)
	d.UserName = t.UserName
	return d
}

// NewTicketsWithUser maps the admin ticket listing.
func NewTicketsWithUser(ts []*support.TicketWithUser) []Ticket {
	out := make([]Ticket, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewTicketWithUser(t))
	}
	return out
}

// TicketMessage is one conversation entry.
type TicketMessage struct {
	ID         uuid.UUID  `json:"id"`
	TicketID   uuid.UUID  `json:"ticket_id"`
	SenderType string     `json:"sender_type"`
	Message    string     `json:"message"`
	AdminID    *uuid.UUID `json:"admin_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UserName   string     `json:"user_name"`
}

// NewTicketMessages maps a conversation, oldest first.
func NewTicketMessages(ms []*support.MessageWithName) []TicketMessage {
	out := make([]TicketMessage, 0, len(ms))
	for _, m := range ms {
		out = append(out, TicketMessage{
			ID:         m.ID,
			TicketID:   m.TicketID,
			SenderType: string(m.Sender),
			Message:    m.Message.Message,
			AdminID:    m.AdminID,
			CreatedAt:  m.CreatedAt,
			UserName:   m.UserName,
		})
	}
	return out
}
