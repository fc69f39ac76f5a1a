package infra

import (
	"time"

	"github.com/goldenbridge/bankapi/pkg/domain/account"
	"github.com/goldenbridge/bankapi/pkg/domain/activity"
	"github.com/goldenbridge/bankapi/pkg/domain/admin"
	"github.com/goldenbridge/bankapi/pkg/domain/loan"
	"github.com/goldenbridge/bankapi/pkg/domain/money"
	"github.com/goldenbridge/bankapi/pkg/domain/support"
	"github.com/goldenbridge/bankapi/pkg/domain/transaction"
	"github.com/google/uuid"
)

// User is the accounts table. Balance is stored as integer cents.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName     string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PhoneNumber  string
	DateOfBirth  string
	Address      string
	PasswordHash string `gorm:"not null"`
	BalanceCents int64  `gorm:"not null;default:0"`
	Status       string `gorm:"not null;default:'pending'"`
	IsFrozen     bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }

func (m *User) toDomain() *account.Account {
	return &account.Account{
		ID:           m.ID,
		FullName:     m.FullName,
		Email:        m.Email,
		PhoneNumber:  m.PhoneNumber,
		DateOfBirth:  m.DateOfBirth,
		Address:      m.Address,
		PasswordHash: m.PasswordHash,
		Balance:      money.FromCents(m.BalanceCents),
		Status:       account.Status(m.Status),
		IsFrozen:     m.IsFrozen,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func userModel(a *account.Account) *User {
	return &User{
		ID:           a.ID,
		FullName:     a.FullName,
		Email:        a.Email,
		PhoneNumber:  a.PhoneNumber,
		DateOfBirth:  a.DateOfBirth,
		Address:      a.Address,
		PasswordHash: a.PasswordHash,
		BalanceCents: a.Balance.Cents(),
		Status:       string(a.Status),
		IsFrozen:     a.IsFrozen,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// AdminUser is the back-office operators table.
type AdminUser struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	FullName     string
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (AdminUser) TableName() string { return "admin_users" }

func (m *AdminUser) toDomain() *admin.User {
	return &admin.User{
		ID:           m.ID,
		Username:     m.Username,
		FullName:     m.FullName,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

// Transaction is the transactions table.
type Transaction struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UniqueID         string    `gorm:"column:unique_id;uniqueIndex;not null"`
	UserID           uuid.UUID `gorm:"type:uuid;index;not null"`
	User             *User     `gorm:"constraint:OnDelete:CASCADE"`
	Type             string    `gorm:"not null"`
	AmountCents      int64     `gorm:"not null"`
	Status           string    `gorm:"not null;default:'pending_otp'"`
	Description      string
	RecipientName    string
	RecipientAccount string
	BankName         string
	RoutingNumber    string
	SwiftCode        string
	CreatedAt        time.Time
}

func (Transaction) TableName() string { return "transactions" }

func (m *Transaction) toDomain() *transaction.Transaction {
	return &transaction.Transaction{
		ID:        m.ID,
		Reference: m.UniqueID,
		UserID:    m.UserID,
		Type:      transaction.Type(m.Type),
		Amount:    money.FromCents(m.AmountCents),
		Status:    transaction.Status(m.Status),
		Details: transaction.Details{
			Description:      m.Description,
			RecipientName:    m.RecipientName,
			RecipientAccount: m.RecipientAccount,
			BankName:         m.BankName,
			RoutingNumber:    m.RoutingNumber,
			SwiftCode:        m.SwiftCode,
		},
		CreatedAt: m.CreatedAt,
	}
}

func transactionModel(t *transaction.Transaction) *Transaction {
	return &Transaction{
		ID:               t.ID,
		UniqueID:         t.Reference,
		UserID:           t.UserID,
		Type:             string(t.Type),
		AmountCents:      t.Amount.Cents(),
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

// Loan is the loans table.
type Loan struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE"`
	Type        string
	AmountCents int64 `gorm:"not null"`
	TermMonths  int   `gorm:"column:term"`
	Purpose     string
	Status      string `gorm:"not null;default:'pending'"`
	CreatedAt   time.Time
}

func (Loan) TableName() string { return "loans" }

func (m *Loan) toDomain() *loan.Loan {
	return &loan.Loan{
		ID:         m.ID,
		UserID:     m.UserID,
		Type:       m.Type,
		Amount:     money.FromCents(m.AmountCents),
		TermMonths: m.TermMonths,
		Purpose:    m.Purpose,
		Status:     loan.Status(m.Status),
		CreatedAt:  m.CreatedAt,
	}
}

func loanModel(l *loan.Loan) *Loan {
	return &Loan{
		ID:          l.ID,
		UserID:      l.UserID,
		Type:        l.Type,
		AmountCents: l.Amount.Cents(),
		TermMonths:  l.TermMonths,
		Purpose:     l.Purpose,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt,
	}
}

// Activity is the append-only audit table.
type Activity struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AdminID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Admin      *AdminUser
	Action     string    `gorm:"not null"`
	TargetType string    `gorm:"not null"`
	TargetID   uuid.UUID `gorm:"type:uuid"`
	Details    string
	CreatedAt  time.Time
}

func (Activity) TableName() string { return "activities" }

func activityModel(a *activity.Activity) *Activity {
	return &Activity{
		ID:         a.ID,
		AdminID:    a.AdminID,
		Action:     a.Action,
		TargetType: a.TargetType,
		TargetID:   a.TargetID,
		Details:    a.Details,
		CreatedAt:  a.CreatedAt,
	}
}

// SupportTicket is the support tickets table.
type SupportTicket struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE"`
	Subject   string    `gorm:"not null"`
	Message   string
	Priority  string
	Category  string
	Status    string `gorm:"not null;default:'open'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SupportTicket) TableName() string { return "support_tickets" }

func (m *SupportTicket) toDomain() *support.Ticket {
	return &support.Ticket{
		ID:        m.ID,
		UserID:    m.UserID,
		Subject:   m.Subject,
		Message:   m.Message,
		Priority:  m.Priority,
		Category:  m.Category,
		Status:    support.TicketStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ticketModel(t *support.Ticket) *SupportTicket {
	return &SupportTicket{
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

// TicketMessage is the ticket conversation table, append-only per ticket.
type TicketMessage struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TicketID   uuid.UUID      `gorm:"type:uuid;index;not null"`
	Ticket     *SupportTicket `gorm:"constraint:OnDelete:CASCADE"`
	SenderType string         `gorm:"not null"`
	Message    string         `gorm:"not null"`
	AdminID    *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt  time.Time
}

func (TicketMessage) TableName() string { return "ticket_messages" }

func (m *TicketMessage) toDomain() *support.Message {
	return &support.Message{
		ID:        m.ID,
		TicketID:  m.TicketID,
		Sender:    support.SenderType(m.SenderType),
		Message:   m.Message,
		AdminID:   m.AdminID,
		CreatedAt: m.CreatedAt,
	}
}

func messageModel(m *support.Message) *TicketMessage {
	return &TicketMessage{
		ID:         m.ID,
		TicketID:   m.TicketID,
		SenderType: string(m.Sender),
		Message:    m.Message,
		AdminID:    m.AdminID,
		CreatedAt:  m.CreatedAt,
	}
}
