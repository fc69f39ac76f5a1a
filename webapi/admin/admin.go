// Package admin exposes the back-office console endpoints. Every mutation
// here is performed by an authenticated operator and leaves exactly one
// activity entry behind.
package admin

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	domainadmin "github.com/goldenbridge/bankapi/pkg/domain/admin"
	"github.com/goldenbridge/bankapi/pkg/domain/support"
	"github.com/goldenbridge/bankapi/pkg/domain/transaction"
	adminsvc "github.com/goldenbridge/bankapi/pkg/service/admin"
	"github.com/goldenbridge/bankapi/webapi/common"
	"github.com/goldenbridge/bankapi/webapi/dto"
	"github.com/goldenbridge/bankapi/webapi/middleware"
)

type FreezeInput struct {
	IsFrozen *bool `json:"is_frozen" validate:"required"`
}

type BalanceInput struct {
	Balance *float64 `json:"balance" validate:"required,gte=0"`
}

type CreateTransactionInput struct {
	UserID           uuid.UUID `json:"user_id" validate:"required"`
	Type             string    `json:"type" validate:"required,oneof=deposit withdrawal transfer"`
	Amount           float64   `json:"amount" validate:"required,gt=0"`
	Description      string    `json:"description" validate:"max=255"`
	RecipientName    string    `json:"recipient_name" validate:"max=100"`
	RecipientAccount string    `json:"recipient_account" validate:"max=50"`
}

type RespondInput struct {
	Response string `json:"response" validate:"required"`
	Status   string `json:"status" validate:"required,oneof=open pending resolved"`
}

// Routes mounts the console under /api/admin, behind the admin guard.
func Routes(app fiber.Router, svc *adminsvc.Service, adminGuard []fiber.Handler, logger *slog.Logger) {
	g := app.Group("/admin", adminGuard...)

	g.Get("/users", ListUsers(svc, logger))
	g.Put("/users/:id/approve", ApproveUser(svc, logger))
	g.Delete("/users/:id/reject", RejectUser(svc, logger))
	g.Put("/users/:id/freeze", FreezeUser(svc, logger))
	g.Put("/users/:id/balance", UpdateBalance(svc, logger))

	g.Get("/transactions/all", ListTransactions(svc, logger))
	g.Post("/transactions/create", CreateTransaction(svc, logger))
	g.Put("/transactions/:id/approve", DecideTransaction(svc, adminsvc.Approve, logger))
	g.Put("/transactions/:id/reject", DecideTransaction(svc, adminsvc.Reject, logger))

	g.Get("/loans/pending", PendingLoans(svc, logger))
	g.Put("/loans/:id/approve", DecideLoan(svc, adminsvc.Approve, logger))
	g.Put("/loans/:id/reject", DecideLoan(svc, adminsvc.Reject, logger))

	g.Get("/support-tickets", ListTickets(svc, logger))
	g.Get("/support-tickets/:id", GetTicket(svc, logger))
	g.Get("/support-tickets/:id/conversation", TicketConversation(svc, logger))
	g.Put("/support-tickets/:id/respond", RespondToTicket(svc, logger))

	g.Get("/activities", Activities(svc, logger))
}

func currentAdmin(c *fiber.Ctx) *domainadmin.User {
	return c.Locals(middleware.LocalAdmin).(*domainadmin.User)
}

func paramID(c *fiber.Ctx, notFoundMsg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = common.Error(c, fiber.StatusNotFound, notFoundMsg)
		return uuid.Nil, false
	}
	return id, true
}

// ListUsers returns every registered account.
func ListUsers(svc *adminsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.ListUsers(c.UserContext())
		if err != nil {
			return common.Internal(c, logger, err)
		}
		return c.JSON(dto.NewUsers(users))
	}
}

// ApproveUser activates a pending registration.
func ApproveUser(svc *adminsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "User not found")
		if !ok {
			return nil
		}
		a, err := svc.ApproveUser(c.UserContext(), currentAdmin(c).ID, id)
		if err != nil {
			return common.DomainError(c, logger, err, "User not found")
		}
		return c.JSON(fiber.Map{
			"message": "User approved successfully",
			"user":    dto.NewUser(a),
		})
	}
}

// RejectUser permanently deletes the account and everything hanging off it.
func RejectUser(svc *adminsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "User not found")
		if !ok {
			return nil
		}
		if err := svc.RejectUser(c.UserContext(), currentAdmin(c).ID, id); err != nil {
			return common.DomainError(c, logger, err, "User not found")
		}
		return c.JSON(fiber.Map{"message": "User rejected and deleted successfully"})
	}
}

// FreezeUser sets the frozen flag unconditionally; repeating a state is
// allowed and still audited.
func FreezeUser(svc *adminsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "User not found")
		if !ok {
			return nil
		}
		input, err := common.BindAndValidate[FreezeInput](c)
		if err != nil {
			return nil
		}
		a, err := svc.SetFrozen(c.UserContext(), currentAdmin(c).ID, id, *input.IsFrozen)
		if err != nil {
			return common.DomainError(c, logger, err, "User not found")
		}
		msg := "User account unfrozen successfully"
		if *input.IsFrozen {
			msg = "User account frozen successfully"
		}
		return c.JSON(fiber.Map{
			"message": msg,
			"user":    dto.NewUser(a),
		})
	}
}

// UpdateBalance overwrites the balance without any funds check.
func UpdateBalance(svc *adminsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "User not found")
		if !ok {
			return nil
		}
		input, err := common.BindAndValidate[BalanceInput](c)
		if err != nil {
			return nil
		}
		a, err := svc.SetBalance(c.UserContext(), currentAdmin(c).ID, id, *input.Balance)
		if err != nil {
			return common.DomainError(c, logger, err, "User not found")
		}
		return c.JSON(fiber.Map{
			"message": "Balance updated successfully",
			"user":    dto.NewUser(a),
		})
	}
}

// ListTransactions returns every transaction with the owner's name.
func ListTransactions(svc *adminsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ts, err := svc.ListTransactions(c.UserContext())
		if err != nil {
			return common.Internal(c, logger, err)
		}
		return c.JSON(dto.NewTransactionsWithUser(ts))
	}
}

// CreateTransaction records an operator-originated transaction. It is born
// approved and the balance moves immediately, unlike the customer path.
func CreateTransaction(svc *adminsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateTransactionInput](c)
		if err != nil {
			return nil
		}
		t, err := svc.CreateTransaction(c.UserContext(), currentAdmin(c).ID, adminsvc.CreateTransactionInput{
			UserID: input.UserID,
			Type:   input.Type,
			Amount: input.Amount,
			Details: transaction.Details{
				Description:      input.Description,
				RecipientName:    input.RecipientName,
				RecipientAccount: input.RecipientAccount,
			},
		})
		if err != nil {
			return common.DomainError(c, logger, err, "User not found")
		}
		return c.JSON(fiber.Map{
			"message":       "Transaction created successfully",
			"transactionId": t.ID,
			"uniqueId":      t.Reference,
		})
	}
}

// DecideTransaction approves or rejects a pending transaction. Only a
// pending transaction can be decided; anything else reads as not found.
func DecideTransaction(svc *adminsvc.Service, decision adminsvc.Decision, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "Transaction not found")
		if !ok {
			return nil
		}
		if err := svc.DecideTransaction(c.UserContext(), currentAdmin(c).ID, id, decision); err != nil {
			return common.DomainError(c, logger, err, "Transaction not found")
		}
		msg := "Transaction rejected successfully"
		if decision == adminsvc.Approve {
			msg = "Transaction approved successfully"
		}
		return c.JSON(fiber.Map{"message": msg})
	}
}

// PendingLoans returns every loan awaiting a decision.
func PendingLoans(svc *adminsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ls, err := svc.PendingLoans(c.UserContext())
		if err != nil {
			return common.Internal(c, logger, err)
		}
		return c.JSON(dto.NewLoansWithUser(ls))
	}
}

// DecideLoan approves or rejects a pending loan. Approval credits the
// account once; a second decision reads as not found.
func DecideLoan(svc *adminsvc.Service, decision adminsvc.Decision, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "Loan not found")
		if !ok {
			return nil
		}
		if err := svc.DecideLoan(c.UserContext(), currentAdmin(c).ID, id, decision); err != nil {
			return common.DomainError(c, logger, err, "Loan not found")
		}
		msg := "Loan rejected successfully"
		if decision == adminsvc.Approve {
			msg = "Loan approved successfully"
		}
		return c.JSON(fiber.Map{"message": msg})
	}
}

// ListTickets returns every support ticket with the customer's name.
func ListTickets(svc *adminsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ts, err := svc.ListTickets(c.UserContext())
		if err != nil {
			return common.Internal(c, logger, err)
		}
		return c.JSON(dto.NewTicketsWithUser(ts))
	}
}

// GetTicket returns a single ticket.
func GetTicket(svc *adminsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "Ticket not found")
		if !ok {
			return nil
		}
		t, err := svc.GetTicket(c.UserContext(), id)
		if err != nil {
			return common.DomainError(c, logger, err, "Ticket not found")
		}
		return c.JSON(dto.NewTicketWithUser(t))
	}
}

// TicketConversation returns the full message thread, oldest first.
func TicketConversation(svc *adminsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "Ticket not found")
		if !ok {
			return nil
		}
		ms, err := svc.TicketConversation(c.UserContext(), id)
		if err != nil {
			return common.DomainError(c, logger, err, "Ticket not found")
		}
		return c.JSON(dto.NewTicketMessages(ms))
	}
}

// RespondToTicket appends an operator reply and moves the ticket to the
// given status.
func RespondToTicket(svc *adminsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "Ticket not found")
		if !ok {
			return nil
		}
		input, err := common.BindAndValidate[RespondInput](c)
		if err != nil {
			return nil
		}
		t, err := svc.RespondToTicket(c.UserContext(), currentAdmin(c).ID, id,
			input.Response, support.TicketStatus(input.Status))
		if err != nil {
			return common.DomainError(c, logger, err, "Ticket not found")
		}
		return c.JSON(fiber.Map{
			"message": "Response sent successfully",
			"ticket":  dto.NewTicket(t),
		})
	}
}

// Activities returns the audit log, newest first.
func Activities(svc *adminsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		as, err := svc.Activities(c.UserContext())
		if err != nil {
			return common.Internal(c, logger, err)
		}
		return c.JSON(dto.NewActivities(as))
	}
}
