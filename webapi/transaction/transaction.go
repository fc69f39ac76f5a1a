// Package transaction exposes the customer transaction endpoints. Creation
// leaves the transaction awaiting confirmation; the confirmation endpoint
// itself never succeeds, so pending transactions only resolve through the
// back office.
package transaction

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/goldenbridge/bankapi/pkg/domain/account"
	"github.com/goldenbridge/bankapi/pkg/domain/transaction"
	txsvc "github.com/goldenbridge/bankapi/pkg/service/transaction"
	"github.com/goldenbridge/bankapi/webapi/common"
	"github.com/goldenbridge/bankapi/webapi/dto"
	"github.com/goldenbridge/bankapi/webapi/middleware"
)

type CreateInput struct {
	Type             string  `json:"type" validate:"required,oneof=deposit withdrawal transfer"`
	Amount           float64 `json:"amount" validate:"required,gt=0"`
	Description      string  `json:"description" validate:"max=255"`
	RecipientName    string  `json:"recipient_name" validate:"max=100"`
	RecipientAccount string  `json:"recipient_account" validate:"max=50"`
	BankName         string  `json:"bank_name" validate:"max=100"`
	RoutingNumber    string  `json:"routing_number" validate:"max=20"`
	SwiftCode        string  `json:"swift_code" validate:"max=20"`
}

type VerifyOTPInput struct {
	OTP string `json:"otp" validate:"required"`
}

// Routes mounts the transaction endpoints under /api/transactions. All of
// them require an approved customer session.
func Routes(app fiber.Router, svc *txsvc.Service, userGuard []fiber.Handler, logger *slog.Logger) {
	g := app.Group("/transactions", userGuard...)
	g.Get("/", List(svc, logger))
	g.Post("/", Create(svc, logger))
	g.Get("/recent", Recent(svc, logger))
	g.Get("/summary", Summary(svc, logger))
	g.Get("/:id/receipt", Receipt(svc, logger))
	g.Post("/:id/verify-otp", VerifyOTP(svc, logger))
}

func currentUser(c *fiber.Ctx) *account.Account {
	return c.Locals(middleware.LocalUser).(*account.Account)
}

// List returns the customer's transactions, newest first.
func List(svc *txsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ts, err := svc.List(c.UserContext(), currentUser(c).ID)
		if err != nil {
			return common.Internal(c, logger, err)
		}
		return c.JSON(dto.NewTransactions(ts))
	}
}

// Recent returns the ten most recent transactions.
func Recent(svc *txsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ts, err := svc.Recent(c.UserContext(), currentUser(c).ID)
		if err != nil {
			return common.Internal(c, logger, err)
		}
		return c.JSON(dto.NewTransactions(ts))
	}
}

// Create records a transaction awaiting confirmation. The demo confirmation
// code is echoed in the response; no balance changes here.
func Create(svc *txsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateInput](c)
		if err != nil {
			return nil
		}
		t, err := svc.Create(c.UserContext(), currentUser(c).ID, txsvc.CreateInput{
			Type:   input.Type,
			Amount: input.Amount,
			Details: transaction.Details{
				Description:      input.Description,
				RecipientName:    input.RecipientName,
				RecipientAccount: input.RecipientAccount,
				BankName:         input.BankName,
				RoutingNumber:    input.RoutingNumber,
				SwiftCode:        input.SwiftCode,
			},
		})
		if err != nil {
			return common.DomainError(c, logger, err, "User not found")
		}
		return c.JSON(fiber.Map{
			"message":       "Transaction created successfully. OTP verification required.",
			"transactionId": t.ID,
			"uniqueId":      t.Reference,
			"otp":           txsvc.DemoOTP,
		})
	}
}

// VerifyOTP is the customer confirmation endpoint. It validates the code
// format and ownership, then rejects the code and directs the customer to
// support.
func VerifyOTP(svc *txsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.Error(c, fiber.StatusNotFound, "Transaction not found")
		}
		input, err := common.BindAndValidate[VerifyOTPInput](c)
		if err != nil {
			return nil
		}
		err = svc.VerifyOTP(c.UserContext(), currentUser(c).ID, id, input.OTP)
		if err != nil {
			return common.DomainError(c, logger, err, "Transaction not found")
		}
		// Unreachable today: confirmation always fails upstream.
		return c.JSON(fiber.Map{"message": "Transaction completed successfully"})
	}
}

// Receipt returns a single transaction, owner-scoped.
func Receipt(svc *txsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.Error(c, fiber.StatusNotFound, "Transaction not found")
		}
		t, err := svc.Receipt(c.UserContext(), currentUser(c).ID, id)
		if err != nil {
			return common.DomainError(c, logger, err, "Transaction not found")
		}
		return c.JSON(dto.NewTransaction(t))
	}
}

// Summary returns total approved deposits and withdrawals.
func Summary(svc *txsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := svc.Summary(c.UserContext(), currentUser(c).ID)
		if err != nil {
			return common.Internal(c, logger, err)
		}
		return c.JSON(fiber.Map{
			"total_deposits":    s.TotalDeposits.Float64(),
			"total_withdrawals": s.TotalWithdrawals.Float64(),
		})
	}
}
