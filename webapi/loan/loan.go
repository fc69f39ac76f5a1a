// Package loan exposes the customer loan endpoints. Applications stay
// pending until a back-office decision; the customer confirmation endpoint
// never succeeds.
package loan

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/goldenbridge/bankapi/pkg/domain/account"
	loansvc "github.com/goldenbridge/bankapi/pkg/service/loan"
	txsvc "github.com/goldenbridge/bankapi/pkg/service/transaction"
	"github.com/goldenbridge/bankapi/webapi/common"
	"github.com/goldenbridge/bankapi/webapi/dto"
	"github.com/goldenbridge/bankapi/webapi/middleware"
)

type ApplyInput struct {
	Type    string  `json:"type" validate:"required,max=50"`
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	Term    int     `json:"term" validate:"required,gt=0"`
	Purpose string  `json:"purpose" validate:"max=255"`
}

type VerifyOTPInput struct {
	OTP string `json:"otp" validate:"required"`
}

// Routes mounts the loan endpoints under /api/loans.
func Routes(app fiber.Router, svc *loansvc.Service, userGuard []fiber.Handler, logger *slog.Logger) {
	g := app.Group("/loans", userGuard...)
	g.Get("/", List(svc, logger))
	g.Get("/active", Active(svc, logger))
	g.Post("/apply", Apply(svc, logger))
	g.Post("/verify-otp", VerifyOTP(svc, logger))
}

func currentUser(c *fiber.Ctx) *account.Account {
	return c.Locals(middleware.LocalUser).(*account.Account)
}

// List returns the customer's loan applications, newest first.
func List(svc *loansvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ls, err := svc.List(c.UserContext(), currentUser(c).ID)
		if err != nil {
			return common.Internal(c, logger, err)
		}
		return c.JSON(dto.NewLoans(ls))
	}
}

// Active returns the customer's approved loans.
func Active(svc *loansvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ls, err := svc.Active(c.UserContext(), currentUser(c).ID)
		if err != nil {
			return common.Internal(c, logger, err)
		}
		return c.JSON(dto.NewLoans(ls))
	}
}

// Apply records a pending loan application and echoes the demo confirmation
// code. The balance is untouched until an operator approves.
func Apply(svc *loansvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ApplyInput](c)
		if err != nil {
			return nil
		}
		l, err := svc.Apply(c.UserContext(), currentUser(c).ID, loansvc.ApplyInput{
			Type:       input.Type,
			Amount:     input.Amount,
			TermMonths: input.Term,
			Purpose:    input.Purpose,
		})
		if err != nil {
			return common.DomainError(c, logger, err, "User not found")
		}
		return c.JSON(fiber.Map{
			"message": "Loan application submitted successfully. OTP verification required.",
			"loanId":  l.ID,
			"otp":     txsvc.DemoOTP,
		})
	}
}

// VerifyOTP rejects every confirmation attempt and directs the customer to
// support.
func VerifyOTP(svc *loansvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[VerifyOTPInput](c)
		if err != nil {
			return nil
		}
		err = svc.VerifyOTP(c.UserContext(), currentUser(c).ID, input.OTP)
		if err != nil {
			return common.DomainError(c, logger, err, "Loan not found")
		}
		return c.JSON(fiber.Map{"message": "Loan confirmed successfully"})
	}
}
