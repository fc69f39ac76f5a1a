// Package support exposes the customer support-ticket endpoints.
package support

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/goldenbridge/bankapi/pkg/domain/account"
	supportsvc "github.com/goldenbridge/bankapi/pkg/service/support"
	"github.com/goldenbridge/bankapi/webapi/common"
	"github.com/goldenbridge/bankapi/webapi/dto"
	"github.com/goldenbridge/bankapi/webapi/middleware"
)

type CreateInput struct {
	Subject  string `json:"subject" validate:"required,max=255"`
	Message  string `json:"message" validate:"required"`
	Priority string `json:"priority" validate:"max=20"`
	Category string `json:"category" validate:"max=50"`
}

type ResponseInput struct {
	Message string `json:"message" validate:"required"`
}

// Routes mounts the support endpoints under /api/support.
func Routes(app fiber.Router, svc *supportsvc.Service, userGuard []fiber.Handler, logger *slog.Logger) {
	g := app.Group("/support", userGuard...)
	g.Get("/", List(svc, logger))
	g.Post("/", Create(svc, logger))
	g.Post("/:id/response", AddResponse(svc, logger))
	g.Get("/:id/conversation", Conversation(svc, logger))
}

func currentUser(c *fiber.Ctx) *account.Account {
	return c.Locals(middleware.LocalUser).(*account.Account)
}

// Create opens a new support ticket.
func Create(svc *supportsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateInput](c)
		if err != nil {
			return nil
		}
		t, err := svc.CreateTicket(c.UserContext(), currentUser(c).ID, supportsvc.CreateInput{
			Subject:  input.Subject,
			Message:  input.Message,
			Priority: input.Priority,
			Category: input.Category,
		})
		if err != nil {
			return common.Internal(c, logger, err)
		}
		return c.JSON(fiber.Map{
			"message": "Support ticket created successfully",
			"ticket":  dto.NewTicket(t),
		})
	}
}

// List returns the customer's tickets, newest first.
func List(svc *supportsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ts, err := svc.ListTickets(c.UserContext(), currentUser(c).ID)
		if err != nil {
			return common.Internal(c, logger, err)
		}
		return c.JSON(dto.NewTickets(ts))
	}
}

// AddResponse appends a customer message to one of their tickets and reopens
// it.
func AddResponse(svc *supportsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.Error(c, fiber.StatusNotFound, "Ticket not found")
		}
		input, err := common.BindAndValidate[ResponseInput](c)
		if err != nil {
			return nil
		}
		t, err := svc.AddResponse(c.UserContext(), currentUser(c).ID, id, input.Message)
		if err != nil {
			return common.DomainError(c, logger, err, "Ticket not found")
		}
		return c.JSON(fiber.Map{
			"message": "Response added successfully",
			"ticket":  dto.NewTicket(t),
		})
	}
}

// Conversation returns the full message thread, oldest first.
func Conversation(svc *supportsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.Error(c, fiber.StatusNotFound, "Ticket not found")
		}
		ms, err := svc.Conversation(c.UserContext(), id)
		if err != nil {
			return common.DomainError(c, logger, err, "Ticket not found")
		}
		return c.JSON(dto.NewTicketMessages(ms))
	}
}
