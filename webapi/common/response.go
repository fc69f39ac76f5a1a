// Package common holds the response and binding helpers shared by all
// handler packages. Successful mutations answer {message, <entity>}; every
// error answers {"error": "<string>"} with a 4xx/5xx status.
package common

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/goldenbridge/bankapi/pkg/domain"
	"github.com/goldenbridge/bankapi/pkg/domain/money"
)

var validate = validator.New()

// Error writes the uniform error envelope.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// Internal logs an unexpected failure and answers a generic 500. No internal
// detail reaches the client.
func Internal(c *fiber.Ctx, logger *slog.Logger, err error) error {
	logger.Error("internal error", "path", c.Path(), "error", err)
	return Error(c, fiber.StatusInternalServerError, "Internal server error")
}

// DomainError maps a business-rule violation to its client-facing status and
// message. notFoundMsg names the missing entity ("Transaction not found",
// ...). Anything unrecognized is treated as an internal failure.
func DomainError(c *fiber.Ctx, logger *slog.Logger, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return Error(c, fiber.StatusNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrAccountFrozen):
		return Error(c, fiber.StatusBadRequest, "Your account is frozen. Please contact support.")
	case errors.Is(err, domain.ErrInsufficientFunds):
		return Error(c, fiber.StatusBadRequest, "Insufficient funds")
	case errors.Is(err, domain.ErrInvalidConfirmationCode):
		return Error(c, fiber.StatusBadRequest, "Invalid OTP")
	case errors.Is(err, domain.ErrConfirmationNotEnabled):
		return Error(c, fiber.StatusBadRequest,
			"The code you inserted is invalid. Please contact support to request your COT code.")
	case errors.Is(err, domain.ErrNotApproved):
		return Error(c, fiber.StatusBadRequest, "Your account is pending approval")
	case errors.Is(err, domain.ErrAlreadyExists):
		return Error(c, fiber.StatusBadRequest, "User already exists with this email")
	case errors.Is(err, money.ErrInvalidAmount):
		return Error(c, fiber.StatusBadRequest, "Invalid amount")
	default:
		return Internal(c, logger, err)
	}
}

// BindAndValidate parses the request body into T and validates it. On
// failure it writes the error response itself and returns the parse or
// validation error; the caller just returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		_ = Error(c, fiber.StatusBadRequest, "Invalid request body")
		return nil, err
	}
	if err := validate.Struct(&input); err != nil {
		_ = Error(c, fiber.StatusBadRequest, "Invalid request body")
		return nil, err
	}
	return &input, nil
}
