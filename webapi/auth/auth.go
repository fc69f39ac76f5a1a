// Package auth exposes registration, login and profile endpoints.
package auth

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/goldenbridge/bankapi/pkg/config"
	"github.com/goldenbridge/bankapi/pkg/domain"
	"github.com/goldenbridge/bankapi/pkg/domain/account"
	authsvc "github.com/goldenbridge/bankapi/pkg/service/auth"
	"github.com/goldenbridge/bankapi/webapi/common"
	"github.com/goldenbridge/bankapi/webapi/dto"
	"github.com/goldenbridge/bankapi/webapi/middleware"
)

type RegisterInput struct {
	FullName    string `json:"full_name" validate:"required,max=100"`
	PhoneNumber string `json:"phone_number" validate:"max=30"`
	Email       string `json:"email" validate:"required,email,max=100"`
	DateOfBirth string `json:"date_of_birth"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	FullName    string `json:"full_name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=100"`
	PhoneNumber string `json:"phone_number" validate:"max=30"`
	Address     string `json:"address" validate:"max=200"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
}

// Routes mounts the auth endpoints under /api/auth.
func Routes(app fiber.Router, svc *authsvc.Service, cfg config.Jwt, logger *slog.Logger) {
	g := app.Group("/auth")
	g.Post("/register", Register(svc, logger))
	g.Post("/login", Login(svc, logger))
	g.Post("/admin/login", AdminLogin(svc, logger))

	protected := g.Group("", middleware.JwtProtected(cfg), middleware.RequireUser(svc))
	protected.Get("/profile", Profile())
	protected.Put("/profile", UpdateProfile(svc, logger))
	protected.Post("/change-password", ChangePassword(svc, logger))
}

// Register creates a pending account. Approval is an admin action; until then
// the account cannot log in.
func Register(svc *authsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if err != nil {
			return nil
		}
		a, err := svc.Register(c.UserContext(), authsvc.RegisterInput{
			FullName:    input.FullName,
			PhoneNumber: input.PhoneNumber,
			Email:       input.Email,
			DateOfBirth: input.DateOfBirth,
			Password:    input.Password,
		})
		if err != nil {
			return common.DomainError(c, logger, err, "User not found")
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "User registered successfully. Waiting for admin approval.",
			"user":    dto.NewUser(a),
		})
	}
}

// Login authenticates a customer and issues a session token.
func Login(svc *authsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if err != nil {
			return nil
		}
		a, token, err := svc.Login(c.UserContext(), input.Email, input.Password)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidCredentials):
				return common.Error(c, fiber.StatusBadRequest, "Invalid email or password")
			case errors.Is(err, domain.ErrNotApproved):
				return common.Error(c, fiber.StatusBadRequest, "Your account is pending approval")
			default:
				return common.Internal(c, logger, err)
			}
		}
		return c.JSON(fiber.Map{
			"token": token,
			"user":  dto.NewUser(a),
		})
	}
}

// AdminLogin authenticates a back-office operator.
func AdminLogin(svc *authsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[AdminLoginInput](c)
		if err != nil {
			return nil
		}
		adm, token, err := svc.AdminLogin(c.UserContext(), input.Username, input.Password)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				return common.Error(c, fiber.StatusBadRequest, "Invalid username or password")
			}
			return common.Internal(c, logger, err)
		}
		return c.JSON(fiber.Map{
			"token": token,
			"admin": dto.NewAdmin(adm),
		})
	}
}

// Profile returns the authenticated customer, already hydrated by the guard.
func Profile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals(middleware.LocalUser).(*account.Account)
		return c.JSON(dto.NewUser(user))
	}
}

// UpdateProfile edits contact details. Balance and status are untouchable
// from here.
func UpdateProfile(svc *authsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateProfileInput](c)
		if err != nil {
			return nil
		}
		user := c.Locals(middleware.LocalUser).(*account.Account)
		updated, err := svc.UpdateProfile(c.UserContext(), user.ID, authsvc.ProfileUpdate{
			FullName:    input.FullName,
			Email:       input.Email,
			PhoneNumber: input.PhoneNumber,
			Address:     input.Address,
		})
		if err != nil {
			return common.DomainError(c, logger, err, "User not found")
		}
		return c.JSON(fiber.Map{
			"message": "Profile updated successfully",
			"user":    dto.NewUser(updated),
		})
	}
}

// ChangePassword rotates the password after checking the current one.
func ChangePassword(svc *authsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ChangePasswordInput](c)
		if err != nil {
			return nil
		}
		user := c.Locals(middleware.LocalUser).(*account.Account)
		err = svc.ChangePassword(c.UserContext(), user.ID, input.CurrentPassword, input.NewPassword)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				return common.Error(c, fiber.StatusBadRequest, "Current password is incorrect")
			}
			return common.DomainError(c, logger, err, "User not found")
		}
		return c.JSON(fiber.Map{"message": "Password changed successfully"})
	}
}
