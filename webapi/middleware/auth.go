// Package middleware provides the JWT guards shared by the protected route
// groups. Customer and operator tokens carry disjoint claims, so a token of
// one kind never unlocks routes of the other.
package middleware

import (
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/goldenbridge/bankapi/pkg/config"
	"github.com/goldenbridge/bankapi/pkg/service/auth"
	"github.com/goldenbridge/bankapi/webapi/common"
)

// Locals keys populated by the guards below.
const (
	LocalUser  = "currentUser"
	LocalAdmin = "currentAdmin"
)

// JwtProtected parses and verifies the bearer token, leaving the parsed
// token in c.Locals("user") for the role guards.
func JwtProtected(cfg config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if strings.Contains(err.Error(), "missing or malformed") {
		return common.Error(c, fiber.StatusUnauthorized, "Access token required")
	}
	return common.Error(c, fiber.StatusForbidden, "Invalid token")
}

// claimID extracts a UUID claim from the verified token.
func claimID(c *fiber.Ctx, claim string) (uuid.UUID, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, false
	}
	raw, ok := claims[claim].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// RequireUser resolves the customer behind a verified token and rejects
// accounts that are still pending. The loaded account is stored under
// LocalUser for the handlers.
func RequireUser(authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := claimID(c, auth.UserClaim)
		if !ok {
			return common.Error(c, fiber.StatusForbidden, "Invalid token")
		}
		user, err := authSvc.CurrentUser(c.UserContext(), id)
		if err != nil {
			return common.Error(c, fiber.StatusUnauthorized, "User not found")
		}
		if !user.IsApproved() {
			return common.Error(c, fiber.StatusForbidden, "Account not approved")
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// RequireAdmin resolves the operator behind a verified token. Customer
// tokens are rejected here even though they verify.
func RequireAdmin(authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := claimID(c, auth.AdminClaim)
		if !ok {
			return common.Error(c, fiber.StatusForbidden, "Invalid admin token")
		}
		adm, err := authSvc.CurrentAdmin(c.UserContext(), id)
		if err != nil {
			return common.Error(c, fiber.StatusUnauthorized, "Admin not found")
		}
		c.Locals(LocalAdmin, adm)
		return c.Next()
	}
}
