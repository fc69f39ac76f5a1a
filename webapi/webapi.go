// Package webapi assembles the HTTP application: middleware, route groups
// and the process-wide error handler.
package webapi

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/goldenbridge/bankapi/pkg/config"
	adminsvc "github.com/goldenbridge/bankapi/pkg/service/admin"
	authsvc "github.com/goldenbridge/bankapi/pkg/service/auth"
	loansvc "github.com/goldenbridge/bankapi/pkg/service/loan"
	supportsvc "github.com/goldenbridge/bankapi/pkg/service/support"
	txsvc "github.com/goldenbridge/bankapi/pkg/service/transaction"
	adminapi "github.com/goldenbridge/bankapi/webapi/admin"
	authapi "github.com/goldenbridge/bankapi/webapi/auth"
	"github.com/goldenbridge/bankapi/webapi/common"
	loanapi "github.com/goldenbridge/bankapi/webapi/loan"
	"github.com/goldenbridge/bankapi/webapi/middleware"
	supportapi "github.com/goldenbridge/bankapi/webapi/support"
	txapi "github.com/goldenbridge/bankapi/webapi/transaction"
)

// Services bundles everything the route groups need.
type Services struct {
	Auth        *authsvc.Service
	Transaction *txsvc.Service
	Loan        *loansvc.Service
	Support     *supportsvc.Service
	Admin       *adminsvc.Service
}

// NewApp builds the fiber application with every route mounted under /api.
func NewApp(cfg *config.App, svcs Services, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return common.Error(c, e.Code, e.Message)
			}
			return common.Internal(c, logger, err)
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.Server.RateLimit,
		Expiration: cfg.Server.RateWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.Error(c, fiber.StatusTooManyRequests,
				"Too many requests, please try again later")
		},
	}))

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	userGuard := []fiber.Handler{
		middleware.JwtProtected(cfg.Jwt),
		middleware.RequireUser(svcs.Auth),
	}
	adminGuard := []fiber.Handler{
		middleware.JwtProtected(cfg.Jwt),
		middleware.RequireAdmin(svcs.Auth),
	}

	authapi.Routes(api, svcs.Auth, cfg.Jwt, logger)
	txapi.Routes(api, svcs.Transaction, userGuard, logger)
	loanapi.Routes(api, svcs.Loan, userGuard, logger)
	supportapi.Routes(api, svcs.Support, userGuard, logger)
	adminapi.Routes(api, svcs.Admin, adminGuard, logger)

	return app
}
