package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	log "github.com/charmbracelet/log"

	"github.com/goldenbridge/bankapi/infra"
	"github.com/goldenbridge/bankapi/pkg/config"
	adminsvc "github.com/goldenbridge/bankapi/pkg/service/admin"
	authsvc "github.com/goldenbridge/bankapi/pkg/service/auth"
	loansvc "github.com/goldenbridge/bankapi/pkg/service/loan"
	supportsvc "github.com/goldenbridge/bankapi/pkg/service/support"
	txsvc "github.com/goldenbridge/bankapi/pkg/service/transaction"
	"github.com/goldenbridge/bankapi/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.Default()

	cfg, err := config.Load(".env", logger)
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	db, err := infra.NewDBConnection(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer infra.CloseDB(db, logger)

	if err := infra.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	uow := infra.NewUoW(db)
	app := webapi.NewApp(cfg, webapi.Services{
		Auth:        authsvc.New(uow, cfg.Jwt, logger),
		Transaction: txsvc.New(uow, logger),
		Loan:        loansvc.New(uow, logger),
		Support:     supportsvc.New(uow, logger),
		Admin:       adminsvc.New(uow, logger),
	}, logger)

	// Shut the listener down cleanly on SIGINT/SIGTERM so in-flight units
	// of work finish before the DB handle closes.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "address", addr)
	return app.Listen(addr)
}
