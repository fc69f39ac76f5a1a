// bankctl is the operator bootstrap tool: it creates back-office accounts
// and resets their passwords directly against the database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/goldenbridge/bankapi/infra"
	"github.com/goldenbridge/bankapi/pkg/config"
	"github.com/goldenbridge/bankapi/pkg/domain/admin"
	"github.com/goldenbridge/bankapi/pkg/repository"
	"github.com/goldenbridge/bankapi/pkg/service/auth"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg, err := config.Load(".env", logger)
	if err != nil {
		fail("loading configuration: %v", err)
	}
	db, err := infra.NewDBConnection(cfg.DB)
	if err != nil {
		fail("connecting to database: %v", err)
	}
	defer infra.CloseDB(db, logger)
	if err := infra.AutoMigrate(db); err != nil {
		fail("running migrations: %v", err)
	}
	uow := infra.NewUoW(db)

	switch os.Args[1] {
	case "create":
		if len(os.Args) < 4 {
			fmt.Println("Usage: bankctl create <username> <full name>")
			return
		}
		createAdmin(uow, os.Args[2], os.Args[3])
	case "reset-password":
		if len(os.Args) < 3 {
			fmt.Println("Usage: bankctl reset-password <username>")
			return
		}
		resetPassword(uow, os.Args[2])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: bankctl <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  create <username> <full name>   create a back-office account")
	fmt.Println("  reset-password <username>       reset an account's password")
}

func createAdmin(uow repository.UnitOfWork, username, fullName string) {
	password := promptPassword()
	hash, err := auth.HashPassword(password)
	if err != nil {
		fail("hashing password: %v", err)
	}
	u := admin.New(username, fullName, hash)
	if err := uow.Admins().Create(context.Background(), u); err != nil {
		fail("creating admin: %v", err)
	}
	color.Green("Admin account created successfully")
	fmt.Println("Username:", username)
}

func resetPassword(uow repository.UnitOfWork, username string) {
	ctx := context.Background()
	u, err := uow.Admins().GetByUsername(ctx, username)
	if err != nil {
		fail("looking up admin %q: %v", username, err)
	}
	password := promptPassword()
	hash, err := auth.HashPassword(password)
	if err != nil {
		fail("hashing password: %v", err)
	}
	if err := uow.Admins().UpdatePassword(ctx, u.ID, hash); err != nil {
		fail("updating password: %v", err)
	}
	color.Green("Admin password reset successfully")
	fmt.Println("Username:", username)
}

func promptPassword() string {
	fmt.Print("New password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fail("reading password: %v", err)
	}
	if len(raw) < 6 {
		fail("password must be at least 6 characters")
	}
	return string(raw)
}

func fail(format string, args ...any) {
	color.Red("Error: "+format, args...)
	os.Exit(1)
}
