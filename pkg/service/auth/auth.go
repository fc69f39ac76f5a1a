// Package auth implements the credential boundary: registration, user and
// admin login, profile management, and session token issuance. User and admin
// sessions are disjoint token kinds; the claims key decides which guard
// accepts a token.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goldenbridge/bankapi/pkg/config"
	"github.com/goldenbridge/bankapi/pkg/domain"
	"github.com/goldenbridge/bankapi/pkg/domain/account"
	"github.com/goldenbridge/bankapi/pkg/domain/admin"
	"github.com/goldenbridge/bankapi/pkg/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Claim keys. A user token never carries AdminClaim and vice versa.
const (
	UserClaim  = "user_id"
	AdminClaim = "admin_id"
)

// Service provides authentication and profile operations.
type Service struct {
	uow    repository.UnitOfWork
	cfg    config.Jwt
	logger *slog.Logger
}

// New creates the auth service.
func New(uow repository.UnitOfWork, cfg config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	FullName    string
	PhoneNumber string
	Email       string
	DateOfBirth string
	Password    string
}

// Register creates a pending account with a zero balance. Duplicate emails
// fail with ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, in RegisterInput) (a *account.Account, err error) {
	log := s.logger.With("context", "Register", "email", in.Email)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		_, err := uow.Accounts().GetByEmail(ctx, in.Email)
		if err == nil {
			return domain.ErrAlreadyExists
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		hash, err := HashPassword(in.Password)
		if err != nil {
			return err
		}
		a = account.New(in.FullName, in.Email, in.PhoneNumber, in.DateOfBirth, hash)
		return uow.Accounts().Create(ctx, a)
	})
	if err != nil {
		log.Error("registration failed", "error", err)
		return nil, err
	}
	log.Info("account registered, awaiting approval", "userID", a.ID)
	return a, nil
}

// Login authenticates a customer and issues a user session token. Unknown
// emails and wrong passwords fail identically; pending accounts fail with
// ErrNotApproved.
func (s *Service) Login(ctx context.Context, email, password string) (*account.Account, string, error) {
	log := s.logger.With("context", "Login", "email", email)
	a, err := s.uow.Accounts().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !a.IsApproved() {
		log.Warn("login rejected, account pending approval")
		return nil, "", domain.ErrNotApproved
	}
	if !CheckPasswordHash(password, a.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}
	token, err := s.generateToken(UserClaim, a.ID)
	if err != nil {
		return nil, "", err
	}
	log.Info("login successful", "userID", a.ID)
	return a, token, nil
}

// AdminLogin authenticates a back-office operator and issues an admin
// session token.
func (s *Service) AdminLogin(ctx context.Context, username, password string) (*admin.User, string, error) {
	log := s.logger.With("context", "AdminLogin", "username", username)
	u, err := s.uow.Admins().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !CheckPasswordHash(password, u.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}
	token, err := s.generateToken(AdminClaim, u.ID)
	if err != nil {
		return nil, "", err
	}
	log.Info("admin login successful", "adminID", u.ID)
	return u, token, nil
}

// CurrentUser loads the account behind a user session token.
func (s *Service) CurrentUser(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return s.uow.Accounts().Get(ctx, id)
}

// CurrentAdmin loads the operator behind an admin session token.
func (s *Service) CurrentAdmin(ctx context.Context, id uuid.UUID) (*admin.User, error) {
	return s.uow.Admins().Get(ctx, id)
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	FullName    string
	Email       string
	PhoneNumber string
	Address     string
}

// UpdateProfile edits the customer's contact details. It never touches the
// balance, status, or frozen flag.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileUpdate) (a *account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err = uow.Accounts().GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		a.FullName = in.FullName
		a.Email = in.Email
		a.PhoneNumber = in.PhoneNumber
		a.Address = in.Address
		return uow.Accounts().Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ChangePassword rotates the customer's password after verifying the current
// one.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err := uow.Accounts().GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if !CheckPasswordHash(current, a.PasswordHash) {
			return domain.ErrInvalidCredentials
		}
		hash, err := HashPassword(next)
		if err != nil {
			return err
		}
		a.PasswordHash = hash
		return uow.Accounts().Update(ctx, a)
	})
}

func (s *Service) generateToken(claimKey string, id uuid.UUID) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims[claimKey] = id.String()
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	return token.SignedString([]byte(s.cfg.Secret))
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches the bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
