package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldenbridge/bankapi/internal/fixtures"
	"github.com/goldenbridge/bankapi/pkg/config"
	"github.com/goldenbridge/bankapi/pkg/domain"
	"github.com/goldenbridge/bankapi/pkg/domain/account"
	"github.com/goldenbridge/bankapi/pkg/domain/admin"
)

const testSecret = "testsecret"

func newTestService() (*Service, *fixtures.MemoryUoW) {
	uow := fixtures.NewMemoryUoW()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Jwt{Secret: testSecret, Expiry: 24 * time.Hour}
	return New(uow, cfg, logger), uow
}

func seedApprovedUser(t *testing.T, uow *fixtures.MemoryUoW, email, password string) *account.Account {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	a := account.New("Jane Doe", email, "555-0100", "1990-01-01", hash)
	a.Status = account.StatusApproved
	uow.SeedAccount(a)
	return a
}

func parseToken(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	return parsed.Claims.(jwt.MapClaims)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("password", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestRegister_CreatesPendingAccount(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Register(context.Background(), RegisterInput{
		FullName:    "Jane Doe",
		PhoneNumber: "555-0100",
		Email:       "jane@example.com",
		DateOfBirth: "1990-01-01",
		Password:    "password",
	})
	require.NoError(t, err)

	assert.Equal(t, account.StatusPending, a.Status)
	assert.Equal(t, int64(0), a.Balance.Cents())
	assert.NotEqual(t, "password", a.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, uow := newTestService()
	seedApprovedUser(t, uow, "jane@example.com", "password")

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Someone Else",
		Email:    "jane@example.com",
		Password: "password",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	svc, uow := newTestService()
	a := seedApprovedUser(t, uow, "jane@example.com", "password")

	got, token, err := svc.Login(context.Background(), "jane@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	claims := parseToken(t, token)
	assert.Equal(t, a.ID.String(), claims[UserClaim])
	assert.Nil(t, claims[AdminClaim])
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, uow := newTestService()
	seedApprovedUser(t, uow, "jane@example.com", "password")

	_, _, err := svc.Login(context.Background(), "jane@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService()
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_PendingAccount(t *testing.T) {
	svc, uow := newTestService()
	hash, err := HashPassword("password")
	require.NoError(t, err)
	a := account.New("Jane Doe", "jane@example.com", "555-0100", "1990-01-01", hash)
	uow.SeedAccount(a)

	_, _, err = svc.Login(context.Background(), "jane@example.com", "password")
	assert.ErrorIs(t, err, domain.ErrNotApproved)
}

func TestAdminLogin_Success(t *testing.T) {
	svc, uow := newTestService()
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	adm := admin.New("admin", "System Administrator", hash)
	uow.SeedAdmin(adm)

	got, token, err := svc.AdminLogin(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, adm.ID, got.ID)

	// Admin tokens carry the admin claim only; the two session kinds are
	// not interchangeable.
	claims := parseToken(t, token)
	assert.Equal(t, adm.ID.String(), claims[AdminClaim])
	assert.Nil(t, claims[UserClaim])
}

func TestAdminLogin_InvalidCredentials(t *testing.T) {
	svc, uow := newTestService()
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	uow.SeedAdmin(admin.New("admin", "System Administrator", hash))

	_, _, err = svc.AdminLogin(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.AdminLogin(context.Background(), "nobody", "admin123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc, uow := newTestService()
	a := seedApprovedUser(t, uow, "jane@example.com", "password")

	got, err := svc.UpdateProfile(context.Background(), a.ID, ProfileUpdate{
		FullName:    "Jane Q. Doe",
		Email:       "jane.q@example.com",
		PhoneNumber: "555-0199",
		Address:     "1 Main St",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Q. Doe", got.FullName)
	assert.Equal(t, "jane.q@example.com", got.Email)
	// Balance and status survive a profile edit.
	assert.Equal(t, int64(0), got.Balance.Cents())
	assert.Equal(t, account.StatusApproved, got.Status)
}

func TestUpdateProfile_NotFound(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.UpdateProfile(context.Background(), uuid.New(), ProfileUpdate{FullName: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	svc, uow := newTestService()
	a := seedApprovedUser(t, uow, "jane@example.com", "password")

	require.NoError(t, svc.ChangePassword(context.Background(), a.ID, "password", "newpassword"))

	_, _, err := svc.Login(context.Background(), "jane@example.com", "newpassword")
	assert.NoError(t, err)
	_, _, err = svc.Login(context.Background(), "jane@example.com", "password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	svc, uow := newTestService()
	a := seedApprovedUser(t, uow, "jane@example.com", "password")

	err := svc.ChangePassword(context.Background(), a.ID, "wrong", "newpassword")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "jane@example.com", "password")
	assert.NoError(t, err)
}
