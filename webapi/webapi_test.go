package webapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldenbridge/bankapi/internal/fixtures"
	"github.com/goldenbridge/bankapi/pkg/config"
	"github.com/goldenbridge/bankapi/pkg/domain/account"
	"github.com/goldenbridge/bankapi/pkg/domain/admin"
	"github.com/goldenbridge/bankapi/pkg/domain/money"
	adminsvc "github.com/goldenbridge/bankapi/pkg/service/admin"
	authsvc "github.com/goldenbridge/bankapi/pkg/service/auth"
	loansvc "github.com/goldenbridge/bankapi/pkg/service/loan"
	supportsvc "github.com/goldenbridge/bankapi/pkg/service/support"
	txsvc "github.com/goldenbridge/bankapi/pkg/service/transaction"
	"github.com/goldenbridge/bankapi/webapi"
)

type testEnv struct {
	app  *fiber.App
	uow  *fixtures.MemoryUoW
	auth *authsvc.Service
}

func newTestEnv() *testEnv {
	uow := fixtures.NewMemoryUoW()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.App{
		Jwt: config.Jwt{Secret: "testsecret", Expiry: time.Hour},
		Server: config.Server{
			RateLimit:      1000,
			RateWindow:     time.Minute,
			AllowedOrigins: "*",
		},
	}
	auth := authsvc.New(uow, cfg.Jwt, logger)
	app := webapi.NewApp(cfg, webapi.Services{
		Auth:        auth,
		Transaction: txsvc.New(uow, logger),
		Loan:        loansvc.New(uow, logger),
		Support:     supportsvc.New(uow, logger),
		Admin:       adminsvc.New(uow, logger),
	}, logger)
	return &testEnv{app: app, uow: uow, auth: auth}
}

func (e *testEnv) seedUser(t *testing.T, balanceCents int64) (*account.Account, string) {
	t.Helper()
	hash, err := authsvc.HashPassword("password")
	require.NoError(t, err)
	a := account.New("Jane Doe", "jane@example.com", "555-0100", "1990-01-01", hash)
	a.Status = account.StatusApproved
	a.Balance = money.FromCents(balanceCents)
	e.uow.SeedAccount(a)
	_, token, err := e.auth.Login(t.Context(), a.Email, "password")
	require.NoError(t, err)
	return a, token
}

func (e *testEnv) seedAdmin(t *testing.T) (*admin.User, string) {
	t.Helper()
	hash, err := authsvc.HashPassword("admin123")
	require.NoError(t, err)
	adm := admin.New("admin", "System Administrator", hash)
	e.uow.SeedAdmin(adm)
	_, token, err := e.auth.AdminLogin(t.Context(), "admin", "admin123")
	require.NoError(t, err)
	return adm, token
}

func request(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint: errcheck

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func requestList(t *testing.T, app *fiber.App, path, token string) (int, []map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint: errcheck

	var list []map[string]any
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	}
	return resp.StatusCode, list
}

func TestRegister(t *testing.T) {
	env := newTestEnv()

	status, body := request(t, env.app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"full_name":    "Jane Doe",
		"phone_number": "555-0100",
		"email":        "jane@example.com",
		"password":     "password",
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "User registered successfully. Waiting for admin approval.", body["message"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "pending", user["status"])
	assert.Equal(t, float64(0), user["balance"])

	// Second registration with the same email is refused.
	status, body = request(t, env.app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"full_name": "Other",
		"email":     "jane@example.com",
		"password":  "password",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already exists with this email", body["error"])
}

func TestLogin_Errors(t *testing.T) {
	env := newTestEnv()
	env.seedUser(t, 0)

	status, body := request(t, env.app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "jane@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid email or password", body["error"])

	status, body = request(t, env.app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "nobody@example.com", "password": "password",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid email or password", body["error"])
}

func TestLogin_PendingAccount(t *testing.T) {
	env := newTestEnv()
	hash, err := authsvc.HashPassword("password")
	require.NoError(t, err)
	a := account.New("Jane Doe", "jane@example.com", "555-0100", "1990-01-01", hash)
	env.uow.SeedAccount(a)

	status, body := request(t, env.app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "jane@example.com", "password": "password",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Your account is pending approval", body["error"])
}

func TestProtectedRoutes_TokenGuards(t *testing.T) {
	env := newTestEnv()
	_, userToken := env.seedUser(t, 0)

	status, body := request(t, env.app, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Access token required", body["error"])

	status, body = request(t, env.app, http.MethodGet, "/api/auth/profile", "garbage", nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Invalid token", body["error"])

	// A valid user token never unlocks the admin console.
	status, body = request(t, env.app, http.MethodGet, "/api/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Invalid admin token", body["error"])
}

func TestAdminRoutes_RejectUserToken(t *testing.T) {
	env := newTestEnv()
	_, adminToken := env.seedAdmin(t)

	// And an admin token never unlocks customer routes.
	status, body := request(t, env.app, http.MethodGet, "/api/auth/profile", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Invalid token", body["error"])
}

func TestProfile(t *testing.T) {
	env := newTestEnv()
	a, token := env.seedUser(t, 15000)

	status, body := request(t, env.app, http.MethodGet, "/api/auth/profile", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, a.ID.String(), body["id"])
	assert.Equal(t, "Jane Doe", body["full_name"])
	assert.Equal(t, 150.0, body["balance"])
}

func TestCreateTransaction_EchoesDemoOTP(t *testing.T) {
	env := newTestEnv()
	_, token := env.seedUser(t, 10000)

	status, body := request(t, env.app, http.MethodPost, "/api/transactions", token, fiber.Map{
		"type":   "deposit",
		"amount": 50,
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Transaction created successfully. OTP verification required.", body["message"])
	assert.Equal(t, "123456", body["otp"])
	assert.NotEmpty(t, body["transactionId"])
	assert.NotEmpty(t, body["uniqueId"])
}

func TestVerifyOTP_AlwaysRejected(t *testing.T) {
	env := newTestEnv()
	a, token := env.seedUser(t, 10000)

	_, body := request(t, env.app, http.MethodPost, "/api/transactions", token, fiber.Map{
		"type":   "deposit",
		"amount": 50,
	})
	txID := body["transactionId"].(string)

	status, body := request(t, env.app, http.MethodPost, "/api/transactions/"+txID+"/verify-otp", token, fiber.Map{
		"otp": "123456",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t,
		"The code you inserted is invalid. Please contact support to request your COT code.",
		body["error"])
	assert.Equal(t, int64(10000), env.uow.Balance(a.ID).Cents())
}

func TestCreateTransaction_InsufficientFunds(t *testing.T) {
	env := newTestEnv()
	_, token := env.seedUser(t, 10000)

	status, body := request(t, env.app, http.MethodPost, "/api/transactions", token, fiber.Map{
		"type":   "withdrawal",
		"amount": 500,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Insufficient funds", body["error"])
}

func TestLoanApply(t *testing.T) {
	env := newTestEnv()
	_, token := env.seedUser(t, 10000)

	status, body := request(t, env.app, http.MethodPost, "/api/loans/apply", token, fiber.Map{
		"type":    "personal",
		"amount":  200,
		"term":    12,
		"purpose": "car repair",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Loan application submitted successfully. OTP verification required.", body["message"])
	assert.Equal(t, "123456", body["otp"])

	status, body = request(t, env.app, http.MethodPost, "/api/loans/verify-otp", token, fiber.Map{
		"otp": "123456",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t,
		"The code you inserted is invalid. Please contact support to request your COT code.",
		body["error"])
}

func TestAdminCreateTransaction_AppliesBalance(t *testing.T) {
	env := newTestEnv()
	a, _ := env.seedUser(t, 10000)
	_, adminToken := env.seedAdmin(t)

	status, body := request(t, env.app, http.MethodPost, "/api/admin/transactions/create", adminToken, fiber.Map{
		"user_id": a.ID,
		"type":    "deposit",
		"amount":  50,
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Transaction created successfully", body["message"])
	assert.Equal(t, int64(15000), env.uow.Balance(a.ID).Cents())

	// Exactly one audit entry for the mutation.
	status, list := requestList(t, env.app, "/api/admin/activities", adminToken)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	assert.Equal(t, "create_transaction", list[0]["action"])
	assert.Equal(t, "System Administrator", list[0]["admin_name"])
}

func TestAdminDecideTransaction(t *testing.T) {
	env := newTestEnv()
	a, userToken := env.seedUser(t, 10000)
	_, adminToken := env.seedAdmin(t)

	_, body := request(t, env.app, http.MethodPost, "/api/transactions", userToken, fiber.Map{
		"type":   "withdrawal",
		"amount": 30,
	})
	txID := body["transactionId"].(string)

	status, body := request(t, env.app, http.MethodPut, "/api/admin/transactions/"+txID+"/approve", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Transaction approved successfully", body["message"])
	assert.Equal(t, int64(7000), env.uow.Balance(a.ID).Cents())

	// A second decision finds nothing to decide.
	status, body = request(t, env.app, http.MethodPut, "/api/admin/transactions/"+txID+"/approve", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Transaction not found", body["error"])
	assert.Equal(t, int64(7000), env.uow.Balance(a.ID).Cents())
}

func TestAdminUserLifecycle(t *testing.T) {
	env := newTestEnv()
	_, adminToken := env.seedAdmin(t)

	_, body := request(t, env.app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"full_name": "New Customer",
		"email":     "new@example.com",
		"password":  "password",
	})
	userID := body["user"].(map[string]any)["id"].(string)

	status, body := request(t, env.app, http.MethodPut, "/api/admin/users/"+userID+"/approve", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User approved successfully", body["message"])

	status, body = request(t, env.app, http.MethodPut, "/api/admin/users/"+userID+"/freeze", adminToken, fiber.Map{
		"is_frozen": true,
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User account frozen successfully", body["message"])

	status, body = request(t, env.app, http.MethodPut, "/api/admin/users/"+userID+"/balance", adminToken, fiber.Map{
		"balance": 500,
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Balance updated successfully", body["message"])
	assert.Equal(t, 500.0, body["user"].(map[string]any)["balance"])

	status, body = request(t, env.app, http.MethodDelete, "/api/admin/users/"+userID+"/reject", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User rejected and deleted successfully", body["message"])

	status, list := requestList(t, env.app, "/api/admin/users", adminToken)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, list)
}

func TestSupportTicketFlow(t *testing.T) {
	env := newTestEnv()
	_, userToken := env.seedUser(t, 0)
	_, adminToken := env.seedAdmin(t)

	status, body := request(t, env.app, http.MethodPost, "/api/support", userToken, fiber.Map{
		"subject":  "Missing card",
		"message":  "My card never arrived",
		"priority": "high",
		"category": "cards",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Support ticket created successfully", body["message"])
	ticketID := body["ticket"].(map[string]any)["id"].(string)

	status, body = request(t, env.app, http.MethodPut, "/api/admin/support-tickets/"+ticketID+"/respond", adminToken, fiber.Map{
		"response": "A replacement is on its way",
		"status":   "resolved",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Response sent successfully", body["message"])
	assert.Equal(t, "resolved", body["ticket"].(map[string]any)["status"])

	status, list := requestList(t, env.app, "/api/support/"+ticketID+"/conversation", userToken)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	assert.Equal(t, "Support Team", list[0]["user_name"])
}

func TestUnknownDecisionTargets(t *testing.T) {
	env := newTestEnv()
	_, adminToken := env.seedAdmin(t)

	status, body := request(t, env.app, http.MethodPut,
		"/api/admin/transactions/7d4b3c1a-0000-0000-0000-000000000000/approve", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Transaction not found", body["error"])

	status, body = request(t, env.app, http.MethodPut,
		"/api/admin/loans/7d4b3c1a-0000-0000-0000-000000000000/reject", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Loan not found", body["error"])
}
