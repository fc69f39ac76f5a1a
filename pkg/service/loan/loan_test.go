package loan

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldenbridge/bankapi/internal/fixtures"
	"github.com/goldenbridge/bankapi/pkg/domain"
	"github.com/goldenbridge/bankapi/pkg/domain/account"
	"github.com/goldenbridge/bankapi/pkg/domain/loan"
	"github.com/goldenbridge/bankapi/pkg/domain/money"
)

func newTestService() (*Service, *fixtures.MemoryUoW) {
	uow := fixtures.NewMemoryUoW()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(uow, logger), uow
}

func seedAccount(uow *fixtures.MemoryUoW, balanceCents int64) *account.Account {
	a := account.New("Jane Doe", "jane@example.com", "555-0100", "1990-01-01", "hash")
	a.Status = account.StatusApproved
	a.Balance = money.FromCents(balanceCents)
	uow.SeedAccount(a)
	return a
}

func TestApply_StaysPendingWithNoBalanceEffect(t *testing.T) {
	svc, uow := newTestService()
	a := seedAccount(uow, 10000)

	l, err := svc.Apply(context.Background(), a.ID, ApplyInput{
		Type:       "personal",
		Amount:     200,
		TermMonths: 12,
		Purpose:    "car repair",
	})
	require.NoError(t, err)

	assert.Equal(t, loan.StatusPending, l.Status)
	assert.Equal(t, int64(20000), l.Amount.Cents())
	assert.Equal(t, 12, l.TermMonths)
	assert.Equal(t, int64(10000), uow.Balance(a.ID).Cents())
}

func TestApply_FrozenAccount(t *testing.T) {
	svc, uow := newTestService()
	a := seedAccount(uow, 10000)
	a.IsFrozen = true
	uow.SeedAccount(a)

	_, err := svc.Apply(context.Background(), a.ID, ApplyInput{Type: "personal", Amount: 200, TermMonths: 12})
	assert.ErrorIs(t, err, domain.ErrAccountFrozen)

	ls, err := svc.List(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, ls)
}

func TestApply_InvalidAmount(t *testing.T) {
	svc, uow := newTestService()
	a := seedAccount(uow, 10000)

	_, err := svc.Apply(context.Background(), a.ID, ApplyInput{Type: "personal", Amount: 0, TermMonths: 12})
	assert.ErrorIs(t, err, money.ErrInvalidAmount)

	_, err = svc.Apply(context.Background(), a.ID, ApplyInput{Type: "personal", Amount: -10, TermMonths: 12})
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
}

func TestApply_UnknownAccount(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Apply(context.Background(), uuid.New(), ApplyInput{Type: "personal", Amount: 200, TermMonths: 12})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActive_FiltersByStatus(t *testing.T) {
	svc, uow := newTestService()
	a := seedAccount(uow, 10000)

	_, err := svc.Apply(context.Background(), a.ID, ApplyInput{Type: "personal", Amount: 200, TermMonths: 12})
	require.NoError(t, err)

	// A fresh application is pending, never active.
	active, err := svc.Active(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.List(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestVerifyOTP_NeverSucceeds(t *testing.T) {
	svc, uow := newTestService()
	a := seedAccount(uow, 10000)

	for _, code := range []string{"123456", "000000", "otp"} {
		err := svc.VerifyOTP(context.Background(), a.ID, code)
		assert.ErrorIs(t, err, domain.ErrConfirmationNotEnabled, "code %q", code)
	}
}
