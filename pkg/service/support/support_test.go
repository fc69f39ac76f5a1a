package support

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
	"github.com/goldenbridge/bankapi/pkg/domain/support"
)

func newTestService() (*Service, *fixtures.MemoryUoW) {
	uow := fixtures.NewMemoryUoW()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(uow, logger), uow
}

func seedAccount(uow *fixtures.MemoryUoW) *account.Account {
	a := account.New("Jane Doe", "jane@example.com", "555-0100", "1990-01-01", "hash")
	a.Status = account.StatusApproved
	uow.SeedAccount(a)
	return a
}

func TestCreateTicket(t *testing.T) {
	svc, uow := newTestService()
	a := seedAccount(uow)

	ticket, err := svc.CreateTicket(context.Background(), a.ID, CreateInput{
		Subject:  "Missing card",
		Message:  "My card never arrived",
		Priority: "high",
		Category: "cards",
	})
	require.NoError(t, err)
	assert.Equal(t, support.TicketOpen, ticket.Status)

	ts, err := svc.ListTickets(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Len(t, ts, 1)
}

func TestAddResponse_ReopensTicket(t *testing.T) {
	svc, uow := newTestService()
	a := seedAccount(uow)
	ticket, err := svc.CreateTicket(context.Background(), a.ID, CreateInput{
		Subject: "Missing card", Message: "My card never arrived",
	})
	require.NoError(t, err)

	got, err := svc.AddResponse(context.Background(), a.ID, ticket.ID, "Any update?")
	require.NoError(t, err)
	assert.Equal(t, support.TicketOpen, got.Status)

	ms, err := svc.Conversation(context.Background(), ticket.ID)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, support.SenderUser, ms[0].Sender)
	assert.Equal(t, "Jane Doe", ms[0].UserName)
}

func TestAddResponse_ForeignTicket(t *testing.T) {
	svc, uow := newTestService()
	a := seedAccount(uow)
	ticket, err := svc.CreateTicket(context.Background(), a.ID, CreateInput{
		Subject: "Missing card", Message: "My card never arrived",
	})
	require.NoError(t, err)

	_, err = svc.AddResponse(context.Background(), uuid.New(), ticket.ID, "not mine")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ms, err := svc.Conversation(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Empty(t, ms)
}

func TestListTickets_OwnerScoped(t *testing.T) {
	svc, uow := newTestService()
	a := seedAccount(uow)
	_, err := svc.CreateTicket(context.Background(), a.ID, CreateInput{
		Subject: "Missing card", Message: "My card never arrived",
	})
	require.NoError(t, err)

	ts, err := svc.ListTickets(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, ts)
}
