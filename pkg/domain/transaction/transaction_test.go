package transaction

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldenbridge/bankapi/pkg/domain"
	"github.com/goldenbridge/bankapi/pkg/domain/money"
)

func TestParseType(t *testing.T) {
	for _, s := range []string{"deposit", "withdrawal", "transfer"} {
		typ, err := ParseType(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(typ))
	}
	_, err := ParseType("wire")
	assert.Error(t, err)
}

func TestDelta(t *testing.T) {
	amount := money.FromCents(5000)
	userID := uuid.New()

	dep := New(userID, TypeDeposit, amount, Details{})
	assert.Equal(t, int64(5000), dep.Delta().Cents())

	wd := New(userID, TypeWithdrawal, amount, Details{})
	assert.Equal(t, int64(-5000), wd.Delta().Cents())

	tr := New(userID, TypeTransfer, amount, Details{})
	assert.Equal(t, int64(-5000), tr.Delta().Cents())
}

func TestNew_StartsPending(t *testing.T) {
	tx := New(uuid.New(), TypeDeposit, money.FromCents(100), Details{})
	assert.Equal(t, StatusPendingOTP, tx.Status)
	assert.True(t, tx.IsPending())
}

func TestNewApproved(t *testing.T) {
	tx := NewApproved(uuid.New(), TypeDeposit, money.FromCents(100), Details{})
	assert.Equal(t, StatusApproved, tx.Status)
	assert.False(t, tx.IsPending())
}

func TestNewReference(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := NewReference()
		assert.True(t, strings.HasPrefix(ref, "T"))
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}

func TestValidateConfirmationCode(t *testing.T) {
	assert.NoError(t, ValidateConfirmationCode("123456"))
	assert.NoError(t, ValidateConfirmationCode("000000"))

	for _, code := range []string{"", "12345", "1234567", "12345a", "abcdef", " 23456"} {
		err := ValidateConfirmationCode(code)
		assert.ErrorIs(t, err, domain.ErrInvalidConfirmationCode, "code %q", code)
	}
}
