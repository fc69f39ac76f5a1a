package infra

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/goldenbridge/bankapi/pkg/repository"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestUoW_DoCommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		assert.NotNil(t, txUow.Accounts())
		assert.NotNil(t, txUow.Admins())
		assert.NotNil(t, txUow.Transactions())
		assert.NotNil(t, txUow.Loans())
		assert.NotNil(t, txUow.Activities())
		assert.NotNil(t, txUow.Support())
		return nil
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_DoRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_RepositoriesOutsideDo(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	assert.NotNil(t, uow.Accounts())
	assert.NotNil(t, uow.Admins())
	assert.NotNil(t, uow.Transactions())
	assert.NotNil(t, uow.Loans())
	assert.NotNil(t, uow.Activities())
	assert.NotNil(t, uow.Support())
}
