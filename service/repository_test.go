package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"galon/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormRepository_FindEmployeeByCode(t *testing.T) {
	repo, mock, cleanup := setupMockRepo(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `employees`").
		WithArgs("EMP001").
		WillReturnRows(sqlmock.NewRows(employeeColumns).AddRow(1, "EMP001", "John Doe", "IT", now, now))

	emp, err := repo.FindEmployeeByCode(context.Background(), "EMP001")
	require.NoError(t, err)
	assert.Equal(t, uint(1), emp.ID)
	assert.Equal(t, "John Doe", emp.FullName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_FindEmployeeByCode_NotFound(t *testing.T) {
	repo, mock, cleanup := setupMockRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `employees`").
		WithArgs("NONEXISTENT").
		WillReturnRows(sqlmock.NewRows(employeeColumns))

	_, err := repo.FindEmployeeByCode(context.Background(), "NONEXISTENT")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_FindEmployeeByCode_StorageError(t *testing.T) {
	repo, mock, cleanup := setupMockRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `employees`").
		WithArgs("EMP001").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.FindEmployeeByCode(context.Background(), "EMP001")
	require.Error(t, err)
	assert.False(t, IsBusinessError(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_Atomic_LocksEmployeeRow(t *testing.T) {
	repo, mock, cleanup := setupMockRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT `id` FROM `employees` .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(sumQuery).WillReturnRows(sumRows(3))
	mock.ExpectExec("INSERT INTO `galon_transactions`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	tx := NewTransaction(1, 2, time.Now())
	err := repo.Atomic(context.Background(), 1, func(r Repository) error {
		used, err := r.MonthUsage(context.Background(), 1, PeriodOf(time.Now()))
		if err != nil {
			return err
		}
		assert.Equal(t, 3, used)
		return r.CreateTransaction(context.Background(), tx)
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), tx.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_Atomic_RollsBackOnError(t *testing.T) {
	repo, mock, cleanup := setupMockRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT `id` FROM `employees` .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.Atomic(context.Background(), 1, func(r Repository) error {
		return &InsufficientQuotaError{Remaining: 0}
	})
	var insufficient *InsufficientQuotaError
	require.ErrorAs(t, err, &insufficient)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_Atomic_EmployeeGone(t *testing.T) {
	repo, mock, cleanup := setupMockRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT `id` FROM `employees` .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	called := false
	err := repo.Atomic(context.Background(), 1, func(r Repository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	assert.False(t, called)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRepository_CreateTransaction_Error(t *testing.T) {
	repo, mock, cleanup := setupMockRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `galon_transactions`").
		WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	err := repo.CreateTransaction(context.Background(), &models.GalonTransaction{EmployeeID: 1, Quantity: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert galon transaction")
	require.NoError(t, mock.ExpectationsWereMet())
}
