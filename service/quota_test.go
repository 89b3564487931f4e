package service

import (
	"context"
	"testing"
	"time"

	"galon/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var employeeColumns = []string{"id", "employee_id", "full_name", "department", "created_at", "updated_at"}

func setupMockRepo(t *testing.T) (*GormRepository, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewGormRepository(gormDB), mock, func() {
		sqlDB.Close()
	}
}

func sumRows(total int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"COALESCE(SUM(quantity), 0)"}).AddRow(total)
}

const sumQuery = "SELECT COALESCE\\(SUM\\(quantity\\), 0\\) FROM `galon_transactions`"

func TestPeriodOf(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)
	// UTC 仍是 1 月 31 日，本地已是 2 月
	ref := time.Date(2024, 2, 1, 0, 30, 0, 0, wib)
	assert.Equal(t, Period{Month: 2, Year: 2024}, PeriodOf(ref))
	assert.Equal(t, Period{Month: 1, Year: 2024}, PeriodOf(ref.UTC()))

	assert.True(t, Period{Month: 12, Year: 2024}.Valid())
	assert.False(t, Period{Month: 13, Year: 2024}.Valid())
	assert.False(t, Period{Month: 0, Year: 2024}.Valid())
}

func TestDateOf(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)
	d := DateOf(time.Date(2024, 3, 15, 18, 45, 12, 99, wib))
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, wib), d)
}

func TestRemaining(t *testing.T) {
	cases := map[int]int{0: 10, 2: 8, 9: 1, 10: 0, 11: 0, 25: 0}
	for used, want := range cases {
		assert.Equal(t, want, Remaining(used), "used=%d", used)
	}
}

func TestSumMonthUsage(t *testing.T) {
	ref := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	txs := []models.GalonTransaction{
		{Quantity: 2, Month: 3, Year: 2024},
		{Quantity: 3, Month: 3, Year: 2024},
		{Quantity: 5, Month: 2, Year: 2024},
		{Quantity: 4, Month: 3, Year: 2023},
	}
	assert.Equal(t, 5, SumMonthUsage(txs, ref))
	assert.Equal(t, 0, SumMonthUsage(nil, ref))
}

func TestNewQuotaSummary(t *testing.T) {
	s := NewQuotaSummary(12)
	assert.Equal(t, 12, s.CurrentUsage)
	assert.Equal(t, 0, s.RemainingQuota)
	assert.Equal(t, MonthlyQuota, s.MonthlyQuota)
}

func TestLedger_NoTransactions(t *testing.T) {
	repo, mock, cleanup := setupMockRepo(t)
	defer cleanup()

	mock.ExpectQuery(sumQuery).WillReturnRows(sumRows(0))
	mock.ExpectQuery(sumQuery).WillReturnRows(sumRows(0))

	ledger := NewLedger(repo)
	now := time.Now()

	used, err := ledger.CurrentMonthUsage(context.Background(), 1, now)
	require.NoError(t, err)
	assert.Equal(t, 0, used)

	remaining, err := ledger.RemainingQuota(context.Background(), 1, now)
	require.NoError(t, err)
	assert.Equal(t, 10, remaining)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_ClampsOverrun(t *testing.T) {
	repo, mock, cleanup := setupMockRepo(t)
	defer cleanup()

	// check_then_act 模式下并发可能写出超过额度的数据
	mock.ExpectQuery(sumQuery).WillReturnRows(sumRows(12))

	s, err := NewLedger(repo).Summary(context.Background(), 1, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 12, s.CurrentUsage)
	assert.Equal(t, 0, s.RemainingQuota)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_UsageFor(t *testing.T) {
	repo, mock, cleanup := setupMockRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT employee_id, COALESCE\\(SUM\\(quantity\\), 0\\) AS used FROM `galon_transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"employee_id", "used"}).AddRow(1, 4).AddRow(3, 10))

	out, err := NewLedger(repo).UsageFor(context.Background(), []uint{1, 2, 3}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, NewQuotaSummary(4), out[1])
	assert.Equal(t, NewQuotaSummary(0), out[2])
	assert.Equal(t, NewQuotaSummary(10), out[3])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_UsageForEmpty(t *testing.T) {
	repo, mock, cleanup := setupMockRepo(t)
	defer cleanup()

	out, err := NewLedger(repo).UsageFor(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.Empty(t, out)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_MonthlyReport(t *testing.T) {
	repo, mock, cleanup := setupMockRepo(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT employees.id, .* FROM `employees` LEFT JOIN galon_transactions").
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "full_name", "department", "created_at", "updated_at", "used"}).
			AddRow(1, "EMP001", "John Doe", "IT", now, now, 3).
			AddRow(2, "EMP002", "Jane Roe", "HR", now, now, 0))

	rows, err := NewLedger(repo).MonthlyReport(context.Background(), Period{Month: 3, Year: 2024})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "EMP001", rows[0].EmployeeID)
	assert.Equal(t, 7, rows[0].RemainingQuota)
	assert.Equal(t, 10, rows[1].RemainingQuota)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_Lookup(t *testing.T) {
	repo, mock, cleanup := setupMockRepo(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `employees`").
		WithArgs("EMP001").
		WillReturnRows(sqlmock.NewRows(employeeColumns).AddRow(1, "EMP001", "John Doe", "IT", now, now))
	mock.ExpectQuery(sumQuery).WillReturnRows(sumRows(2))

	got, err := NewLedger(repo).Lookup(context.Background(), "EMP001", now)
	require.NoError(t, err)
	assert.Equal(t, "EMP001", got.EmployeeID)
	assert.Equal(t, 2, got.CurrentUsage)
	assert.Equal(t, 8, got.RemainingQuota)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_Lookup_NotFound(t *testing.T) {
	repo, mock, cleanup := setupMockRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `employees`").
		WithArgs("EMP404").
		WillReturnRows(sqlmock.NewRows(employeeColumns))

	_, err := NewLedger(repo).Lookup(context.Background(), "EMP404", time.Now())
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
