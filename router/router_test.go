package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"galon/config"
	"galon/database"
	"galon/middleware"
	"galon/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		App:    config.AppConfig{Timezone: "UTC", Location: time.UTC},
		JWT:    config.JWTConfig{Secret: "router-secret", ExpireTime: time.Hour},
	}
	middleware.InitJWT(cfg)
	return cfg
}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

func newRouter(t *testing.T) http.Handler {
	admitter := service.NewAdmitter(service.NewGormRepository(database.DB), service.AdmissionOptions{})
	return SetupRouter(testConfig(), admitter)
}

func serve(h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestKioskPage(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	w := serve(newRouter(t), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "/api/galon/transaction")
}

func TestHealthCheck(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	w := serve(newRouter(t), http.MethodGet, "/health-check", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), "timestamp")
}

func TestHealth_DatabaseDown(t *testing.T) {
	old := database.DB
	database.DB = nil
	defer func() { database.DB = old }()

	w := serve(newRouter(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	r := newRouter(t)
	for _, path := range []string{"/admin/employees", "/admin/employees/1", "/admin/reports/monthly", "/admin/reports/monthly/excel"} {
		w := serve(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestAdminRoutesWithToken(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	r := newRouter(t)
	token, err := middleware.GenerateToken(1, "admin", time.Hour)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT employees.id, .* FROM `employees` LEFT JOIN galon_transactions").
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "full_name", "department", "created_at", "updated_at", "used"}))

	w := serve(r, http.MethodGet, "/admin/reports/monthly?month=1&year=2024", token)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKioskRouteAcceptsSlashInCode(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `employees`").
		WithArgs("IT/007").
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "full_name", "department", "created_at", "updated_at"}).
			AddRow(1, "IT/007", "Agus", "IT", now, now))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(quantity\\), 0\\) FROM `galon_transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(4))

	w := serve(newRouter(t), http.MethodGet, "/api/employee/IT%2F007", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"remaining_quota":6`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCORSPreflight(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	w := serve(newRouter(t), http.MethodOptions, "/api/galon/transaction", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
