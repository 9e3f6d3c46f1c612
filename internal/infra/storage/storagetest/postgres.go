// Package storagetest поднимает изолированную схему PostgreSQL для тестов репозиториев.
// Адрес базы берётся из TEST_DATABASE_URL; без него тесты пропускаются
package storagetest

import (
	"context"
	"database/sql"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/pkg/dbmetrics"
)

// EnvDatabaseURL переменная окружения с адресом тестовой базы
const EnvDatabaseURL = "TEST_DATABASE_URL"

// Open создаёт схему со свежими таблицами из migrations/ и возвращает обёрнутое подключение к ней.
// Схема удаляется по завершении теста
func Open(t *testing.T) *dbmetrics.DB {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skipf("%s is not set", EnvDatabaseURL)
	}

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]

	admin, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = admin.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = admin.ExecContext(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.ExecContext(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
	})

	db, err := sql.Open("postgres", withSearchPath(t, dsn, schema))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	migration, err := os.ReadFile(migrationPath())
	require.NoError(t, err)
	// Без аргументов pq использует простой протокол, поэтому файл выполняется целиком
	_, err = db.ExecContext(ctx, string(migration))
	require.NoError(t, err)

	return dbmetrics.Wrap(db)
}

// InsertStaff добавляет активного мастера и возвращает его ID
func InsertStaff(t *testing.T, db dbmetrics.DBExecutor, salonID int64, name string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRowContext(context.Background(),
		"INSERT INTO staff (salon_id, name) VALUES ($1, $2) RETURNING id", salonID, name).Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertService добавляет услугу салона и возвращает её ID
func InsertService(t *testing.T, db dbmetrics.DBExecutor, salonID int64, minutes int) int64 {
	t.Helper()
	var id int64
	err := db.QueryRowContext(context.Background(),
		"INSERT INTO services (salon_id, name, duration_minutes) VALUES ($1, 'service', $2) RETURNING id", salonID, minutes).Scan(&id)
	require.NoError(t, err)
	return id
}

// Exec выполняет запрос подготовки данных
func Exec(t *testing.T, db dbmetrics.DBExecutor, query string, args ...interface{}) {
	t.Helper()
	_, err := db.ExecContext(context.Background(), query, args...)
	require.NoError(t, err)
}

// withSearchPath добавляет search_path как параметр запуска сессии; pq передаёт его серверу
func withSearchPath(t *testing.T, dsn, schema string) string {
	t.Helper()

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		require.NoError(t, err)
		q := u.Query()
		q.Set("search_path", schema)
		u.RawQuery = q.Encode()
		return u.String()
	}
	return dsn + " search_path=" + schema
}

func migrationPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations", "001_init.sql")
}
