package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/elmallah-hr/attendance-backend-go/internal/pkg/database"
	"github.com/elmallah-hr/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL; the test is skipped without one.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.DefaultPoolConfig)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

// The fixture lives in a temporary table inside a rolled-back transaction, so
// the test never touches real employee rows.
func TestDirectoryRepository_GetDirectory(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		CREATE TEMPORARY TABLE employees (
			company_id    UUID NOT NULL,
			employee_code TEXT,
			full_name     TEXT NOT NULL,
			deleted_at    TIMESTAMPTZ
		) ON COMMIT DROP
	`)
	require.NoError(t, err)

	_, err = tx.Exec(ctx, `
		INSERT INTO employees (company_id, employee_code, full_name, deleted_at) VALUES
			('11111111-1111-1111-1111-111111111111', '1001', 'Mona Hassan', NULL),
			('11111111-1111-1111-1111-111111111111', '0042', 'Ahmed Ali', NULL),
			('11111111-1111-1111-1111-111111111111', '1003', 'Former Employee', NOW()),
			('11111111-1111-1111-1111-111111111111', NULL, 'No Badge', NULL),
			('22222222-2222-2222-2222-222222222222', '2001', 'Other Company', NULL)
	`)
	require.NoError(t, err)

	txCtx := postgresql.ContextWithTx(ctx, tx)

	t.Run("single company", func(t *testing.T) {
		repo := postgresql.NewDirectoryRepository(db, "11111111-1111-1111-1111-111111111111")
		dir, err := repo.GetDirectory(txCtx)
		require.NoError(t, err)
		assert.Equal(t, attendance.EmployeeDirectory{
			"1001": "Mona Hassan",
			"0042": "Ahmed Ali",
		}, dir)
	})

	t.Run("all companies", func(t *testing.T) {
		repo := postgresql.NewDirectoryRepository(db, "")
		dir, err := repo.GetDirectory(txCtx)
		require.NoError(t, err)
		assert.Len(t, dir, 3)
		assert.Equal(t, "Other Company", dir["2001"])
	})
}
