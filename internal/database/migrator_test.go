package database_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"house-preview-backend/internal/database"
)

var (
	createBookkeeping = regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")
	checkApplied      = regexp.QuoteMeta("SELECT COUNT(*) FROM schema_migrations WHERE name = $1")
	recordApplied     = regexp.QuoteMeta("INSERT INTO schema_migrations (name, applied_at)")
)

func TestMigrator_AppliesPendingInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"migrations/0002_b.sql": {Data: []byte("CREATE TABLE b (id INT);")},
		"migrations/0001_a.sql": {Data: []byte("CREATE TABLE a (id INT);")},
	}

	mock.ExpectExec(createBookkeeping).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(checkApplied).WithArgs("0001_a.sql").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(checkApplied).WithArgs("0002_b.sql").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE b (id INT);")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(recordApplied).WithArgs("0002_b.sql").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, database.NewMigratorFS(db, fsys).Run(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_FailedMigrationRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"migrations/0001_a.sql": {Data: []byte("CREATE TABLE a (id INT);")},
	}

	mock.ExpectExec(createBookkeeping).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(checkApplied).WithArgs("0001_a.sql").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE a")).WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	err = database.NewMigratorFS(db, fsys).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0001_a.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_EmbeddedSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(createBookkeeping).WillReturnResult(sqlmock.NewResult(0, 0))
	for _, name := range []string{
		"0001_create_users_table.sql",
		"0002_create_customers_table.sql",
		"0003_create_house_previews_table.sql",
	} {
		mock.ExpectQuery(checkApplied).WithArgs(name).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	}

	require.NoError(t, database.NewMigrator(db).Run(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
