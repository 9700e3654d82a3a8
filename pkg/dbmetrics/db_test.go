package dbmetrics

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedQuery struct {
	operation string
	status    string
}

type fakeRecorder struct {
	queries []recordedQuery
	stats   []sql.DBStats
}

func (f *fakeRecorder) ObserveDBQuery(operation, status string, _ time.Duration) {
	f.queries = append(f.queries, recordedQuery{operation: operation, status: status})
}

func (f *fakeRecorder) SetDBPoolStats(stats sql.DBStats) {
	f.stats = append(f.stats, stats)
}

func TestDBRecordsQueries(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	rec := &fakeRecorder{}
	db := Wrap(sqlDB, rec)

	mock.ExpectExec("UPDATE appointments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM businesses").WillReturnError(sql.ErrConnDone)

	_, err = db.ExecContext(context.Background(), "UPDATE appointments SET status = $1", "cancelled")
	require.NoError(t, err)
	_, err = db.QueryContext(context.Background(), "SELECT id FROM businesses")
	require.Error(t, err)

	require.Len(t, rec.queries, 2)
	assert.Equal(t, recordedQuery{operation: "update", status: "ok"}, rec.queries[0])
	assert.Equal(t, recordedQuery{operation: "select", status: "error"}, rec.queries[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutorPrefersTransaction(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, nil)
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db).(*DB))

	mock.ExpectBegin()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))

	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationLabel(t *testing.T) {
	assert.Equal(t, "select", operation("  SELECT 1"))
	assert.Equal(t, "insert", operation("insert into x values (1)"))
	assert.Equal(t, "other", operation("LOCK TABLE x"))
	assert.Equal(t, "unknown", operation(""))
}
