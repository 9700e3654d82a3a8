package customer

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const selectByEmail = `SELECT id, business_id, name, email, phone, created_at FROM customers WHERE business_id = \$1 AND lower\(email\) = lower\(\$2\)`

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestFindOrCreateReturnsExisting(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(selectByEmail).
		WithArgs("b1", "Jane@Example.com").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("c1", "b1", "Jane", "jane@example.com", nil, now))

	got, created, err := repo.FindOrCreate(context.Background(), &domain.Customer{
		BusinessID: "b1", Name: "Jane D.", Email: ptr.Ptr("Jane@Example.com"),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "c1", got.ID)
	assert.Equal(t, "Jane", got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateInserts(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(selectByEmail).WithArgs("b1", "jane@example.com").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO customers \(id,business_id,name,email,phone\) VALUES \(\$1,\$2,\$3,\$4,\$5\) ON CONFLICT \(business_id, lower\(email\)\) DO NOTHING RETURNING created_at`).
		WithArgs(sqlmock.AnyArg(), "b1", "Jane", "jane@example.com", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	got, created, err := repo.FindOrCreate(context.Background(), &domain.Customer{
		BusinessID: "b1", Name: "Jane", Email: ptr.Ptr("jane@example.com"),
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, now, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateLosesRace(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(selectByEmail).WithArgs("b1", "jane@example.com").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO customers`).WillReturnRows(sqlmock.NewRows([]string{"created_at"}))
	mock.ExpectQuery(selectByEmail).
		WithArgs("b1", "jane@example.com").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("c9", "b1", "Jane", "jane@example.com", nil, now))

	got, created, err := repo.FindOrCreate(context.Background(), &domain.Customer{
		BusinessID: "b1", Name: "Jane", Email: ptr.Ptr("jane@example.com"),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "c9", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateRequiresEmail(t *testing.T) {
	repo, _ := newRepo(t)

	_, _, err := repo.FindOrCreate(context.Background(), &domain.Customer{BusinessID: "b1", Name: "Jane"})
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestFindOrCreateRetriedAfterSerializationFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db := dbmetrics.Wrap(sqlDB, nil)
	repo := NewRepository(db)
	tm := txmanager.NewTransactionManager(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(selectByEmail).WithArgs("b1", "jane@example.com").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO customers`).WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectQuery(selectByEmail).
		WithArgs("b1", "jane@example.com").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("c9", "b1", "Jane", "jane@example.com", nil, now))
	mock.ExpectCommit()

	calls := 0
	var got *domain.Customer
	err = tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		c, _, err := repo.FindOrCreate(ctx, &domain.Customer{
			BusinessID: "b1", Name: "Jane", Email: ptr.Ptr("jane@example.com"),
		})
		got = c
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "c9", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecErrorKeepsPostgresCause(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(selectByEmail).WillReturnError(&pq.Error{Code: "40P01"})

	_, err := repo.FindByEmail(context.Background(), "b1", "jane@example.com")
	assert.ErrorIs(t, err, ErrScanRow)
	assert.True(t, txmanager.IsRetryable(err))
}
