package hours

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestGet(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT weekday, open_time, close_time FROM business_hours WHERE business_id = \$1 ORDER BY weekday ASC, open_time ASC`).
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows([]string{"weekday", "open_time", "close_time"}).
			AddRow(int64(1), "09:00:00", "12:00:00").
			AddRow(int64(1), "13:00:00", "17:00:00"))

	got, err := repo.Get(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, []domain.HoursWindow{
		{Weekday: time.Monday, Open: "09:00", Close: "12:00"},
		{Weekday: time.Monday, Open: "13:00", Close: "17:00"},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplace(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM business_hours WHERE business_id = \$1`).
		WithArgs("b1").
		WillReturnResult(sqlmock.NewResult(0, 10))
	mock.ExpectExec(`INSERT INTO business_hours \(business_id,weekday,open_time,close_time\) VALUES \(\$1,\$2,\$3,\$4\),\(\$5,\$6,\$7,\$8\)`).
		WithArgs("b1", 6, "10:00", "14:00", "b1", 0, "10:00", "12:00").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.Replace(context.Background(), "b1", []domain.HoursWindow{
		{Weekday: time.Saturday, Open: "10:00", Close: "14:00"},
		{Weekday: time.Sunday, Open: "10:00", Close: "12:00"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceWithEmptyTableOnlyDeletes(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM business_hours`).WithArgs("b1").WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.Replace(context.Background(), "b1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
