package hours

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository stores the weekly opening windows of businesses.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get returns the windows of a business ordered by weekday and opening time.
// An empty result means the business has not configured its hours.
func (r *Repository) Get(ctx context.Context, businessID string) ([]domain.HoursWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekday", "open_time", "close_time").
		From("business_hours").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("weekday ASC", "open_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.HoursWindow, 0)
	for rows.Next() {
		var (
			w       domain.HoursWindow
			weekday int
		)
		if err := rows.Scan(&weekday, &w.Open, &w.Close); err != nil {
			return nil, fmt.Errorf("%w: Get - scan window: %w", ErrScanRow, err)
		}
		w.Weekday = time.Weekday(weekday)
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Get - rows iteration: %w", ErrScanRow, err)
	}
	return windows, nil
}

// Replace deletes the current windows and stores the given ones. Callers run
// it inside a transaction so readers never see a partial table.
func (r *Repository) Replace(ctx context.Context, businessID string, windows []domain.HoursWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("business_hours").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Replace - build delete query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Replace - execute delete: %w", ErrExecQuery, err)
	}

	if len(windows) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("business_hours").
		Columns("business_id", "weekday", "open_time", "close_time")
	for _, w := range windows {
		insert = insert.Values(businessID, int(w.Weekday), w.Open, w.Close)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Replace - build insert query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Replace - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}
