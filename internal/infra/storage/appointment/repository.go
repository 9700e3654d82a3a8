package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const codeExclusionViolation = "23P01"

var inactiveStatuses = []string{string(domain.StatusCancelled), string(domain.StatusNoShow)}

var joinedColumns = []string{
	"a.id",
	"a.business_id",
	"a.customer_id",
	"a.staff_id",
	"a.service_id",
	"a.appointment_date",
	"a.start_time",
	"a.end_time",
	"a.status",
	"a.notes",
	"a.created_at",
	"a.updated_at",
	"c.name",
	"c.email",
	"c.phone",
	"st.name",
	"sv.name",
	"sv.duration_minutes",
}

var plainColumns = []string{
	"id",
	"business_id",
	"customer_id",
	"staff_id",
	"service_id",
	"appointment_date",
	"start_time",
	"end_time",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts the appointment and fills ID, CreatedAt and UpdatedAt.
// An overlap rejected by the database exclusion constraint yields ErrSlotConflict.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"business_id",
			"customer_id",
			"staff_id",
			"service_id",
			"appointment_date",
			"start_time",
			"end_time",
			"status",
			"notes",
		).
		Values(
			a.ID,
			a.BusinessID,
			a.CustomerID,
			a.StaffID,
			a.ServiceID,
			a.Date.Format(domain.DateFormat),
			a.StartTime,
			a.EndTime,
			a.Status,
			a.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.CreatedAt, &a.UpdatedAt)
	if isExclusionViolation(err) {
		return nil, ErrSlotConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	return a, nil
}

// GetByID returns the appointment with customer, staff and service joined.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := joinedSelect().Where(squirrel.Eq{"a.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		// Only the appointment row; the outer-joined side cannot be locked.
		builder = builder.Suffix("FOR UPDATE OF a")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	a, err := scanJoined(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}
	return a, nil
}

// List returns joined appointments of a business ordered by date and start time.
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := joinedSelect().
		Where(squirrel.Eq{"a.business_id": filter.BusinessID}).
		OrderBy("a.appointment_date ASC", "a.start_time ASC", "a.id ASC")

	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"a.appointment_date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.StaffID != nil {
		builder = builder.Where(squirrel.Eq{"a.staff_id": *filter.StaffID})
	}
	if !filter.IncludeInactive {
		builder = builder.Where(squirrel.NotEq{"a.status": inactiveStatuses})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan appointment: %w", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %w", ErrScanRow, err)
	}
	return appointments, nil
}

// ListActiveForSlots returns active appointments of the business on date,
// optionally restricted to one staff member. Inside a transaction the rows
// are locked with FOR UPDATE so concurrent submissions serialize on them.
func (r *Repository) ListActiveForSlots(ctx context.Context, businessID string, staffID *string, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(plainColumns...).
		From("appointments").
		Where(squirrel.Eq{
			"business_id":      businessID,
			"appointment_date": date.Format(domain.DateFormat),
		}).
		Where(squirrel.NotEq{"status": inactiveStatuses}).
		OrderBy("start_time ASC")

	if staffID != nil {
		builder = builder.Where(squirrel.Eq{"staff_id": *staffID})
	}
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveForSlots - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveForSlots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		var a domain.Appointment
		err := rows.Scan(
			&a.ID,
			&a.BusinessID,
			&a.CustomerID,
			&a.StaffID,
			&a.ServiceID,
			&a.Date,
			&a.StartTime,
			&a.EndTime,
			&a.Status,
			&a.Notes,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveForSlots - scan appointment: %w", ErrScanRow, err)
		}
		appointments = append(appointments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveForSlots - rows iteration: %w", ErrScanRow, err)
	}
	return appointments, nil
}

// UpdateStatus sets the status. An exclusion violation yields ErrSlotConflict.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if isExclusionViolation(err) {
		return ErrSlotConflict
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func joinedSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(joinedColumns...).
		From("appointments a").
		Join("customers c ON c.id = a.customer_id").
		LeftJoin("staff st ON st.id = a.staff_id").
		LeftJoin("services sv ON sv.id = a.service_id")
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanJoined(row scanner) (*domain.Appointment, error) {
	var (
		a               domain.Appointment
		customer        domain.Customer
		staffName       sql.NullString
		serviceName     sql.NullString
		serviceDuration sql.NullInt64
	)

	err := row.Scan(
		&a.ID,
		&a.BusinessID,
		&a.CustomerID,
		&a.StaffID,
		&a.ServiceID,
		&a.Date,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&staffName,
		&serviceName,
		&serviceDuration,
	)
	if err != nil {
		return nil, err
	}

	customer.ID = a.CustomerID
	customer.BusinessID = a.BusinessID
	a.Customer = &customer

	if a.StaffID != nil && staffName.Valid {
		a.Staff = &domain.StaffRef{ID: *a.StaffID, Name: staffName.String}
	}
	if a.ServiceID != nil && serviceName.Valid {
		a.Service = &domain.ServiceRef{
			ID:              *a.ServiceID,
			Name:            serviceName.String,
			DurationMinutes: int(serviceDuration.Int64),
		}
	}
	return &a, nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeExclusionViolation
}
