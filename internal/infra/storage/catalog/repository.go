package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var (
	serviceColumns = []string{"id", "business_id", "name", "description", "duration_minutes", "price", "category", "is_active"}
	staffColumns   = []string{"id", "business_id", "name", "email", "phone", "specialties", "is_active"}
)

// Repository reads services and staff of a business.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListServices returns active services ordered by category, uncategorized first, then name.
func (r *Repository) ListServices(ctx context.Context, businessID string) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"business_id": businessID, "is_active": true}).
		OrderBy("category ASC NULLS FIRST", "name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan service: %w", ErrScanRow, err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows iteration: %w", ErrScanRow, err)
	}
	return services, nil
}

// GetService returns a service of the business, active or not.
func (r *Repository) GetService(ctx context.Context, businessID, serviceID string) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "business_id": businessID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %w", ErrBuildQuery, err)
	}

	s, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}
	return s, nil
}

// ListStaff returns active staff members ordered by name.
func (r *Repository) ListStaff(ctx context.Context, businessID string) ([]*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"business_id": businessID, "is_active": true}).
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]*domain.StaffMember, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListStaff - scan staff: %w", ErrScanRow, err)
		}
		staff = append(staff, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaff - rows iteration: %w", ErrScanRow, err)
	}
	return staff, nil
}

// GetStaff returns a staff member of the business, active or not.
func (r *Repository) GetStaff(ctx context.Context, businessID, staffID string) (*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"id": staffID, "business_id": businessID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - build select query: %w", ErrBuildQuery, err)
	}

	s, err := scanStaff(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - scan staff: %w", ErrScanRow, err)
	}
	return s, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row scanner) (*domain.Service, error) {
	var s domain.Service
	err := row.Scan(&s.ID, &s.BusinessID, &s.Name, &s.Description, &s.DurationMinutes, &s.Price, &s.Category, &s.IsActive)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanStaff(row scanner) (*domain.StaffMember, error) {
	var s domain.StaffMember
	var specialties pq.StringArray
	err := row.Scan(&s.ID, &s.BusinessID, &s.Name, &s.Email, &s.Phone, &specialties, &s.IsActive)
	if err != nil {
		return nil, err
	}
	s.Specialties = []string(specialties)
	return &s, nil
}
