package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var columns = []string{"id", "business_id", "name", "email", "phone", "created_at"}

type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindByEmail looks a customer up by business and case-insensitive e-mail.
func (r *Repository) FindByEmail(ctx context.Context, businessID, email string) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("customers").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Expr("lower(email) = lower(?)", strings.TrimSpace(email))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByEmail - build select query: %w", ErrBuildQuery, err)
	}

	var c domain.Customer
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&c.ID, &c.BusinessID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByEmail - scan customer: %w", ErrScanRow, err)
	}
	return &c, nil
}

// FindOrCreate returns the customer with the same business and e-mail,
// creating it from c when there is none. Two concurrent calls for one e-mail
// resolve to the same row through the unique index on (business_id, lower(email)).
// The returned bool is true when a row was inserted.
func (r *Repository) FindOrCreate(ctx context.Context, c *domain.Customer) (*domain.Customer, bool, error) {
	if c.Email == nil || strings.TrimSpace(*c.Email) == "" {
		return nil, false, ErrEmailRequired
	}

	existing, err := r.FindByEmail(ctx, c.BusinessID, *c.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrCustomerNotFound) {
		return nil, false, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	id := uuid.NewString()
	query, args, err := psqlbuilder.Insert("customers").
		Columns("id", "business_id", "name", "email", "phone").
		Values(id, c.BusinessID, c.Name, strings.TrimSpace(*c.Email), c.Phone).
		Suffix("ON CONFLICT (business_id, lower(email)) DO NOTHING RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("%w: FindOrCreate - build insert query: %w", ErrBuildQuery, err)
	}

	created := *c
	created.ID = id
	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Lost the race to a concurrent insert.
		existing, err := r.FindByEmail(ctx, c.BusinessID, *c.Email)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: FindOrCreate - execute insert: %w", ErrExecQuery, err)
	}
	return &created, true, nil
}

// ListByBusiness returns customers of a business ordered by name.
func (r *Repository) ListByBusiness(ctx context.Context, businessID string) ([]*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("customers").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.BusinessID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByBusiness - scan customer: %w", ErrScanRow, err)
		}
		customers = append(customers, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - rows iteration: %w", ErrScanRow, err)
	}
	return customers, nil
}
