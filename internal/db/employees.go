package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fivedigital/contentflow/internal/types"
)

const employeeColumns = `id, name, email, linkedin_profile, drive_folder_id,
	tone_description, sample_texts_url, created_at, updated_at`

func scanEmployee(row pgx.Row) (*types.Employee, error) {
	var e types.Employee
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.LinkedInProfile, &e.DriveFolderID,
		&e.ToneDescription, &e.SampleTextsURL, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEmployee inserts a new employee record
func (db *DB) CreateEmployee(ctx context.Context, form *types.EmployeeForm) (*types.Employee, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO employees (name, email, linkedin_profile, drive_folder_id, tone_description, sample_texts_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+employeeColumns,
		form.Name, form.Email, form.LinkedInProfile, form.DriveFolderID,
		form.ToneDescription, form.SampleTextsURL,
	)
	employee, err := scanEmployee(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return employee, nil
}

// GetEmployee retrieves an employee by ID. Returns (nil, nil) if not found.
func (db *DB) GetEmployee(ctx context.Context, id uuid.UUID) (*types.Employee, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	employee, err := scanEmployee(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee, nil
}

// ListEmployees returns all employees ordered by name
func (db *DB) ListEmployees(ctx context.Context) ([]types.Employee, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []types.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, *employee)
	}
	return employees, rows.Err()
}

// UpdateEmployee updates the mutable fields of an employee record
func (db *DB) UpdateEmployee(ctx context.Context, id uuid.UUID, form *types.EmployeeForm) (*types.Employee, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE employees
		 SET name = $2, email = $3, linkedin_profile = $4, drive_folder_id = $5,
		     tone_description = $6, sample_texts_url = $7, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+employeeColumns,
		id, form.Name, form.Email, form.LinkedInProfile, form.DriveFolderID,
		form.ToneDescription, form.SampleTextsURL,
	)
	employee, err := scanEmployee(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee, nil
}

// DeleteEmployee removes an employee. The style profile and workflows cascade
// at the schema level.
func (db *DB) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetSampleTextsURL records where an employee's sample posts can be fetched from
func (db *DB) SetSampleTextsURL(ctx context.Context, id uuid.UUID, url string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE employees SET sample_texts_url = $2, updated_at = NOW() WHERE id = $1`,
		id, url)
	if err != nil {
		return fmt.Errorf("failed to set sample texts URL: %w", err)
	}
	return nil
}
