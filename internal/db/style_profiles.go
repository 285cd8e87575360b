package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fivedigital/contentflow/internal/types"
)

// GetStyleProfileByEmployee retrieves the style profile for an employee.
// Returns (nil, nil) if the employee has no profile yet.
func (db *DB) GetStyleProfileByEmployee(ctx context.Context, employeeID uuid.UUID) (*types.StyleProfile, error) {
	var (
		profile          types.StyleProfile
		quantJSON        []byte
		qualJSON         []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, employee_id, analyzed_at, quantitative, qualitative
		 FROM style_profiles WHERE employee_id = $1`,
		employeeID,
	).Scan(&profile.ID, &profile.EmployeeID, &profile.AnalyzedAt, &quantJSON, &qualJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get style profile: %w", err)
	}

	if err := json.Unmarshal(quantJSON, &profile.Quantitative); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quantitative profile: %w", err)
	}
	if err := json.Unmarshal(qualJSON, &profile.Qualitative); err != nil {
		return nil, fmt.Errorf("failed to unmarshal qualitative profile: %w", err)
	}
	return &profile, nil
}

// SaveStyleProfile stores an analysis payload as the employee's style profile.
// The write is a whole-record replace; an existing profile is overwritten,
// never partially updated.
func (db *DB) SaveStyleProfile(ctx context.Context, employeeID uuid.UUID, payload *types.StyleProfilePayload) (*types.StyleProfile, error) {
	quantJSON, err := json.Marshal(payload.Quantitative)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quantitative profile: %w", err)
	}
	qualJSON, err := json.Marshal(payload.Qualitative)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal qualitative profile: %w", err)
	}

	var profile types.StyleProfile
	err = db.pool.QueryRow(ctx,
		`INSERT INTO style_profiles (employee_id, quantitative, qualitative)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (employee_id)
		 DO UPDATE SET quantitative = $2, qualitative = $3, analyzed_at = NOW()
		 RETURNING id, employee_id, analyzed_at`,
		employeeID, quantJSON, qualJSON,
	).Scan(&profile.ID, &profile.EmployeeID, &profile.AnalyzedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save style profile: %w", err)
	}

	profile.Quantitative = payload.Quantitative
	profile.Qualitative = payload.Qualitative
	return &profile, nil
}

// DeleteStyleProfile removes the style profile for an employee, if present
func (db *DB) DeleteStyleProfile(ctx context.Context, employeeID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM style_profiles WHERE employee_id = $1`, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete style profile: %w", err)
	}
	return nil
}
