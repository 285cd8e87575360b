package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fivedigital/contentflow/internal/types"
)

const workflowColumns = `id, employee_id, input_content, generated_content,
	edited_content, status, publication_url, publication_id, created_at, updated_at`

func scanWorkflow(row pgx.Row) (*types.Workflow, error) {
	var w types.Workflow
	err := row.Scan(&w.ID, &w.EmployeeID, &w.InputContent, &w.GeneratedContent,
		&w.EditedContent, &w.Status, &w.PublicationURL, &w.PublicationID,
		&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// CreateWorkflow inserts a new workflow record in DRAFT
func (db *DB) CreateWorkflow(ctx context.Context, employeeID uuid.UUID, inputContent string) (*types.Workflow, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO workflows (employee_id, input_content, status)
		 VALUES ($1, $2, $3)
		 RETURNING `+workflowColumns,
		employeeID, inputContent, types.StatusDraft,
	)
	workflow, err := scanWorkflow(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}
	return workflow, nil
}

// GetWorkflow retrieves a workflow by ID. Returns (nil, nil) if not found.
func (db *DB) GetWorkflow(ctx context.Context, id uuid.UUID) (*types.Workflow, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+workflowColumns+` FROM workflows WHERE id = $1`, id)
	workflow, err := scanWorkflow(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workflow: %w", err)
	}
	return workflow, nil
}

// UpdateWorkflow writes all mutable workflow fields back to the record
func (db *DB) UpdateWorkflow(ctx context.Context, w *types.Workflow) error {
	row := db.pool.QueryRow(ctx,
		`UPDATE workflows
		 SET employee_id = $2, input_content = $3, generated_content = $4,
		     edited_content = $5, status = $6, publication_url = $7,
		     publication_id = $8, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		w.ID, w.EmployeeID, w.InputContent, w.GeneratedContent,
		w.EditedContent, w.Status, w.PublicationURL, w.PublicationID,
	)
	if err := row.Scan(&w.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("workflow %s not found", w.ID)
		}
		return fmt.Errorf("failed to update workflow: %w", err)
	}
	return nil
}

// ListWorkflows returns workflows newest first, optionally filtered by employee
func (db *DB) ListWorkflows(ctx context.Context, employeeID *uuid.UUID) ([]types.Workflow, error) {
	query := `SELECT ` + workflowColumns + ` FROM workflows`
	args := []any{}
	if employeeID != nil {
		query += ` WHERE employee_id = $1`
		args = append(args, *employeeID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}
	defer rows.Close()

	var workflows []types.Workflow
	for rows.Next() {
		workflow, err := scanWorkflow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow: %w", err)
		}
		workflows = append(workflows, *workflow)
	}
	return workflows, rows.Err()
}

// DeleteWorkflow removes a workflow record
func (db *DB) DeleteWorkflow(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM workflows WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workflow: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
