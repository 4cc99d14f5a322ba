package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"student-lens/internal/domain"
)

// PostgresApplicationRepository implements ApplicationRepository using
// PostgreSQL.
type PostgresApplicationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresApplicationRepository creates a new PostgresApplicationRepository.
func NewPostgresApplicationRepository(pool *pgxpool.Pool) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{pool: pool}
}

// Create inserts a new writer application with status pending.
func (r *PostgresApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO applications (id, user_id, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`, app.ID, app.UserID, app.Reason, app.Status)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// Get returns the application with the given id, or nil when absent.
func (r *PostgresApplicationRepository) Get(ctx context.Context, id string) (*domain.Application, error) {
	var a domain.Application
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, reason, status, reviewed_by, feedback, created_at, updated_at
		FROM applications
		WHERE id = $1
	`, id).Scan(&a.ID, &a.UserID, &a.Reason, &a.Status, &a.ReviewedBy, &a.Feedback, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query application: %w", err)
	}
	return &a, nil
}

// List returns all applications, newest first.
func (r *PostgresApplicationRepository) List(ctx context.Context) ([]domain.Application, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, reason, status, reviewed_by, feedback, created_at, updated_at
		FROM applications
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(&a.ID, &a.UserID, &a.Reason, &a.Status, &a.ReviewedBy, &a.Feedback, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// Resolve moves a pending application to accepted or rejected. The update is
// guarded by status = 'pending' so a second resolution attempt fails with
// domain.ErrInvalidTransition, and the publisher promotion on acceptance
// commits in the same transaction as the status change.
func (r *PostgresApplicationRepository) Resolve(ctx context.Context, id string, status domain.ApplicationStatus, reviewerID, feedback string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var userID string
	err = tx.QueryRow(ctx, `
		UPDATE applications
		SET status = $1, reviewed_by = $2, feedback = $3, updated_at = NOW()
		WHERE id = $4 AND status = 'pending'
		RETURNING user_id
	`, status, reviewerID, feedback, id).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("check application: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInvalidTransition
	}
	if err != nil {
		return fmt.Errorf("resolve application: %w", err)
	}

	if status == domain.ApplicationAccepted {
		if _, err := tx.Exec(ctx, `UPDATE users SET role = $1 WHERE id = $2`, domain.RolePublisher, userID); err != nil {
			return fmt.Errorf("promote applicant: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit resolution: %w", err)
	}
	return nil
}
