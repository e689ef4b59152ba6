package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

const adminPasswordSetting = "admin_password"

// PostgresStore persists complaints in a relational table and the admin
// secret in a key/value settings table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an established pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Name identifies the backend.
func (s *PostgresStore) Name() string { return "postgres" }

// Ping verifies connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases pool resources.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// ListComplaints returns every complaint, newest first.
func (s *PostgresStore) ListComplaints(ctx context.Context) ([]domain.Complaint, error) {
	const query = `
        SELECT id, student_name, department, issue_title, description, status, created_at, updated_at
        FROM complaints ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError("Failed to fetch complaints from database", err)
	}
	defer rows.Close()

	result := make([]domain.Complaint, 0)
	for rows.Next() {
		var c domain.Complaint
		if err := rows.Scan(
			&c.ID,
			&c.StudentName,
			&c.Department,
			&c.IssueTitle,
			&c.Description,
			&c.Status,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, apperrors.NewStorageError("Failed to fetch complaints from database", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("Failed to fetch complaints from database", err)
	}
	return result, nil
}

// GetComplaint returns a single complaint by id.
func (s *PostgresStore) GetComplaint(ctx context.Context, id string) (*domain.Complaint, error) {
	const query = `
        SELECT id, student_name, department, issue_title, description, status, created_at, updated_at
        FROM complaints WHERE id=$1`
	var c domain.Complaint
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.StudentName,
		&c.Department,
		&c.IssueTitle,
		&c.Description,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewStorageError("Failed to fetch complaint from database", err)
	}
	return &c, nil
}

// CreateComplaint inserts a pending complaint; id and timestamps come from
// column defaults so CreatedAt and UpdatedAt are stamped identically.
func (s *PostgresStore) CreateComplaint(ctx context.Context, input domain.NewComplaint) (*domain.Complaint, error) {
	const query = `
        INSERT INTO complaints (student_name, department, issue_title, description, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	c := domain.Complaint{
		StudentName: input.StudentName,
		Department:  input.Department,
		IssueTitle:  input.IssueTitle,
		Description: input.Description,
		Status:      domain.StatusPending,
	}
	err := s.pool.QueryRow(ctx, query,
		c.StudentName,
		c.Department,
		c.IssueTitle,
		c.Description,
		c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, apperrors.NewStorageError("Failed to create complaint in database", err)
	}
	return &c, nil
}

// UpdateComplaintStatus sets the status and bumps updated_at unconditionally.
func (s *PostgresStore) UpdateComplaintStatus(ctx context.Context, id string, status domain.ComplaintStatus) (*domain.Complaint, error) {
	const query = `
        UPDATE complaints SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING id, student_name, department, issue_title, description, status, created_at, updated_at`
	var c domain.Complaint
	err := s.pool.QueryRow(ctx, query, status, id).Scan(
		&c.ID,
		&c.StudentName,
		&c.Department,
		&c.IssueTitle,
		&c.Description,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewStorageError("Failed to update complaint in database", err)
	}
	return &c, nil
}

// DeleteComplaint removes a complaint and reports whether it existed.
func (s *PostgresStore) DeleteComplaint(ctx context.Context, id string) (bool, error) {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM complaints WHERE id=$1`, id)
	if err != nil {
		return false, apperrors.NewStorageError("Failed to delete complaint from database", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// CleanupOldResolved deletes resolved complaints past the retention cutoff.
func (s *PostgresStore) CleanupOldResolved(ctx context.Context, daysOld int) (int, error) {
	const query = `
        DELETE FROM complaints
        WHERE status=$1 AND updated_at < NOW() - ($2 * INTERVAL '1 day')`
	cmd, err := s.pool.Exec(ctx, query, domain.StatusResolved, daysOld)
	if err != nil {
		return 0, apperrors.NewStorageError("Failed to cleanup old complaints from database", err)
	}
	return int(cmd.RowsAffected()), nil
}

// AdminPassword returns the stored admin secret.
func (s *PostgresStore) AdminPassword(ctx context.Context) (string, error) {
	var value string
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM settings WHERE key=$1`, adminPasswordSetting).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", apperrors.NewStorageError("Failed to fetch settings from database", err)
	}
	return value, nil
}

// SetAdminPassword upserts the admin secret.
func (s *PostgresStore) SetAdminPassword(ctx context.Context, password string) error {
	const query = `
        INSERT INTO settings (key, value) VALUES ($1,$2)
        ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()`
	if _, err := s.pool.Exec(ctx, query, adminPasswordSetting, password); err != nil {
		return apperrors.NewStorageError("Failed to update settings in database", err)
	}
	return nil
}
