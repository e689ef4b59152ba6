package store

import (
	"context"
	"errors"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ErrNotFound is returned when a record does not exist in the selected backend.
var ErrNotFound = errors.New("record not found")

// ComplaintStore encapsulates complaint persistence. All backends behave
// identically under this contract.
type ComplaintStore interface {
	// ListComplaints returns every complaint ordered by creation time,
	// newest first. An empty store yields an empty slice.
	ListComplaints(ctx context.Context) ([]domain.Complaint, error)
	// GetComplaint returns the complaint or ErrNotFound.
	GetComplaint(ctx context.Context, id string) (*domain.Complaint, error)
	// CreateComplaint assigns a fresh id, forces status to pending and stamps
	// both timestamps. Field validation is the caller's responsibility.
	CreateComplaint(ctx context.Context, input domain.NewComplaint) (*domain.Complaint, error)
	// UpdateComplaintStatus stamps UpdatedAt even when the status value does
	// not change. Transitions are unrestricted in either direction.
	UpdateComplaintStatus(ctx context.Context, id string, status domain.ComplaintStatus) (*domain.Complaint, error)
	// DeleteComplaint reports whether a record existed and was removed.
	DeleteComplaint(ctx context.Context, id string) (bool, error)
	// CleanupOldResolved removes resolved complaints whose UpdatedAt is older
	// than now minus daysOld and returns how many were removed. Safe to call
	// repeatedly.
	CleanupOldResolved(ctx context.Context, daysOld int) (int, error)
}

// SettingsStore holds the single admin secret, backed by the same backend
// selection as the complaint store.
type SettingsStore interface {
	// AdminPassword returns the stored secret or ErrNotFound when absent.
	AdminPassword(ctx context.Context) (string, error)
	SetAdminPassword(ctx context.Context, password string) error
}

// Store is the per-process persistence handle: one backend serves both the
// complaint and settings contracts.
type Store interface {
	ComplaintStore
	SettingsStore

	// Name identifies the backend for logs and health reporting.
	Name() string
	// Ping verifies backend connectivity.
	Ping(ctx context.Context) error
	// Close releases backend resources.
	Close()
}
