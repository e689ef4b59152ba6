package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// MemoryStore keeps complaints in a process-local map. It is not safe for
// multi-process access and is intended for development and tests.
type MemoryStore struct {
	mu            sync.RWMutex
	complaints    map[string]domain.Complaint
	adminPassword string
	hasPassword   bool

	now func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		complaints: make(map[string]domain.Complaint),
		now:        time.Now,
	}
}

// Name identifies the backend.
func (s *MemoryStore) Name() string { return "memory" }

// Ping always succeeds for the in-memory backend.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close() {}

// ListComplaints returns all complaints ordered by CreatedAt descending.
func (s *MemoryStore) ListComplaints(context.Context) ([]domain.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Complaint, 0, len(s.complaints))
	for _, c := range s.complaints {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// GetComplaint looks up a complaint by id.
func (s *MemoryStore) GetComplaint(_ context.Context, id string) (*domain.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.complaints[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

// CreateComplaint stores a new pending complaint.
func (s *MemoryStore) CreateComplaint(_ context.Context, input domain.NewComplaint) (*domain.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	c := domain.Complaint{
		ID:          uuid.NewString(),
		StudentName: input.StudentName,
		Department:  input.Department,
		IssueTitle:  input.IssueTitle,
		Description: input.Description,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.complaints[c.ID] = c
	return &c, nil
}

// UpdateComplaintStatus sets the status and stamps UpdatedAt, even for
// no-op transitions.
func (s *MemoryStore) UpdateComplaintStatus(_ context.Context, id string, status domain.ComplaintStatus) (*domain.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.complaints[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = s.now().UTC()
	s.complaints[id] = c
	return &c, nil
}

// DeleteComplaint removes a complaint if present.
func (s *MemoryStore) DeleteComplaint(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.complaints[id]; !ok {
		return false, nil
	}
	delete(s.complaints, id)
	return true, nil
}

// CleanupOldResolved removes resolved complaints not updated within daysOld days.
func (s *MemoryStore) CleanupOldResolved(_ context.Context, daysOld int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().UTC().AddDate(0, 0, -daysOld)
	removed := 0
	for id, c := range s.complaints {
		if c.Status == domain.StatusResolved && c.UpdatedAt.Before(cutoff) {
			delete(s.complaints, id)
			removed++
		}
	}
	return removed, nil
}

// AdminPassword returns the stored admin secret.
func (s *MemoryStore) AdminPassword(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasPassword {
		return "", ErrNotFound
	}
	return s.adminPassword, nil
}

// SetAdminPassword stores the admin secret.
func (s *MemoryStore) SetAdminPassword(_ context.Context, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.adminPassword = password
	s.hasPassword = true
	return nil
}
