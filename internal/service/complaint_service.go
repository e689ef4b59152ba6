package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/store"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

// ComplaintService coordinates complaint workflows: validation, store
// delegation and event publication.
type ComplaintService struct {
	store      store.ComplaintStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewComplaintService constructs the service.
func NewComplaintService(complaints store.ComplaintStore, dispatcher events.Dispatcher, logger *zap.Logger) *ComplaintService {
	return &ComplaintService{store: complaints, dispatcher: dispatcher, logger: logger}
}

// ListComplaints returns all complaints, newest first.
func (s *ComplaintService) ListComplaints(ctx context.Context) ([]domain.Complaint, error) {
	return s.store.ListComplaints(ctx)
}

// GetComplaint returns a complaint by id.
func (s *ComplaintService) GetComplaint(ctx context.Context, id string) (*domain.Complaint, error) {
	return s.store.GetComplaint(ctx, id)
}

// SubmitComplaint validates the submission and stores it as pending.
func (s *ComplaintService) SubmitComplaint(ctx context.Context, input domain.NewComplaint) (*domain.Complaint, error) {
	if problems := input.Validate(); problems != nil {
		return nil, apperrors.NewValidationError("Validation failed", domain.FormatFieldErrors(problems))
	}

	complaint, err := s.store.CreateComplaint(ctx, input)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventComplaintCreated, complaint.ID, events.ComplaintCreatedPayload{
		StudentName: complaint.StudentName,
		Department:  complaint.Department,
		IssueTitle:  complaint.IssueTitle,
	})
	return complaint, nil
}

// ChangeStatus flips a complaint between pending and resolved. Either
// direction is allowed; a resolved complaint can be reopened.
func (s *ComplaintService) ChangeStatus(ctx context.Context, id string, status domain.ComplaintStatus) (*domain.Complaint, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("Validation failed", "status: must be \"pending\" or \"resolved\"")
	}

	complaint, err := s.store.UpdateComplaintStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventComplaintStatusChanged, complaint.ID, events.ComplaintStatusChangedPayload{
		Status: complaint.Status,
	})
	return complaint, nil
}

// RemoveComplaint deletes a complaint and reports whether it existed.
func (s *ComplaintService) RemoveComplaint(ctx context.Context, id string) (bool, error) {
	existing, err := s.store.GetComplaint(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	existed, err := s.store.DeleteComplaint(ctx, id)
	if err != nil {
		return false, err
	}
	if existed {
		s.publish(ctx, events.EventComplaintDeleted, id, events.ComplaintDeletedPayload{
			IssueTitle: existing.IssueTitle,
		})
	}
	return existed, nil
}

// CleanupOldResolved runs the retention sweep and returns the removal count.
func (s *ComplaintService) CleanupOldResolved(ctx context.Context, daysOld int) (int, error) {
	removed, err := s.store.CleanupOldResolved(ctx, daysOld)
	if err != nil {
		return 0, err
	}
	s.logger.Info("retention sweep completed",
		zap.Int("days_old", daysOld),
		zap.Int("removed", removed))
	return removed, nil
}

func (s *ComplaintService) publish(ctx context.Context, eventType events.EventType, complaintID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		ComplaintID: complaintID,
		Timestamp:   time.Now().UTC(),
		Payload:     payload,
	})
}
