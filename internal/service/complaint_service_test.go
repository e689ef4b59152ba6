package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/service"
	"github.com/spec-kit/complaint-service/internal/store"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

func newComplaintService() (*service.ComplaintService, events.Dispatcher) {
	dispatcher := events.NewInMemoryDispatcher()
	svc := service.NewComplaintService(store.NewMemoryStore(), dispatcher, zap.NewNop())
	return svc, dispatcher
}

func validInput() domain.NewComplaint {
	return domain.NewComplaint{
		StudentName: "Jo Lee",
		Department:  "Civil Engineering",
		IssueTitle:  "Broken window",
		Description: "Window in room 204 is broken",
	}
}

func TestSubmitComplaintValid(t *testing.T) {
	svc, dispatcher := newComplaintService()

	var published []events.Event
	dispatcher.Subscribe(events.EventComplaintCreated, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	created, err := svc.SubmitComplaint(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, created.Status)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	require.Len(t, published, 1)
	assert.Equal(t, created.ID, published[0].ComplaintID)
	payload, ok := published[0].Payload.(events.ComplaintCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, "Broken window", payload.IssueTitle)
}

func TestSubmitComplaintValidationFailure(t *testing.T) {
	svc, _ := newComplaintService()

	input := validInput()
	input.StudentName = "A"

	_, err := svc.SubmitComplaint(context.Background(), input)
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Details, "studentName: Name must be at least 2 characters")
}

func TestChangeStatusPublishesEvent(t *testing.T) {
	svc, dispatcher := newComplaintService()

	var published []events.Event
	dispatcher.Subscribe(events.EventComplaintStatusChanged, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	created, err := svc.SubmitComplaint(context.Background(), validInput())
	require.NoError(t, err)

	updated, err := svc.ChangeStatus(context.Background(), created.ID, domain.StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, updated.Status)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	require.Len(t, published, 1)
	payload, ok := published[0].Payload.(events.ComplaintStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.StatusResolved, payload.Status)
}

func TestChangeStatusRejectsUnknownValue(t *testing.T) {
	svc, _ := newComplaintService()

	created, err := svc.SubmitComplaint(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.ChangeStatus(context.Background(), created.ID, domain.ComplaintStatus("closed"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestChangeStatusNotFound(t *testing.T) {
	svc, _ := newComplaintService()

	_, err := svc.ChangeStatus(context.Background(), "missing", domain.StatusResolved)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRemoveComplaint(t *testing.T) {
	svc, dispatcher := newComplaintService()

	var published []events.Event
	dispatcher.Subscribe(events.EventComplaintDeleted, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	created, err := svc.SubmitComplaint(context.Background(), validInput())
	require.NoError(t, err)

	existed, err := svc.RemoveComplaint(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Len(t, published, 1)

	existed, err = svc.RemoveComplaint(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, existed)
	assert.Len(t, published, 1)
}
