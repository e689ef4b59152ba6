package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	StudentName string `json:"studentName"`
	Department  string `json:"department"`
	IssueTitle  string `json:"issueTitle"`
	Description string `json:"description"`
}

// UpdateComplaintStatusRequest payload.
type UpdateComplaintStatusRequest struct {
	Status string `json:"status"`
}

// ComplaintResponse is the wire representation of a complaint.
type ComplaintResponse struct {
	ID          string                 `json:"id"`
	StudentName string                 `json:"studentName"`
	Department  string                 `json:"department"`
	IssueTitle  string                 `json:"issueTitle"`
	Description string                 `json:"description"`
	Status      domain.ComplaintStatus `json:"status"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}
