package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/service"
	"github.com/spec-kit/complaint-service/internal/store"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

// ComplaintsHandler manages public and admin complaint endpoints.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// List GET /api/complaints.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
	complaints, err := h.service.ListComplaints(c.UserContext())
	if err != nil {
		return err
	}

	items := make([]dto.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, complaintResponse(&complaints[i]))
	}
	return c.JSON(items)
}

// Get GET /api/complaints/:id.
func (h *ComplaintsHandler) Get(c *fiber.Ctx) error {
	complaint, err := h.service.GetComplaint(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NewNotFound("Complaint")
		}
		return err
	}
	return c.JSON(complaintResponse(complaint))
}

// Create POST /api/complaints.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Validation failed", "invalid request body")
	}

	complaint, err := h.service.SubmitComplaint(c.UserContext(), domain.NewComplaint{
		StudentName: req.StudentName,
		Department:  req.Department,
		IssueTitle:  req.IssueTitle,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(complaintResponse(complaint))
}

// UpdateStatus PATCH /api/complaints/:id. Admin only.
func (h *ComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateComplaintStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Validation failed", "invalid request body")
	}

	complaint, err := h.service.ChangeStatus(c.UserContext(), c.Params("id"), domain.ComplaintStatus(req.Status))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NewNotFound("Complaint")
		}
		return err
	}
	return c.JSON(complaintResponse(complaint))
}

// Delete DELETE /api/complaints/:id. Admin only.
func (h *ComplaintsHandler) Delete(c *fiber.Ctx) error {
	existed, err := h.service.RemoveComplaint(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if !existed {
		return apperrors.NewNotFound("Complaint")
	}
	return c.SendStatus(http.StatusNoContent)
}

func complaintResponse(complaint *domain.Complaint) dto.ComplaintResponse {
	return dto.ComplaintResponse{
		ID:          complaint.ID,
		StudentName: complaint.StudentName,
		Department:  complaint.Department,
		IssueTitle:  complaint.IssueTitle,
		Description: complaint.Description,
		Status:      complaint.Status,
		CreatedAt:   complaint.CreatedAt,
		UpdatedAt:   complaint.UpdatedAt,
	}
}
