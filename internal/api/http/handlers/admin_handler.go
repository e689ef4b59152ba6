package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/observability"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

// AdminHandler exposes admin authentication and maintenance endpoints.
type AdminHandler struct {
	admin         *service.AdminService
	complaints    *service.ComplaintService
	export        *service.ExportService
	sessions      *auth.SessionManager
	metrics       *observability.Metrics
	retentionDays int
}

// NewAdminHandler constructs handler.
func NewAdminHandler(
	adminService *service.AdminService,
	complaintService *service.ComplaintService,
	exportService *service.ExportService,
	sessions *auth.SessionManager,
	metrics *observability.Metrics,
	retentionDays int,
) *AdminHandler {
	return &AdminHandler{
		admin:         adminService,
		complaints:    complaintService,
		export:        exportService,
		sessions:      sessions,
		metrics:       metrics,
		retentionDays: retentionDays,
	}
}

// Login POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMissingCredentials("Password required")
	}

	if err := h.admin.VerifyPassword(c.UserContext(), req.Password); err != nil {
		return err
	}
	if err := h.sessions.Begin(c); err != nil {
		return apperrors.NewSessionError("Failed to start session", err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Authenticated successfully"})
}

// Logout POST /api/admin/logout.
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Destroy(c); err != nil {
		return apperrors.NewSessionError("Failed to logout", err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Logged out successfully"})
}

// Check GET /api/admin/check.
func (h *AdminHandler) Check(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"isAuthenticated": h.sessions.IsAdmin(c)})
}

// Cleanup POST /api/admin/cleanup. Runs the retention sweep on demand.
func (h *AdminHandler) Cleanup(c *fiber.Ctx) error {
	days := h.retentionDays
	var req dto.CleanupRequest
	if err := c.BodyParser(&req); err == nil && req.Days != 0 {
		days = req.Days
	}
	if days <= 0 {
		return apperrors.NewValidationError("Validation failed", "days: must be a positive number")
	}

	removed, err := h.complaints.CleanupOldResolved(c.UserContext(), days)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"removed": removed})
}

// Export GET /api/admin/export. Streams the complaints workbook.
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	complaints, err := h.complaints.ListComplaints(c.UserContext())
	if err != nil {
		return err
	}
	workbook, err := h.export.ComplaintsWorkbook(complaints)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	filename := fmt.Sprintf("complaints-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(workbook)
}

// Metrics GET /api/admin/metrics.
func (h *AdminHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"requests": h.metrics.RequestCounts(),
		"errors":   h.metrics.ErrorCounts(),
	})
}
