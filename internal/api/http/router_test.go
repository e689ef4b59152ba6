package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/complaint-service/internal/api/http"
	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/observability"
	"github.com/spec-kit/complaint-service/internal/service"
	"github.com/spec-kit/complaint-service/internal/store"
)

const testAdminPassword = "super-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Name:    "complaint-service-test",
			Env:     "test",
			Version: "test",
		},
		Auth: config.AuthConfig{
			AdminPassword:     testAdminPassword,
			SessionSecret:     "test-session-secret",
			SessionTTLMinutes: 60,
		},
		Retention: config.RetentionConfig{Days: 30},
	}

	logger := zap.NewNop()
	st := store.NewMemoryStore()

	adminService := service.NewAdminService(cfg, st, logger)
	require.NoError(t, adminService.EnsureAdminPassword(context.Background()))

	dispatcher := events.NewInMemoryDispatcher()
	complaintService := service.NewComplaintService(st, dispatcher, logger)
	exportService := service.NewExportService()

	sessions := auth.NewSessionManager(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL(), false)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, st),
		Admin:        handlers.NewAdminHandler(adminService, complaintService, exportService, sessions, metrics, cfg.Retention.Days),
		Complaints:   handlers.NewComplaintsHandler(complaintService),
		RequireAdmin: auth.RequireAdmin(sessions),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any, cookies []*http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func loginAdmin(t *testing.T, app *fiber.App) []*http.Cookie {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/admin/login", fiber.Map{"password": testAdminPassword}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func submitComplaint(t *testing.T, app *fiber.App, req dto.CreateComplaintRequest) dto.ComplaintResponse {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/complaints", req, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.ComplaintResponse
	decodeBody(t, resp, &created)
	return created
}

func TestSubmitThenResolveFlow(t *testing.T) {
	app := newTestApp(t)

	created := submitComplaint(t, app, dto.CreateComplaintRequest{
		StudentName: "Jo Lee",
		Department:  "Computer Science Engineering (CSE)",
		IssueTitle:  "Broken projector in lab",
		Description: "The projector in lab 204 has not worked for two weeks.",
	})
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "pending", string(created.Status))

	// Mutation without a session must be rejected before any store call.
	resp := doJSON(t, app, http.MethodPatch, "/api/complaints/"+created.ID, fiber.Map{"status": "resolved"}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/complaints/"+created.ID, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var unchanged dto.ComplaintResponse
	decodeBody(t, resp, &unchanged)
	assert.Equal(t, "pending", string(unchanged.Status))

	cookies := loginAdmin(t, app)

	resp = doJSON(t, app, http.MethodPatch, "/api/complaints/"+created.ID, fiber.Map{"status": "resolved"}, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var resolved dto.ComplaintResponse
	decodeBody(t, resp, &resolved)
	assert.Equal(t, "resolved", string(resolved.Status))
	assert.False(t, resolved.UpdatedAt.Before(resolved.CreatedAt))

	// After logout the same cookie no longer opens the guard.
	resp = doJSON(t, app, http.MethodPost, "/api/admin/logout", nil, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPatch, "/api/complaints/"+created.ID, fiber.Map{"status": "pending"}, cookies)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSubmitComplaintValidationFailure(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/complaints", dto.CreateComplaintRequest{
		StudentName: "J",
		Department:  "Computer Science Engineering (CSE)",
		IssueTitle:  "Broken projector in lab",
		Description: "The projector in lab 204 has not worked for two weeks.",
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "Validation failed", body["error"])
	details, _ := body["details"].(string)
	assert.Contains(t, details, "at least 2")
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/login", fiber.Map{"password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "Invalid password", body["error"])

	resp = doJSON(t, app, http.MethodPost, "/api/admin/login", fiber.Map{"password": ""}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminCheckReflectsSessionState(t *testing.T) {
	app := newTestApp(t)

	checkAuth := func(cookies []*http.Cookie) bool {
		resp := doJSON(t, app, http.MethodGet, "/api/admin/check", nil, cookies)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			IsAuthenticated bool `json:"isAuthenticated"`
		}
		decodeBody(t, resp, &body)
		return body.IsAuthenticated
	}

	assert.False(t, checkAuth(nil))

	cookies := loginAdmin(t, app)
	assert.True(t, checkAuth(cookies))

	resp := doJSON(t, app, http.MethodPost, "/api/admin/logout", nil, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, checkAuth(cookies))
}

func TestDeleteComplaint(t *testing.T) {
	app := newTestApp(t)

	created := submitComplaint(t, app, dto.CreateComplaintRequest{
		StudentName: "Jo Lee",
		Department:  "Civil Engineering",
		IssueTitle:  "Missing reference books",
		Description: "Several reference books from the catalog cannot be found on the shelves.",
	})

	resp := doJSON(t, app, http.MethodDelete, "/api/complaints/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	cookies := loginAdmin(t, app)

	resp = doJSON(t, app, http.MethodDelete, "/api/complaints/"+created.ID, nil, cookies)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/complaints/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Deleting again reports not found rather than erroring.
	resp = doJSON(t, app, http.MethodDelete, "/api/complaints/"+created.ID, nil, cookies)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListComplaintsReturnsBareArray(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/complaints", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var empty []dto.ComplaintResponse
	decodeBody(t, resp, &empty)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)

	for i := 0; i < 2; i++ {
		submitComplaint(t, app, dto.CreateComplaintRequest{
			StudentName: fmt.Sprintf("Student %d", i),
			Department:  "Mechanical Engineering",
			IssueTitle:  fmt.Sprintf("Water supply issue %d", i),
			Description: "No water supply on the third floor since yesterday morning.",
		})
	}

	resp = doJSON(t, app, http.MethodGet, "/api/complaints", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []dto.ComplaintResponse
	decodeBody(t, resp, &listed)
	assert.Len(t, listed, 2)
}

func TestGetUnknownComplaint(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/complaints/no-such-id", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "Complaint not found", body["error"])
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/health/live", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/health/ready", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, "ok", body.Dependencies["memory"])
}

func TestAdminExportRequiresSession(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/admin/export", nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	submitComplaint(t, app, dto.CreateComplaintRequest{
		StudentName: "Jo Lee",
		Department:  "Information Technology (IT)",
		IssueTitle:  "Result discrepancy",
		Description: "My semester result shows a grade that does not match the published answer key.",
	})

	cookies := loginAdmin(t, app)
	resp = doJSON(t, app, http.MethodGet, "/api/admin/export", nil, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "complaints-")

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}

func TestAdminCleanup(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/cleanup", nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	cookies := loginAdmin(t, app)

	resp = doJSON(t, app, http.MethodPost, "/api/admin/cleanup", fiber.Map{"days": 7}, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, float64(0), body["removed"])

	resp = doJSON(t, app, http.MethodPost, "/api/admin/cleanup", fiber.Map{"days": -1}, cookies)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
