package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Admin        *handlers.AdminHandler
	Complaints   *handlers.ComplaintsHandler
	RequireAdmin fiber.Handler
}

// RegisterRoutes wires HTTP routes. Mutating complaint routes pass the admin
// guard before any store call.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	admin := api.Group("/admin")
	admin.Post("/login", cfg.Admin.Login)
	admin.Post("/logout", cfg.Admin.Logout)
	admin.Get("/check", cfg.Admin.Check)
	admin.Post("/cleanup", cfg.RequireAdmin, cfg.Admin.Cleanup)
	admin.Get("/export", cfg.RequireAdmin, cfg.Admin.Export)
	admin.Get("/metrics", cfg.RequireAdmin, cfg.Admin.Metrics)

	api.Get("/complaints", cfg.Complaints.List)
	api.Post("/complaints", cfg.Complaints.Create)
	api.Get("/complaints/:id", cfg.Complaints.Get)
	api.Patch("/complaints/:id", cfg.RequireAdmin, cfg.Complaints.UpdateStatus)
	api.Delete("/complaints/:id", cfg.RequireAdmin, cfg.Complaints.Delete)
}
