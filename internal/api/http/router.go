package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/studio-scheduler/internal/api/http/handlers"
	"github.com/spec-kit/studio-scheduler/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health           *handlers.HealthHandler
	Assignments      *handlers.AssignmentsHandler
	Bookings         *handlers.BookingsHandler
	TenantMiddleware *auth.TenantMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	protected := app.Group("", cfg.TenantMiddleware.Handle)

	protected.Get("/studios/:studio_id/assignments", cfg.Assignments.ListForStudio)
	protected.Post("/assignments/bulk", cfg.Assignments.BulkUpsert)
	protected.Delete("/assignments/:service_id/:staff_id", cfg.Assignments.Delete)

	protected.Get("/bookings/route", cfg.Bookings.Route)
	protected.Get("/bookings", cfg.Bookings.List)
	protected.Post("/bookings", cfg.Bookings.Create)
	protected.Delete("/bookings/:id", cfg.Bookings.Cancel)
}
