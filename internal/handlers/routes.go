package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/breakfast-club/internal/middleware"
)

// RegisterRoutes mounts the health check and the /api routes on app
func RegisterRoutes(app *fiber.App, h *Handler) {
	kitchen := middleware.KitchenRequired(h.cfg)

	app.Get("/health", h.Health)

	api := app.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/token", h.IssueToken)

	// Attendance routes (public read, kitchen write)
	attendance := api.Group("/attendance")
	attendance.Get("/", h.GetAttendance)
	attendance.Put("/draft", kitchen, h.UpdateDraftAttendance)
	attendance.Post("/commit", kitchen, h.CommitAttendance)

	// Leftover routes (public read, kitchen write)
	leftovers := api.Group("/leftovers")
	leftovers.Get("/", h.ListLeftovers)
	leftovers.Post("/scan", kitchen, h.ScanLeftovers)
	leftovers.Put("/:key", kitchen, h.SetLeftover)
	leftovers.Delete("/:key", kitchen, h.ClearLeftover)
	leftovers.Delete("/", kitchen, h.ClearLeftovers)

	// Plan routes
	plan := api.Group("/plan")
	plan.Get("/", h.GetPlan)
	plan.Post("/publish", kitchen, h.PublishPlan)
}
