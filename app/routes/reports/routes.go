package reportsapi

import (
	"github.com/gofiber/fiber/v2"

	"greenhill-schools/app/reports"
)

// SetupReportRoutes sets up all report-generation routes
func SetupReportRoutes(app *fiber.App, svc *reports.Service) {
	api := app.Group("/api/reports")
	api.Get("/students/:id", func(c *fiber.Ctx) error { return GetStudentReport(c, svc) })
	api.Get("/classes/:id/results", func(c *fiber.Ctx) error { return GetClassResults(c, svc) })
	api.Post("/classes/:id/bulk", func(c *fiber.Ctx) error { return GenerateClassReports(c, svc) })
}
