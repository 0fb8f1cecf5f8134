package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"greenhill-schools/app/config"
	"greenhill-schools/app/database"
	"greenhill-schools/app/reports"
	reportsapi "greenhill-schools/app/routes/reports"
)

// apiErrorHandler renders every unhandled error as JSON
func apiErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Initialize configuration and database
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	db := config.GetDB()
	svc := reports.NewService(
		database.NewStudentRepo(db),
		database.NewClassRepo(db),
		database.NewSemesterRepo(db),
		database.NewEnrollmentRepo(db),
		database.NewAssessmentRepo(db),
		reports.WithBulkWorkers(config.AppConfig.BulkWorkers),
		reports.WithStudentTimeout(time.Duration(config.AppConfig.StudentTimeout)*time.Second),
	)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: apiErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Health check
	app.Get("/api/health", func(c *fiber.Ctx) error {
		if err := db.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"error":  "database unreachable",
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Setup report routes
	reportsapi.SetupReportRoutes(app, svc)

	addr := fmt.Sprintf(":%d", config.AppConfig.Port)
	log.Printf("Server listening on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatal("Server stopped:", err)
	}
}
