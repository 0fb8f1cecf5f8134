package reportsapi

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"greenhill-schools/app/reports"
)

var validate = validator.New()

// GetStudentReport returns the computed report card for one student and
// semester. A student with no scorable subjects gets a clear 404 message
// instead of a blank document.
func GetStudentReport(c *fiber.Ctx, svc *reports.Service) error {
	studentID := c.Params("id")
	semesterID := c.Query("semester_id")
	if semesterID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "semester_id is required",
		})
	}

	doc, err := svc.BuildReportCard(c.Context(), studentID, semesterID)
	if err != nil {
		return mapServiceError(c, err, "Failed to build report card")
	}

	if len(doc.Subjects) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No results available for this student in the selected semester",
		})
	}

	return c.JSON(doc)
}

// GetClassResults returns the ranked, paginated results table for a class.
func GetClassResults(c *fiber.Ctx, svc *reports.Service) error {
	classID := c.Params("id")
	semesterID := c.Query("semester_id")
	if semesterID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "semester_id is required",
		})
	}
	columns := c.QueryInt("columns", 0)

	table, err := svc.BuildClassTable(c.Context(), classID, semesterID, columns)
	if err != nil {
		return mapServiceError(c, err, "Failed to build class results")
	}

	return c.JSON(table)
}

// BulkReportRequest is the body for a bulk class report run.
type BulkReportRequest struct {
	SemesterID string `json:"semester_id" validate:"required,uuid"`
}

// GenerateClassReports runs the report pipeline for every student in a
// class and returns the batch outcome: generated documents plus an error
// entry for every student that failed.
func GenerateClassReports(c *fiber.Ctx, svc *reports.Service) error {
	classID := c.Params("id")

	var req BulkReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "semester_id must be a valid uuid",
		})
	}

	batch, err := svc.GenerateClassReports(c.Context(), classID, req.SemesterID)
	if err != nil {
		if errors.Is(err, reports.ErrAllFailed) && batch != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "All students in this class failed report generation",
				"errors": batch.Errors,
			})
		}
		if errors.Is(err, reports.ErrNoStudents) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "Class has no students",
			})
		}
		return mapServiceError(c, err, "Failed to generate class reports")
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"batch_id":  batch.BatchID,
		"class":     batch.Class,
		"semester":  batch.Semester,
		"succeeded": batch.Succeeded(),
		"failed":    batch.Failed(),
		"errors":    batch.Errors,
		"documents": batch.Documents,
	})
}

// mapServiceError translates engine errors into API responses, logging
// anything unexpected.
func mapServiceError(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, reports.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	log.Printf("%s: %v", fallback, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fallback,
	})
}
