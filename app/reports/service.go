package reports

import (
	"context"
	"time"

	"greenhill-schools/app/models"
)

// Repository contracts consumed by the report engine. The Postgres
// implementations live in app/database; tests substitute in-memory fakes.

type StudentRepository interface {
	Get(ctx context.Context, studentID string) (*models.Student, error)
	ListByClass(ctx context.Context, classID string) ([]*models.Student, error)
}

type ClassRepository interface {
	Get(ctx context.Context, classID string) (*models.Class, error)
}

type SemesterRepository interface {
	Get(ctx context.Context, semesterID string) (*models.Semester, error)
}

type EnrollmentRepository interface {
	// ClassSubjects lists the subjects taught to a class that have at
	// least one assessment in the semester.
	ClassSubjects(ctx context.Context, classID, semesterID string) ([]*models.Subject, error)
	SpecialEnrollments(ctx context.Context, studentID, semesterID string) ([]*models.SpecialEnrollment, error)
}

type AssessmentRepository interface {
	TypesFor(ctx context.Context, subjectID, classID, semesterID string) ([]*models.AssessmentType, error)
	// StudentAverages returns one record per assessment type configured
	// for the subject/class/semester, carrying the student's average for
	// that type (nil Average when the student attempted none).
	StudentAverages(ctx context.Context, studentID, subjectID, classID, semesterID string) ([]*models.AssessmentRecord, error)
	Counts(ctx context.Context, studentID, subjectID, classID, semesterID string) (total, completed int, err error)
}

const (
	defaultMaxColumns     = 8
	defaultBulkWorkers    = 4
	defaultStudentTimeout = 30 * time.Second
)

// Service drives grade aggregation and report generation. It only reads
// from the repositories; nothing here writes back to storage.
type Service struct {
	students    StudentRepository
	classes     ClassRepository
	semesters   SemesterRepository
	enrollments EnrollmentRepository
	assessments AssessmentRepository

	bulkWorkers    int
	studentTimeout time.Duration
}

// Option tunes a Service.
type Option func(*Service)

// WithBulkWorkers bounds the worker pool used by bulk report runs.
func WithBulkWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.bulkWorkers = n
		}
	}
}

// WithStudentTimeout caps how long one student's pipeline may run during a
// bulk report run before being recorded as an error.
func WithStudentTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.studentTimeout = d
		}
	}
}

func NewService(
	students StudentRepository,
	classes ClassRepository,
	semesters SemesterRepository,
	enrollments EnrollmentRepository,
	assessments AssessmentRepository,
	opts ...Option,
) *Service {
	s := &Service{
		students:       students,
		classes:        classes,
		semesters:      semesters,
		enrollments:    enrollments,
		assessments:    assessments,
		bulkWorkers:    defaultBulkWorkers,
		studentTimeout: defaultStudentTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
