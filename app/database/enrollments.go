package database

import (
	"context"
	"database/sql"
	"fmt"

	"greenhill-schools/app/models"
)

// EnrollmentRepo resolves which subjects a student can be scored in.
type EnrollmentRepo struct {
	db *sql.DB
}

func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo {
	return &EnrollmentRepo{db: db}
}

// ClassSubjects lists the subjects taught to a class that have at least
// one assessment in the semester. Subjects without assessments are left
// out so report cards never carry permanently-empty rows.
func (r *EnrollmentRepo) ClassSubjects(ctx context.Context, classID, semesterID string) ([]*models.Subject, error) {
	query := `
		SELECT DISTINCT s.id, s.name, s.code, s.is_active, s.created_at, s.updated_at
		FROM subjects s
		JOIN class_subjects cs ON cs.subject_id = s.id
		WHERE cs.class_id = $1 AND s.deleted_at IS NULL
			AND EXISTS (
				SELECT 1 FROM assessments a
				WHERE a.subject_id = s.id AND a.class_id = $1
					AND a.semester_id = $2 AND a.deleted_at IS NULL
			)
		ORDER BY s.name
	`

	rows, err := r.db.QueryContext(ctx, query, classID, semesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch class subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		var subject models.Subject
		err := rows.Scan(
			&subject.ID, &subject.Name, &subject.Code,
			&subject.IsActive, &subject.CreatedAt, &subject.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, &subject)
	}
	return subjects, rows.Err()
}

// SpecialEnrollments fetches a student's active cross-class enrollments
// for a semester, with the subject joined in for display names.
func (r *EnrollmentRepo) SpecialEnrollments(ctx context.Context, studentID, semesterID string) ([]*models.SpecialEnrollment, error) {
	query := `
		SELECT se.id, se.student_id, se.subject_id, se.class_id, se.semester_id,
			se.notes, se.is_active, se.created_at, se.updated_at,
			s.id, s.name, s.code
		FROM special_enrollments se
		JOIN subjects s ON se.subject_id = s.id
		WHERE se.student_id = $1 AND se.semester_id = $2
			AND se.is_active = true AND se.deleted_at IS NULL
		ORDER BY s.name
	`

	rows, err := r.db.QueryContext(ctx, query, studentID, semesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch special enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.SpecialEnrollment
	for rows.Next() {
		var se models.SpecialEnrollment
		var subject models.Subject
		var notes sql.NullString

		err := rows.Scan(
			&se.ID, &se.StudentID, &se.SubjectID, &se.ClassID, &se.SemesterID,
			&notes, &se.IsActive, &se.CreatedAt, &se.UpdatedAt,
			&subject.ID, &subject.Name, &subject.Code,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan special enrollment: %w", err)
		}

		if notes.Valid {
			se.Notes = &notes.String
		}
		se.Subject = &subject
		enrollments = append(enrollments, &se)
	}
	return enrollments, rows.Err()
}
