package database

import (
	"context"
	"database/sql"
	"fmt"

	"greenhill-schools/app/models"
)

// StudentRepo reads student records for the report engine.
type StudentRepo struct {
	db *sql.DB
}

func NewStudentRepo(db *sql.DB) *StudentRepo {
	return &StudentRepo{db: db}
}

// Get fetches one active student. Returns (nil, nil) when no such student
// exists; the caller decides whether that is an error.
func (r *StudentRepo) Get(ctx context.Context, studentID string) (*models.Student, error) {
	query := `
		SELECT id, student_id, first_name, last_name, gender, date_of_birth,
			class_id, program_id, is_active, created_at, updated_at
		FROM students
		WHERE id = $1 AND is_active = true AND deleted_at IS NULL
	`

	student, err := scanStudent(r.db.QueryRowContext(ctx, query, studentID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}
	return student, nil
}

// ListByClass fetches all active students in a class, ordered by name.
func (r *StudentRepo) ListByClass(ctx context.Context, classID string) ([]*models.Student, error) {
	query := `
		SELECT id, student_id, first_name, last_name, gender, date_of_birth,
			class_id, program_id, is_active, created_at, updated_at
		FROM students
		WHERE class_id = $1 AND is_active = true AND deleted_at IS NULL
		ORDER BY last_name, first_name
	`

	rows, err := r.db.QueryContext(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStudent(row rowScanner) (*models.Student, error) {
	var student models.Student
	var gender, classID, programID sql.NullString
	var dob sql.NullTime

	err := row.Scan(
		&student.ID, &student.StudentID, &student.FirstName, &student.LastName,
		&gender, &dob, &classID, &programID,
		&student.IsActive, &student.CreatedAt, &student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if gender.Valid {
		genderVal := models.Gender(gender.String)
		student.Gender = &genderVal
	}
	if dob.Valid {
		student.DateOfBirth = &dob.Time
	}
	if classID.Valid {
		student.ClassID = &classID.String
	}
	if programID.Valid {
		student.ProgramID = &programID.String
	}
	return &student, nil
}
