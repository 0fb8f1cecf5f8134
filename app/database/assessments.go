package database

import (
	"context"
	"database/sql"
	"fmt"

	"greenhill-schools/app/models"
)

// AssessmentRepo aggregates raw assessment scores into the per-type rows
// the report engine consumes. The per-type averaging happens in SQL so a
// class-wide report run stays at a handful of queries per student.
type AssessmentRepo struct {
	db *sql.DB
}

func NewAssessmentRepo(db *sql.DB) *AssessmentRepo {
	return &AssessmentRepo{db: db}
}

// TypesFor lists the assessment types configured for a subject in a class
// and semester, with their weights. A type counts as configured once at
// least one assessment of that type exists; its weight comes from the
// weight table, defaulting to 0 (unweighted) when none is set.
func (r *AssessmentRepo) TypesFor(ctx context.Context, subjectID, classID, semesterID string) ([]*models.AssessmentType, error) {
	query := `
		SELECT DISTINCT at.id, at.name, COALESCE(aw.weight, 0), at.is_active,
			at.created_at, at.updated_at
		FROM assessment_types at
		JOIN assessments a ON a.assessment_type_id = at.id
		LEFT JOIN assessment_weights aw ON aw.assessment_type_id = at.id
			AND aw.subject_id = $1 AND aw.class_id = $2 AND aw.semester_id = $3
		WHERE a.subject_id = $1 AND a.class_id = $2 AND a.semester_id = $3
			AND a.deleted_at IS NULL AND at.deleted_at IS NULL
		ORDER BY at.name
	`

	rows, err := r.db.QueryContext(ctx, query, subjectID, classID, semesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assessment types: %w", err)
	}
	defer rows.Close()

	var types []*models.AssessmentType
	for rows.Next() {
		var at models.AssessmentType
		err := rows.Scan(&at.ID, &at.Name, &at.Weight, &at.IsActive, &at.CreatedAt, &at.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment type: %w", err)
		}
		types = append(types, &at)
	}
	return types, rows.Err()
}

// StudentAverages returns one record per configured assessment type with
// the student's average score across that type's assessments. Average is
// nil when the student attempted none of them.
func (r *AssessmentRepo) StudentAverages(ctx context.Context, studentID, subjectID, classID, semesterID string) ([]*models.AssessmentRecord, error) {
	query := `
		SELECT at.name, COALESCE(aw.weight, 0),
			AVG(ar.score), COUNT(a.id), COUNT(ar.id)
		FROM assessment_types at
		JOIN assessments a ON a.assessment_type_id = at.id
			AND a.subject_id = $2 AND a.class_id = $3 AND a.semester_id = $4
			AND a.deleted_at IS NULL
		LEFT JOIN assessment_weights aw ON aw.assessment_type_id = at.id
			AND aw.subject_id = $2 AND aw.class_id = $3 AND aw.semester_id = $4
		LEFT JOIN assessment_results ar ON ar.assessment_id = a.id
			AND ar.student_id = $1 AND ar.deleted_at IS NULL
		WHERE at.deleted_at IS NULL
		GROUP BY at.id, at.name, aw.weight
		ORDER BY at.name
	`

	rows, err := r.db.QueryContext(ctx, query, studentID, subjectID, classID, semesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch student averages: %w", err)
	}
	defer rows.Close()

	var records []*models.AssessmentRecord
	for rows.Next() {
		rec := &models.AssessmentRecord{
			SubjectID: subjectID,
			ClassID:   classID,
		}
		var avg sql.NullFloat64

		err := rows.Scan(&rec.TypeName, &rec.Weight, &avg,
			&rec.TotalAssessments, &rec.CompletedAssessments)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student average: %w", err)
		}

		if avg.Valid {
			rec.Average = &avg.Float64
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Counts reports how many assessments exist for the subject in the
// scoring class and semester, and how many of them the student completed.
func (r *AssessmentRepo) Counts(ctx context.Context, studentID, subjectID, classID, semesterID string) (total, completed int, err error) {
	query := `
		SELECT COUNT(a.id), COUNT(ar.id)
		FROM assessments a
		LEFT JOIN assessment_results ar ON ar.assessment_id = a.id
			AND ar.student_id = $1 AND ar.deleted_at IS NULL
		WHERE a.subject_id = $2 AND a.class_id = $3 AND a.semester_id = $4
			AND a.deleted_at IS NULL
	`

	err = r.db.QueryRowContext(ctx, query, studentID, subjectID, classID, semesterID).Scan(&total, &completed)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch assessment counts: %w", err)
	}
	return total, completed, nil
}
