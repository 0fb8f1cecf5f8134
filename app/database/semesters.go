package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"greenhill-schools/app/models"
)

// SemesterRepo reads semester records for the report engine.
type SemesterRepo struct {
	db *sql.DB
}

func NewSemesterRepo(db *sql.DB) *SemesterRepo {
	return &SemesterRepo{db: db}
}

// Get fetches one semester. Returns (nil, nil) when no such semester exists.
func (r *SemesterRepo) Get(ctx context.Context, semesterID string) (*models.Semester, error) {
	query := `
		SELECT id, name, start_date, end_date, is_current, is_active,
			created_at, updated_at
		FROM semesters
		WHERE id = $1 AND deleted_at IS NULL
	`

	var semester models.Semester
	var start, end time.Time
	err := r.db.QueryRowContext(ctx, query, semesterID).Scan(
		&semester.ID, &semester.Name, &start, &end,
		&semester.IsCurrent, &semester.IsActive,
		&semester.CreatedAt, &semester.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch semester: %w", err)
	}

	semester.StartDate = models.CustomDate{Time: start}
	semester.EndDate = models.CustomDate{Time: end}
	return &semester, nil
}

// GetCurrent fetches the semester flagged as current, falling back to the
// one whose date range contains today.
func (r *SemesterRepo) GetCurrent(ctx context.Context) (*models.Semester, error) {
	query := `
		SELECT id, name, start_date, end_date, is_current, is_active,
			created_at, updated_at
		FROM semesters
		WHERE deleted_at IS NULL AND is_active = true
			AND (is_current = true OR (start_date <= NOW() AND end_date >= NOW()))
		ORDER BY is_current DESC, start_date DESC
		LIMIT 1
	`

	var semester models.Semester
	var start, end time.Time
	err := r.db.QueryRowContext(ctx, query).Scan(
		&semester.ID, &semester.Name, &start, &end,
		&semester.IsCurrent, &semester.IsActive,
		&semester.CreatedAt, &semester.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current semester: %w", err)
	}

	semester.StartDate = models.CustomDate{Time: start}
	semester.EndDate = models.CustomDate{Time: end}
	return &semester, nil
}
