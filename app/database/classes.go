package database

import (
	"context"
	"database/sql"
	"fmt"

	"greenhill-schools/app/models"
)

// ClassRepo reads class records for the report engine.
type ClassRepo struct {
	db *sql.DB
}

func NewClassRepo(db *sql.DB) *ClassRepo {
	return &ClassRepo{db: db}
}

// Get fetches one active class. Returns (nil, nil) when no such class exists.
func (r *ClassRepo) Get(ctx context.Context, classID string) (*models.Class, error) {
	query := `
		SELECT c.id, c.name, c.code, c.is_active, c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM students s
			 WHERE s.class_id = c.id AND s.is_active = true AND s.deleted_at IS NULL)
		FROM classes c
		WHERE c.id = $1 AND c.deleted_at IS NULL
	`

	var class models.Class
	err := r.db.QueryRowContext(ctx, query, classID).Scan(
		&class.ID, &class.Name, &class.Code, &class.IsActive,
		&class.CreatedAt, &class.UpdatedAt, &class.StudentCount,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch class: %w", err)
	}
	return &class, nil
}
