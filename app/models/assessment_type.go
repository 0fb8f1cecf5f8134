package models

import "time"

// AssessmentType represents a category of student assessment (e.g., Exam, Quiz, Project).
// Weight is the percentage the type contributes to a subject's final score;
// 0 means the type carries no fixed weight and is blended into whatever
// weight budget the weighted types leave unused.
type AssessmentType struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Weight    float64    `json:"weight" gorm:"default:0" validate:"gte=0,lte=100"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

// AssessmentRecord is one assessment type's slice of a student's work in a
// subject: the average score across that type's assessments (nil when the
// student attempted none) and the attempt counts behind it.
type AssessmentRecord struct {
	SubjectID            string   `json:"subject_id"`
	ClassID              string   `json:"class_id"`
	TypeName             string   `json:"type_name"`
	Weight               float64  `json:"weight"`
	Average              *float64 `json:"average,omitempty"`
	TotalAssessments     int      `json:"total_assessments"`
	CompletedAssessments int      `json:"completed_assessments"`
}
