package models

import "time"

// SpecialEnrollment registers a student for a subject outside their home
// class. The designated class determines which class's assessments are
// scored for that subject, overriding the home class.
type SpecialEnrollment struct {
	ID         string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID  string     `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	SubjectID  string     `json:"subject_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ClassID    string     `json:"class_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	SemesterID string     `json:"semester_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Notes      *string    `json:"notes,omitempty"`
	IsActive   bool       `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Student    *Student   `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Subject    *Subject   `json:"subject,omitempty" gorm:"foreignKey:SubjectID;references:ID"`
	Class      *Class     `json:"class,omitempty" gorm:"foreignKey:ClassID;references:ID"`
}
