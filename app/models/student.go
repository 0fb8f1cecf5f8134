package models

import "time"

// Student represents a learner enrolled in the school
type Student struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID   string     `json:"student_id" gorm:"uniqueIndex;not null" validate:"required"` // admission number
	FirstName   string     `json:"first_name" gorm:"not null" validate:"required"`
	LastName    string     `json:"last_name" gorm:"not null" validate:"required"`
	Gender      *Gender    `json:"gender,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty" gorm:"type:date"`
	ClassID     *string    `json:"class_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"` // home class
	ProgramID   *string    `json:"program_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Class       *Class     `json:"class,omitempty" gorm:"foreignKey:ClassID;references:ID"`
}

// FullName returns the student's display name, last name first
func (s *Student) FullName() string {
	return s.LastName + " " + s.FirstName
}
