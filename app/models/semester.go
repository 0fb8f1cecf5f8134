package models

import "time"

// CustomDate handles date-only JSON parsing
type CustomDate struct {
	time.Time
}

func (cd *CustomDate) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	cd.Time = t
	return nil
}

func (cd CustomDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + cd.Format("2006-01-02") + `"`), nil
}

// Semester represents a grading period within an academic year.
// Start and end dates arrive already resolved for the requesting
// student's form level; double-track resolution happens upstream.
type Semester struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name      string     `json:"name" gorm:"not null"`
	StartDate CustomDate `json:"start_date" gorm:"not null;type:date"`
	EndDate   CustomDate `json:"end_date" gorm:"not null;type:date"`
	IsCurrent bool       `json:"is_current" gorm:"default:false"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"default:now()"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"default:now()"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

// IsCurrentByDate checks if the semester is current based on today's date
func (s *Semester) IsCurrentByDate() bool {
	now := time.Now()
	return !now.Before(s.StartDate.Time) && !now.After(s.EndDate.Time)
}
