package models

import "time"

// Assignment belongs to exactly one course. DueAt is optional; an assignment
// without a due date can never be late. The due date may change at any time,
// and lateness is always recomputed against the current value, never cached.
type Assignment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CourseID    uint       `gorm:"not null;index" json:"course_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueAt       *time.Time `gorm:"index" json:"due_at"`
	MaxScore    float64    `gorm:"not null;default:100" json:"max_score"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Course      Course     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsPastDue returns true when a due date exists and the reference time is
// strictly after it.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return a.DueAt != nil && reference.After(*a.DueAt)
}
