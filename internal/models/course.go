package models

import "time"

// Course groups assignments and enrollments under a single instructor.
type Course struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	InstructorID uint      `gorm:"not null;index" json:"instructor_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether the given user is the course instructor.
func (c Course) IsOwnedBy(userID uint) bool {
	return c.InstructorID == userID
}
