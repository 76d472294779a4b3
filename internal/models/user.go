package models

import "time"

// Roles recognised by the API. Identity and role assignment are issued by an
// external auth provider; this service only consumes them.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

// User represents an account referenced by enrollments, submissions and
// course ownership.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"size:32;not null;default:student" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsInstructor reports whether the user may own courses and grade submissions.
func (u User) IsInstructor() bool {
	return u.Role == RoleInstructor
}
