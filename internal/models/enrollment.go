package models

import "time"

// Enrollment links a student to a course. The composite unique index makes a
// duplicate enrol attempt a storage conflict rather than an overwrite, and
// enrollment rows are the source of truth for every per-course denominator:
// a student with zero submissions still counts because this row exists.
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;uniqueIndex:uq_enrollment_student_course" json:"student_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:uq_enrollment_student_course" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
	Student   User      `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Course    Course    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
