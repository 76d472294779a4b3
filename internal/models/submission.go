package models

import "time"

// Gradebook statuses derived from submission state.
const (
	SubmissionStatusMissing   = "missing"
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusGraded    = "graded"
)

// Submission is the single row a student has for an assignment. The composite
// unique index guarantees at most one row per (assignment, student); a second
// submit call mutates this row in place. Score, Feedback, GradedAt and
// GradedBy are set together on grading and cleared together on resubmission.
type Submission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AssignmentID uint       `gorm:"not null;uniqueIndex:uq_submission_assignment_student" json:"assignment_id"`
	StudentID    uint       `gorm:"not null;uniqueIndex:uq_submission_assignment_student" json:"student_id"`
	Content      string     `gorm:"type:text" json:"content"`
	SubmittedAt  time.Time  `gorm:"not null" json:"submitted_at"`
	Score        *float64   `json:"score"`
	Feedback     *string    `gorm:"type:text" json:"feedback"`
	GradedAt     *time.Time `json:"graded_at"`
	GradedBy     *uint      `json:"graded_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Assignment   Assignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Student      User       `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsGraded reports whether grading output is present. Score and GradedAt are
// always set and cleared together, so checking one checks both.
func (s Submission) IsGraded() bool {
	return s.Score != nil
}

// Status returns the lifecycle status used in gradebook views.
func (s Submission) Status() string {
	if s.IsGraded() {
		return SubmissionStatusGraded
	}
	return SubmissionStatusSubmitted
}

// ClearGrading voids all grading output. Called on resubmission; grading
// never survives a new upload.
func (s *Submission) ClearGrading() {
	s.Score = nil
	s.Feedback = nil
	s.GradedAt = nil
	s.GradedBy = nil
}
