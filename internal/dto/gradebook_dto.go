package dto

import "time"

// GradebookRow is one (student, assignment) cell of the instructor gradebook.
// Status is one of "missing", "submitted" or "graded". Lateness fields are
// computed, never stored.
type GradebookRow struct {
	StudentID       uint       `json:"student_id"`
	StudentEmail    string     `json:"student_email"`
	AssignmentID    uint       `json:"assignment_id"`
	AssignmentTitle string     `json:"assignment_title"`
	DueAt           *time.Time `json:"due_at"`
	SubmittedAt     *time.Time `json:"submitted_at"`
	Score           *float64   `json:"score"`
	Feedback        *string    `json:"feedback"`
	Status          string     `json:"status"`
	IsLate          bool       `json:"is_late"`
	LateByMinutes   *int       `json:"late_by_minutes"`
}

// StudentSummary aggregates one enrolled student's standing in a course.
// Submitted counts submitted-or-graded; AverageGrade is nil when nothing has
// been graded yet.
type StudentSummary struct {
	StudentID        uint     `json:"student_id"`
	StudentEmail     string   `json:"student_email"`
	TotalAssignments int      `json:"total_assignments"`
	Missing          int      `json:"missing"`
	Submitted        int      `json:"submitted"`
	Graded           int      `json:"graded"`
	AverageGrade     *float64 `json:"average_grade"`
}

// AssignmentStats aggregates one assignment across the whole course roster.
type AssignmentStats struct {
	AssignmentID    uint     `json:"assignment_id"`
	AssignmentTitle string   `json:"assignment_title"`
	TotalStudents   int      `json:"total_students"`
	Submitted       int      `json:"submitted"`
	Graded          int      `json:"graded"`
	Missing         int      `json:"missing"`
	AverageGrade    *float64 `json:"average_grade"`
}
