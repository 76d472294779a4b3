package dto

import "time"

// CourseDashboardRow is the student-facing per-course summary. The next-due
// projection points at the earliest-due assignment the student has not yet
// submitted; all projection fields stay null/false when no such assignment
// exists.
type CourseDashboardRow struct {
	CourseID         uint       `json:"course_id"`
	CourseTitle      string     `json:"course_title"`
	TotalAssignments int        `json:"total_assignments"`
	Submitted        int        `json:"submitted"`
	Missing          int        `json:"missing"`
	Graded           int        `json:"graded"`
	AverageGrade     *float64   `json:"average_grade"`
	NextDueAt        *time.Time `json:"next_due_at"`
	NextDueTitle     *string    `json:"next_due_title"`
	NextDueIsOverdue bool       `json:"next_due_is_overdue"`
}

// InstructorCourseStats summarises one owned course for the instructor
// dashboard.
type InstructorCourseStats struct {
	CourseID            uint   `json:"course_id"`
	CourseTitle         string `json:"course_title"`
	TotalStudents       int    `json:"total_students"`
	TotalAssignments    int    `json:"total_assignments"`
	TotalSubmissions    int    `json:"total_submissions"`
	UngradedSubmissions int    `json:"ungraded_submissions"`
}
