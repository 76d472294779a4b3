package dto

import (
	"time"

	"github.com/classward/classward-api/internal/latepolicy"
	"github.com/classward/classward-api/internal/models"
)

// SubmissionCreateRequest is the payload for submitting (or resubmitting)
// work for an assignment.
type SubmissionCreateRequest struct {
	Content string `json:"content" validate:"required"`
}

// GradeSubmissionRequest is the payload for grading a submission. Score is a
// pointer so an explicit zero passes validation.
type GradeSubmissionRequest struct {
	Score    *float64 `json:"score" validate:"required,gte=0"`
	Feedback *string  `json:"feedback" validate:"omitempty"`
}

// StudentLite summarises a student without exposing full profile data.
type StudentLite struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
// IsLate and LateByMinutes are computed from the late policy at read time;
// they are never persisted on the row.
type SubmissionResponse struct {
	ID            uint            `json:"id"`
	AssignmentID  uint            `json:"assignment_id"`
	StudentID     uint            `json:"student_id"`
	Content       string          `json:"content"`
	SubmittedAt   time.Time       `json:"submitted_at"`
	Score         *float64        `json:"score"`
	Feedback      *string         `json:"feedback"`
	GradedAt      *time.Time      `json:"graded_at"`
	GradedBy      *uint           `json:"graded_by"`
	Status        string          `json:"status"`
	IsLate        bool            `json:"is_late"`
	LateByMinutes *int            `json:"late_by_minutes"`
	Assignment    *AssignmentLite `json:"assignment,omitempty"`
	Student       *StudentLite    `json:"student,omitempty"`
}

// NewSubmissionResponse converts a Submission model and its computed lateness
// into a DTO.
func NewSubmissionResponse(model models.Submission, late latepolicy.Result) SubmissionResponse {
	response := SubmissionResponse{
		ID:            model.ID,
		AssignmentID:  model.AssignmentID,
		StudentID:     model.StudentID,
		Content:       model.Content,
		SubmittedAt:   model.SubmittedAt,
		Score:         model.Score,
		Feedback:      model.Feedback,
		GradedAt:      model.GradedAt,
		GradedBy:      model.GradedBy,
		Status:        model.Status(),
		IsLate:        late.IsLate,
		LateByMinutes: late.LateByMinutes,
	}

	if model.Assignment.ID != 0 {
		response.Assignment = &AssignmentLite{
			ID:       model.Assignment.ID,
			Title:    model.Assignment.Title,
			DueAt:    model.Assignment.DueAt,
			MaxScore: model.Assignment.MaxScore,
		}
	}

	if model.Student.ID != 0 {
		response.Student = &StudentLite{
			ID:    model.Student.ID,
			Name:  model.Student.Name,
			Email: model.Student.Email,
		}
	}

	return response
}
