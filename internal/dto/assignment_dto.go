package dto

import (
	"time"

	"github.com/classward/classward-api/internal/models"
)

// AssignmentCreateRequest is the payload for creating an assignment.
type AssignmentCreateRequest struct {
	Title       string     `json:"title" validate:"required,min=3,max=255"`
	Description string     `json:"description" validate:"omitempty"`
	DueAt       *time.Time `json:"due_at" validate:"omitempty"`
	MaxScore    float64    `json:"max_score" validate:"required,gt=0"`
}

// AssignmentResponse is returned to API clients when viewing assignments.
type AssignmentResponse struct {
	ID          uint       `json:"id"`
	CourseID    uint       `json:"course_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"due_at"`
	MaxScore    float64    `json:"max_score"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AssignmentLite summarises an assignment inside submission responses.
type AssignmentLite struct {
	ID       uint       `json:"id"`
	Title    string     `json:"title"`
	DueAt    *time.Time `json:"due_at"`
	MaxScore float64    `json:"max_score"`
}

// NewAssignmentResponse converts an Assignment model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          model.ID,
		CourseID:    model.CourseID,
		Title:       model.Title,
		Description: model.Description,
		DueAt:       model.DueAt,
		MaxScore:    model.MaxScore,
		CreatedAt:   model.CreatedAt,
	}
}

// NewAssignmentResponseSlice converts assignment models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}
