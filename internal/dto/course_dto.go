package dto

import (
	"time"

	"github.com/classward/classward-api/internal/models"
)

// CourseCreateRequest is the payload for creating a course.
type CourseCreateRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"omitempty"`
}

// CourseResponse is returned to API clients when viewing courses.
type CourseResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	InstructorID uint      `json:"instructor_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCourseResponse converts a Course model into a DTO.
func NewCourseResponse(model models.Course) CourseResponse {
	return CourseResponse{
		ID:           model.ID,
		Title:        model.Title,
		Description:  model.Description,
		InstructorID: model.InstructorID,
		CreatedAt:    model.CreatedAt,
	}
}

// NewCourseResponseSlice converts course models into DTOs.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, NewCourseResponse(course))
	}

	return responses
}
