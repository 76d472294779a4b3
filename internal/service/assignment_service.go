package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/classward/classward-api/internal/dto"
	"github.com/classward/classward-api/internal/models"
	"github.com/classward/classward-api/internal/repository"
)

// AssignmentService orchestrates assignment workflows.
type AssignmentService interface {
	Create(ctx context.Context, courseID, instructorID uint, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error)
	ListForCourse(ctx context.Context, courseID, userID uint) ([]dto.AssignmentResponse, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(assignmentRepo repository.AssignmentRepository, courseRepo repository.CourseRepository, enrollmentRepo repository.EnrollmentRepository, validate *validator.Validate, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignmentRepo,
		courses:     courseRepo,
		enrollments: enrollmentRepo,
		validator:   validate,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
	}
}

func (s *assignmentService) Create(ctx context.Context, courseID, instructorID uint, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	if _, err := getOwnedCourse(ctx, s.courses, courseID, instructorID); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment := models.Assignment{
		CourseID:    courseID,
		Title:       payload.Title,
		Description: payload.Description,
		DueAt:       payload.DueAt,
		MaxScore:    payload.MaxScore,
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Uint("course_id", courseID).Msg("assignment created")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) ListForCourse(ctx context.Context, courseID, userID uint) ([]dto.AssignmentResponse, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if !course.IsOwnedBy(userID) {
		enrolled, err := s.enrollments.Exists(ctx, courseID, userID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			return nil, ErrNotEnrolled
		}
	}

	assignments, err := s.assignments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return dto.NewAssignmentResponseSlice(assignments), nil
}
