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

// CourseService orchestrates course workflows.
type CourseService interface {
	Create(ctx context.Context, instructorID uint, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	List(ctx context.Context) ([]dto.CourseResponse, error)
	ListMine(ctx context.Context, studentID uint) ([]dto.CourseResponse, error)
}

type courseService struct {
	courses   repository.CourseRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCourseService constructs a CourseService instance.
func NewCourseService(courseRepo repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) CourseService {
	return &courseService{
		courses:   courseRepo,
		validator: validate,
		logger:    logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) Create(ctx context.Context, instructorID uint, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	course := models.Course{
		Title:        payload.Title,
		Description:  payload.Description,
		InstructorID: instructorID,
	}

	if err := s.courses.Create(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Uint("course_id", course.ID).Uint("instructor_id", instructorID).Msg("course created")

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewCourseResponseSlice(courses), nil
}

func (s *courseService) ListMine(ctx context.Context, studentID uint) ([]dto.CourseResponse, error) {
	courses, err := s.courses.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewCourseResponseSlice(courses), nil
}

// getOwnedCourse loads a course and verifies ownership. Shared by every
// instructor-gated operation.
func getOwnedCourse(ctx context.Context, courses repository.CourseRepository, courseID, instructorID uint) (models.Course, error) {
	course, err := courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Course{}, ErrCourseNotFound
		}
		return models.Course{}, err
	}

	if !course.IsOwnedBy(instructorID) {
		return models.Course{}, ErrNotCourseOwner
	}

	return course, nil
}
