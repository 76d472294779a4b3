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

// EnrollmentService orchestrates enrollment workflows.
type EnrollmentService interface {
	Enroll(ctx context.Context, studentID uint, payload dto.EnrollmentCreateRequest) (dto.EnrollmentResponse, error)
	ListMine(ctx context.Context, studentID uint) ([]dto.EnrollmentResponse, error)
}

type enrollmentService struct {
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	validator   *validator.Validate
	events      EventPublisher
	logger      zerolog.Logger
}

// NewEnrollmentService constructs an EnrollmentService instance.
func NewEnrollmentService(enrollmentRepo repository.EnrollmentRepository, courseRepo repository.CourseRepository, validate *validator.Validate, events EventPublisher, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		enrollments: enrollmentRepo,
		courses:     courseRepo,
		validator:   validate,
		events:      events,
		logger:      logger.With().Str("component", "enrollment_service").Logger(),
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, studentID uint, payload dto.EnrollmentCreateRequest) (dto.EnrollmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	if _, err := s.courses.GetByID(ctx, payload.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentResponse{}, ErrCourseNotFound
		}
		return dto.EnrollmentResponse{}, err
	}

	enrollment := models.Enrollment{
		StudentID: studentID,
		CourseID:  payload.CourseID,
	}

	// The composite unique index resolves duplicate enrol attempts; a
	// conflict is a normal outcome, not a storage failure.
	if err := s.enrollments.Create(ctx, &enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.EnrollmentResponse{}, ErrAlreadyEnrolled
		}
		return dto.EnrollmentResponse{}, err
	}

	if s.events != nil {
		s.events.Publish(ctx, EventEnrollmentCreated, dto.NewEnrollmentResponse(enrollment))
	}

	s.logger.Info().Uint("course_id", payload.CourseID).Uint("student_id", studentID).Msg("student enrolled")

	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *enrollmentService) ListMine(ctx context.Context, studentID uint) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.enrollments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewEnrollmentResponseSlice(enrollments), nil
}
