package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/classward/classward-api/internal/dto"
	"github.com/classward/classward-api/internal/latepolicy"
	"github.com/classward/classward-api/internal/models"
	"github.com/classward/classward-api/internal/repository"
)

// SubmissionService governs the submission lifecycle for a single
// (assignment, student) key: first submit, resubmit and grade.
type SubmissionService interface {
	Submit(ctx context.Context, assignmentID, studentID uint, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error)
	ListForAssignment(ctx context.Context, assignmentID, instructorID uint) ([]dto.SubmissionResponse, error)
	Grade(ctx context.Context, submissionID uint, payload dto.GradeSubmissionRequest, grader ActivityActor) (dto.SubmissionResponse, error)
}

type submissionService struct {
	submissions     repository.SubmissionRepository
	assignments     repository.AssignmentRepository
	courses         repository.CourseRepository
	enrollments     repository.EnrollmentRepository
	validator       *validator.Validate
	policy          latepolicy.Config
	strictDeadlines bool
	activity        ActivityRecorder
	events          EventPublisher
	logger          zerolog.Logger
	now             func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance. The late
// policy and deadline mode come from configuration; strictDeadlines rejects
// past-due submissions outright instead of accepting them with a penalty.
func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	assignmentRepo repository.AssignmentRepository,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	validate *validator.Validate,
	policy latepolicy.Config,
	strictDeadlines bool,
	activity ActivityRecorder,
	events EventPublisher,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		submissions:     submissionRepo,
		assignments:     assignmentRepo,
		courses:         courseRepo,
		enrollments:     enrollmentRepo,
		validator:       validate,
		policy:          policy,
		strictDeadlines: strictDeadlines,
		activity:        activity,
		events:          events,
		logger:          logger.With().Str("component", "submission_service").Logger(),
		now:             time.Now,
	}
}

func (s *submissionService) Submit(ctx context.Context, assignmentID, studentID uint, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	enrolled, err := s.enrollments.Exists(ctx, assignment.CourseID, studentID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}
	if !enrolled {
		return dto.SubmissionResponse{}, ErrNotEnrolled
	}

	now := s.now().UTC()

	if s.strictDeadlines && assignment.IsPastDue(now) {
		return dto.SubmissionResponse{}, ErrPastDue
	}

	submission, err := s.upsertSubmission(ctx, assignment, studentID, payload.Content, now)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	late := latepolicy.Evaluate(s.policy, assignment.DueAt, submission.SubmittedAt)

	if s.events != nil {
		s.events.Publish(ctx, EventSubmissionReceived, dto.NewSubmissionResponse(submission, late))
	}

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Uint("assignment_id", assignmentID).
		Uint("student_id", studentID).
		Bool("is_late", late.IsLate).
		Msg("submission stored")

	return dto.NewSubmissionResponse(submission, late), nil
}

// upsertSubmission implements the single-row lifecycle: a first submit
// creates the row, any later submit mutates it in place and voids grading.
// A create that loses the race against a concurrent first submit surfaces as
// a conflict for the caller to retry.
func (s *submissionService) upsertSubmission(ctx context.Context, assignment models.Assignment, studentID uint, content string, now time.Time) (models.Submission, error) {
	existing, err := s.submissions.GetByAssignmentAndStudent(ctx, assignment.ID, studentID)
	if err == nil {
		existing.Content = content
		existing.SubmittedAt = now
		existing.ClearGrading()

		if err := s.submissions.Update(ctx, &existing); err != nil {
			return models.Submission{}, err
		}

		return existing, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Submission{}, err
	}

	submission := models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    studentID,
		Content:      content,
		SubmittedAt:  now,
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Submission{}, ErrSubmissionConflict
		}
		return models.Submission{}, err
	}

	submission.Assignment = assignment

	return submission, nil
}

func (s *submissionService) ListForAssignment(ctx context.Context, assignmentID, instructorID uint) ([]dto.SubmissionResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	if _, err := getOwnedCourse(ctx, s.courses, assignment.CourseID, instructorID); err != nil {
		return nil, err
	}

	submissions, err := s.submissions.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		late := latepolicy.Evaluate(s.policy, assignment.DueAt, submission.SubmittedAt)
		responses = append(responses, dto.NewSubmissionResponse(submission, late))
	}

	return responses, nil
}

func (s *submissionService) Grade(ctx context.Context, submissionID uint, payload dto.GradeSubmissionRequest, grader ActivityActor) (dto.SubmissionResponse, error) {
	tracer := otel.Tracer("github.com/classward/classward-api/internal/service/submission")
	ctx, span := tracer.Start(ctx, "grading.update")
	span.SetAttributes(
		attribute.Int64("grading.submission_id", int64(submissionID)),
		attribute.Int64("grading.grader_id", int64(grader.ID)),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.SubmissionResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "submission_not_found")
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission_lookup_failed")
		return dto.SubmissionResponse{}, err
	}

	if _, err := getOwnedCourse(ctx, s.courses, submission.Assignment.CourseID, grader.ID); err != nil {
		span.SetStatus(codes.Error, "ownership_check_failed")
		return dto.SubmissionResponse{}, err
	}

	rawScore := *payload.Score
	if rawScore < 0 || rawScore > submission.Assignment.MaxScore {
		span.SetStatus(codes.Error, "score_out_of_range")
		return dto.SubmissionResponse{}, ErrScoreOutOfRange
	}

	// The multiplier uses the stored submission time against the current due
	// date; a moved deadline changes the penalty on the next grading pass.
	late := latepolicy.Evaluate(s.policy, submission.Assignment.DueAt, submission.SubmittedAt)
	finalScore := late.ApplyPenalty(rawScore)

	feedback := buildFeedback(payload.Feedback, late, s.policy)

	now := s.now().UTC()
	submission.Score = &finalScore
	submission.Feedback = feedback
	submission.GradedAt = &now
	gradedBy := grader.ID
	submission.GradedBy = &gradedBy

	if err := s.submissions.Update(ctx, &submission); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission_update_failed")
		return dto.SubmissionResponse{}, err
	}

	if s.activity != nil {
		metadata := map[string]interface{}{
			"submission_id": submission.ID,
			"assignment_id": submission.AssignmentID,
			"student_id":    submission.StudentID,
			"raw_score":     rawScore,
			"final_score":   finalScore,
			"days_late":     late.DaysLate,
		}
		if _, err := s.activity.Record(ctx, ActivityEntry{
			ActorID:    grader.ID,
			ActorRole:  grader.Role,
			Action:     EventSubmissionGraded,
			EntityType: "submission",
			EntityID:   &submission.ID,
			Metadata:   metadata,
		}); err != nil {
			s.logger.Warn().Err(err).Uint("submission_id", submission.ID).Msg("failed to record grading activity")
		}
	}

	response := dto.NewSubmissionResponse(submission, late)

	if s.events != nil {
		s.events.Publish(ctx, EventSubmissionGraded, response)
	}

	span.SetAttributes(
		attribute.Float64("grading.final_score", finalScore),
		attribute.Float64("grading.multiplier", late.Multiplier),
	)

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Float64("raw_score", rawScore).
		Float64("final_score", finalScore).
		Int("days_late", late.DaysLate).
		Msg("submission graded")

	return response, nil
}

// buildFeedback combines instructor feedback with the penalty note. The note
// is appended only when a deduction actually applied; the result is nil when
// there is nothing to say.
func buildFeedback(provided *string, late latepolicy.Result, policy latepolicy.Config) *string {
	var parts []string

	if provided != nil && strings.TrimSpace(*provided) != "" {
		parts = append(parts, strings.TrimSpace(*provided))
	}

	if late.IsLate && late.Deduction() > 0 {
		parts = append(parts, late.PenaltyNote(policy))
	}

	if len(parts) == 0 {
		return nil
	}

	combined := strings.Join(parts, "\n")

	return &combined
}
