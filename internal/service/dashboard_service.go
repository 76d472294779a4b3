package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/classward/classward-api/internal/dto"
	"github.com/classward/classward-api/internal/models"
	"github.com/classward/classward-api/internal/repository"
)

// DashboardService builds the per-user dashboard views. The student view is
// served cache-aside from Redis because it fans out across every enrolled
// course; stale reads are bounded by the configured TTL.
type DashboardService interface {
	StudentDashboard(ctx context.Context, studentID uint) ([]dto.CourseDashboardRow, error)
	InstructorDashboard(ctx context.Context, instructorID uint) ([]dto.InstructorCourseStats, error)
	InvalidateStudent(ctx context.Context, studentID uint)
}

type dashboardService struct {
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewDashboardService constructs a DashboardService instance. A nil cache
// client disables caching and every call recomputes.
func NewDashboardService(
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	assignmentRepo repository.AssignmentRepository,
	submissionRepo repository.SubmissionRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		courses:     courseRepo,
		enrollments: enrollmentRepo,
		assignments: assignmentRepo,
		submissions: submissionRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
		now:         time.Now,
	}
}

func studentDashboardKey(studentID uint) string {
	return fmt.Sprintf("dashboard:student:%d", studentID)
}

func (s *dashboardService) StudentDashboard(ctx context.Context, studentID uint) ([]dto.CourseDashboardRow, error) {
	key := studentDashboardKey(studentID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var rows []dto.CourseDashboardRow
			if err := json.Unmarshal([]byte(cached), &rows); err == nil {
				return rows, nil
			}
			s.logger.Warn().Str("key", key).Msg("discarding undecodable dashboard cache entry")
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("dashboard cache read failed")
		}
	}

	rows, err := s.buildStudentDashboard(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(rows); err == nil {
			if err := s.cache.Set(ctx, key, encoded, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Str("key", key).Msg("dashboard cache write failed")
			}
		}
	}

	return rows, nil
}

// InvalidateStudent drops the cached dashboard after a write that changes its
// contents, such as a new submission or enrollment.
func (s *dashboardService) InvalidateStudent(ctx context.Context, studentID uint) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Del(ctx, studentDashboardKey(studentID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("dashboard cache invalidation failed")
	}
}

func (s *dashboardService) buildStudentDashboard(ctx context.Context, studentID uint) ([]dto.CourseDashboardRow, error) {
	enrollments, err := s.enrollments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()

	rows := make([]dto.CourseDashboardRow, 0, len(enrollments))
	for _, enrollment := range enrollments {
		row, err := s.buildCourseRow(ctx, enrollment.Course, studentID, now)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (s *dashboardService) buildCourseRow(ctx context.Context, course models.Course, studentID uint, now time.Time) (dto.CourseDashboardRow, error) {
	assignments, err := s.assignments.ListByCourse(ctx, course.ID)
	if err != nil {
		return dto.CourseDashboardRow{}, err
	}

	submissions, err := s.submissions.ListByCourseAndStudent(ctx, course.ID, studentID)
	if err != nil {
		return dto.CourseDashboardRow{}, err
	}

	submittedFor := make(map[uint]models.Submission, len(submissions))
	for _, submission := range submissions {
		submittedFor[submission.AssignmentID] = submission
	}

	row := dto.CourseDashboardRow{
		CourseID:         course.ID,
		CourseTitle:      course.Title,
		TotalAssignments: len(assignments),
	}

	var gradeTotal float64
	var nextDue *models.Assignment
	for i := range assignments {
		assignment := assignments[i]

		submission, ok := submittedFor[assignment.ID]
		if !ok {
			row.Missing++
			// The projection targets the earliest dated unsubmitted
			// assignment; undated ones never become "next due". Ties on the
			// due date resolve to the lower assignment id.
			if assignment.DueAt != nil && isEarlierDue(assignment, nextDue) {
				nextDue = &assignments[i]
			}
			continue
		}

		row.Submitted++
		if submission.IsGraded() {
			row.Graded++
			gradeTotal += *submission.Score
		}
	}

	if row.Graded > 0 {
		average := gradeTotal / float64(row.Graded)
		row.AverageGrade = &average
	}

	if nextDue != nil {
		row.NextDueAt = nextDue.DueAt
		title := nextDue.Title
		row.NextDueTitle = &title
		row.NextDueIsOverdue = nextDue.DueAt.Before(now)
	}

	return row, nil
}

func isEarlierDue(candidate models.Assignment, current *models.Assignment) bool {
	if current == nil {
		return true
	}
	if !candidate.DueAt.Equal(*current.DueAt) {
		return candidate.DueAt.Before(*current.DueAt)
	}
	return candidate.ID < current.ID
}

func (s *dashboardService) InstructorDashboard(ctx context.Context, instructorID uint) ([]dto.InstructorCourseStats, error) {
	courses, err := s.courses.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	stats := make([]dto.InstructorCourseStats, 0, len(courses))
	for _, course := range courses {
		students, err := s.enrollments.CountByCourse(ctx, course.ID)
		if err != nil {
			return nil, err
		}

		assignments, err := s.assignments.ListByCourse(ctx, course.ID)
		if err != nil {
			return nil, err
		}

		submissions, err := s.submissions.ListByCourse(ctx, course.ID)
		if err != nil {
			return nil, err
		}

		ungraded := 0
		for _, submission := range submissions {
			if !submission.IsGraded() {
				ungraded++
			}
		}

		stats = append(stats, dto.InstructorCourseStats{
			CourseID:            course.ID,
			CourseTitle:         course.Title,
			TotalStudents:       int(students),
			TotalAssignments:    len(assignments),
			TotalSubmissions:    len(submissions),
			UngradedSubmissions: ungraded,
		})
	}

	return stats, nil
}
