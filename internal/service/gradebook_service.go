package service

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/classward/classward-api/internal/dto"
	"github.com/classward/classward-api/internal/latepolicy"
	"github.com/classward/classward-api/internal/models"
	"github.com/classward/classward-api/internal/repository"
)

// GradebookService derives instructor-facing reporting views from enrollment,
// assignment and submission facts. All views are read-only and recompute
// lateness through the late policy on every call.
type GradebookService interface {
	Gradebook(ctx context.Context, courseID, instructorID uint) ([]dto.GradebookRow, error)
	GradebookForStudent(ctx context.Context, courseID, studentID uint) ([]dto.GradebookRow, error)
	Summary(ctx context.Context, courseID, instructorID uint) ([]dto.StudentSummary, error)
	AssignmentStats(ctx context.Context, courseID, instructorID uint) ([]dto.AssignmentStats, error)
}

type gradebookService struct {
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	policy      latepolicy.Config
	logger      zerolog.Logger
}

// NewGradebookService constructs a GradebookService instance.
func NewGradebookService(
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	assignmentRepo repository.AssignmentRepository,
	submissionRepo repository.SubmissionRepository,
	policy latepolicy.Config,
	logger zerolog.Logger,
) GradebookService {
	return &gradebookService{
		courses:     courseRepo,
		enrollments: enrollmentRepo,
		assignments: assignmentRepo,
		submissions: submissionRepo,
		policy:      policy,
		logger:      logger.With().Str("component", "gradebook_service").Logger(),
	}
}

// submissionKey identifies the single submission a student may have per
// assignment.
type submissionKey struct {
	assignmentID uint
	studentID    uint
}

// courseFacts is the raw material every aggregate view is derived from.
type courseFacts struct {
	enrollments []models.Enrollment
	assignments []models.Assignment
	submissions map[submissionKey]models.Submission
}

func (s *gradebookService) loadFacts(ctx context.Context, courseID uint) (courseFacts, error) {
	enrollments, err := s.enrollments.ListByCourse(ctx, courseID)
	if err != nil {
		return courseFacts{}, err
	}

	assignments, err := s.assignments.ListByCourse(ctx, courseID)
	if err != nil {
		return courseFacts{}, err
	}

	rows, err := s.submissions.ListByCourse(ctx, courseID)
	if err != nil {
		return courseFacts{}, err
	}

	submissions := make(map[submissionKey]models.Submission, len(rows))
	for _, submission := range rows {
		submissions[submissionKey{submission.AssignmentID, submission.StudentID}] = submission
	}

	facts := courseFacts{
		enrollments: enrollments,
		assignments: assignments,
		submissions: submissions,
	}

	sortEnrollmentsByEmail(facts.enrollments)
	sortAssignmentsByDue(facts.assignments)

	return facts, nil
}

// sortEnrollmentsByEmail orders students by email ascending with the student
// id as tie-break, keeping gradebook ordering stable across calls.
func sortEnrollmentsByEmail(enrollments []models.Enrollment) {
	sort.SliceStable(enrollments, func(i, j int) bool {
		left, right := enrollments[i].Student, enrollments[j].Student
		if left.Email != right.Email {
			return left.Email < right.Email
		}
		return left.ID < right.ID
	})
}

// sortAssignmentsByDue orders assignments due date ascending with nil due
// dates last, then assignment id ascending as the final tie-break.
func sortAssignmentsByDue(assignments []models.Assignment) {
	sort.SliceStable(assignments, func(i, j int) bool {
		left, right := assignments[i], assignments[j]
		switch {
		case left.DueAt == nil && right.DueAt == nil:
			return left.ID < right.ID
		case left.DueAt == nil:
			return false
		case right.DueAt == nil:
			return true
		case !left.DueAt.Equal(*right.DueAt):
			return left.DueAt.Before(*right.DueAt)
		default:
			return left.ID < right.ID
		}
	})
}

func (s *gradebookService) Gradebook(ctx context.Context, courseID, instructorID uint) ([]dto.GradebookRow, error) {
	if _, err := getOwnedCourse(ctx, s.courses, courseID, instructorID); err != nil {
		return nil, err
	}

	facts, err := s.loadFacts(ctx, courseID)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.GradebookRow, 0, len(facts.enrollments)*len(facts.assignments))
	for _, enrollment := range facts.enrollments {
		for _, assignment := range facts.assignments {
			rows = append(rows, s.buildRow(enrollment.Student, assignment, facts.submissions))
		}
	}

	return rows, nil
}

func (s *gradebookService) GradebookForStudent(ctx context.Context, courseID, studentID uint) ([]dto.GradebookRow, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	enrollment, err := s.enrollments.GetByCourseAndStudent(ctx, courseID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}

	assignments, err := s.assignments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	sortAssignmentsByDue(assignments)

	rows, err := s.submissions.ListByCourseAndStudent(ctx, courseID, studentID)
	if err != nil {
		return nil, err
	}

	submissions := make(map[submissionKey]models.Submission, len(rows))
	for _, submission := range rows {
		submissions[submissionKey{submission.AssignmentID, submission.StudentID}] = submission
	}

	result := make([]dto.GradebookRow, 0, len(assignments))
	for _, assignment := range assignments {
		result = append(result, s.buildRow(enrollment.Student, assignment, submissions))
	}

	return result, nil
}

// buildRow derives one gradebook cell. Lateness comes from the late policy
// evaluated against the assignment's current due date.
func (s *gradebookService) buildRow(student models.User, assignment models.Assignment, submissions map[submissionKey]models.Submission) dto.GradebookRow {
	row := dto.GradebookRow{
		StudentID:       student.ID,
		StudentEmail:    student.Email,
		AssignmentID:    assignment.ID,
		AssignmentTitle: assignment.Title,
		DueAt:           assignment.DueAt,
		Status:          models.SubmissionStatusMissing,
	}

	submission, ok := submissions[submissionKey{assignment.ID, student.ID}]
	if !ok {
		return row
	}

	submittedAt := submission.SubmittedAt
	row.SubmittedAt = &submittedAt
	row.Score = submission.Score
	row.Feedback = submission.Feedback
	row.Status = submission.Status()

	late := latepolicy.Evaluate(s.policy, assignment.DueAt, submission.SubmittedAt)
	row.IsLate = late.IsLate
	row.LateByMinutes = late.LateByMinutes

	return row
}

func (s *gradebookService) Summary(ctx context.Context, courseID, instructorID uint) ([]dto.StudentSummary, error) {
	if _, err := getOwnedCourse(ctx, s.courses, courseID, instructorID); err != nil {
		return nil, err
	}

	facts, err := s.loadFacts(ctx, courseID)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.StudentSummary, 0, len(facts.enrollments))
	for _, enrollment := range facts.enrollments {
		summary := dto.StudentSummary{
			StudentID:        enrollment.Student.ID,
			StudentEmail:     enrollment.Student.Email,
			TotalAssignments: len(facts.assignments),
		}

		var gradeTotal float64
		for _, assignment := range facts.assignments {
			submission, ok := facts.submissions[submissionKey{assignment.ID, enrollment.Student.ID}]
			if !ok {
				summary.Missing++
				continue
			}

			summary.Submitted++
			if submission.IsGraded() {
				summary.Graded++
				gradeTotal += *submission.Score
			}
		}

		if summary.Graded > 0 {
			average := gradeTotal / float64(summary.Graded)
			summary.AverageGrade = &average
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (s *gradebookService) AssignmentStats(ctx context.Context, courseID, instructorID uint) ([]dto.AssignmentStats, error) {
	if _, err := getOwnedCourse(ctx, s.courses, courseID, instructorID); err != nil {
		return nil, err
	}

	enrollmentCount, err := s.enrollments.CountByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	submissions, err := s.submissions.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	byAssignment := make(map[uint][]models.Submission, len(assignments))
	for _, submission := range submissions {
		byAssignment[submission.AssignmentID] = append(byAssignment[submission.AssignmentID], submission)
	}

	// Stats are ordered by assignment id, independent of due dates.
	sort.SliceStable(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })

	totalStudents := int(enrollmentCount)
	stats := make([]dto.AssignmentStats, 0, len(assignments))
	for _, assignment := range assignments {
		entry := dto.AssignmentStats{
			AssignmentID:    assignment.ID,
			AssignmentTitle: assignment.Title,
			TotalStudents:   totalStudents,
		}

		var gradeTotal float64
		for _, submission := range byAssignment[assignment.ID] {
			entry.Submitted++
			if submission.IsGraded() {
				entry.Graded++
				gradeTotal += *submission.Score
			}
		}

		// Submissions from students who were since unenrolled (or seeded
		// anomalously) could push the count past the roster; missing never
		// goes negative.
		entry.Missing = totalStudents - entry.Submitted
		if entry.Missing < 0 {
			entry.Missing = 0
		}

		if entry.Graded > 0 {
			average := gradeTotal / float64(entry.Graded)
			entry.AverageGrade = &average
		}

		stats = append(stats, entry)
	}

	return stats, nil
}
