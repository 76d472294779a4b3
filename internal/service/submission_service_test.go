package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/classward/classward-api/internal/dto"
	"github.com/classward/classward-api/internal/latepolicy"
	"github.com/classward/classward-api/internal/models"
	"github.com/classward/classward-api/internal/repository"
)

type submissionFixture struct {
	db         *gorm.DB
	service    SubmissionService
	instructor models.User
	student    models.User
	course     models.Course
}

func newSubmissionFixture(t *testing.T, strictDeadlines bool) submissionFixture {
	t.Helper()

	db := newTestDB(t)

	instructor := seedUser(t, db, "Grace Hopper", "grace@example.com", models.RoleInstructor)
	student := seedUser(t, db, "Alan Kay", "alan@example.com", models.RoleStudent)
	course := seedCourse(t, db, "Distributed Systems", instructor.ID)
	seedEnrollment(t, db, course.ID, student.ID)

	activity := NewActivityService(repository.NewActivityLogRepository(db), testLogger())

	svc := NewSubmissionService(
		repository.NewSubmissionRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
		testValidator(),
		latepolicy.Default(),
		strictDeadlines,
		activity,
		nil,
		testLogger(),
	)

	return submissionFixture{
		db:         db,
		service:    svc,
		instructor: instructor,
		student:    student,
		course:     course,
	}
}

func (f submissionFixture) setNow(now time.Time) {
	f.service.(*submissionService).now = func() time.Time { return now }
}

func TestSubmitCreatesThenResubmitMutatesSameRow(t *testing.T) {
	fixture := newSubmissionFixture(t, false)
	due := time.Now().UTC().Add(48 * time.Hour)
	assignment := seedAssignment(t, fixture.db, fixture.course.ID, "Raft Paper Review", timePointer(due), 100)

	ctx := context.Background()

	first, err := fixture.service.Submit(ctx, assignment.ID, fixture.student.ID, dto.SubmissionCreateRequest{Content: "draft one"})
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusSubmitted, first.Status)
	require.False(t, first.IsLate)

	// Grade it, then resubmit. The row must be reused and grading voided.
	graded, err := fixture.service.Grade(ctx, first.ID, dto.GradeSubmissionRequest{Score: floatPointer(95)}, ActivityActor{ID: fixture.instructor.ID, Role: models.RoleInstructor})
	require.NoError(t, err)
	require.NotNil(t, graded.Score)

	second, err := fixture.service.Submit(ctx, assignment.ID, fixture.student.ID, dto.SubmissionCreateRequest{Content: "draft two"})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "draft two", second.Content)
	require.Nil(t, second.Score)
	require.Nil(t, second.Feedback)
	require.Nil(t, second.GradedAt)
	require.Equal(t, models.SubmissionStatusSubmitted, second.Status)

	var count int64
	require.NoError(t, fixture.db.Model(&models.Submission{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestSubmitRejectsStudentsOutsideTheRoster(t *testing.T) {
	fixture := newSubmissionFixture(t, false)
	assignment := seedAssignment(t, fixture.db, fixture.course.ID, "Essay", nil, 100)
	outsider := seedUser(t, fixture.db, "Eve", "eve@example.com", models.RoleStudent)

	_, err := fixture.service.Submit(context.Background(), assignment.ID, outsider.ID, dto.SubmissionCreateRequest{Content: "hello"})
	require.ErrorIs(t, err, ErrNotEnrolled)
}

func TestSubmitUnknownAssignment(t *testing.T) {
	fixture := newSubmissionFixture(t, false)

	_, err := fixture.service.Submit(context.Background(), 9999, fixture.student.ID, dto.SubmissionCreateRequest{Content: "hello"})
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestSubmitStrictModeRejectsPastDue(t *testing.T) {
	fixture := newSubmissionFixture(t, true)
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assignment := seedAssignment(t, fixture.db, fixture.course.ID, "Quiz", timePointer(due), 100)

	fixture.setNow(due.Add(time.Hour))

	_, err := fixture.service.Submit(context.Background(), assignment.ID, fixture.student.ID, dto.SubmissionCreateRequest{Content: "too late"})
	require.ErrorIs(t, err, ErrPastDue)
}

func TestSubmitLenientModeAcceptsPastDueAndFlagsLateness(t *testing.T) {
	fixture := newSubmissionFixture(t, false)
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assignment := seedAssignment(t, fixture.db, fixture.course.ID, "Quiz", timePointer(due), 100)

	fixture.setNow(due.Add(15 * time.Minute))

	response, err := fixture.service.Submit(context.Background(), assignment.ID, fixture.student.ID, dto.SubmissionCreateRequest{Content: "late work"})
	require.NoError(t, err)
	require.True(t, response.IsLate)
	require.NotNil(t, response.LateByMinutes)
	require.Equal(t, 15, *response.LateByMinutes)
}

func TestGradeAppliesLatePenaltyAndCap(t *testing.T) {
	fixture := newSubmissionFixture(t, false)
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assignment := seedAssignment(t, fixture.db, fixture.course.ID, "Project", timePointer(due), 100)

	// Six days late hits the 50% cap.
	seedSubmission(t, fixture.db, assignment.ID, fixture.student.ID, due.Add(6*24*time.Hour))

	var stored models.Submission
	require.NoError(t, fixture.db.First(&stored).Error)

	response, err := fixture.service.Grade(context.Background(), stored.ID, dto.GradeSubmissionRequest{
		Score:    floatPointer(80),
		Feedback: stringPointer("solid work"),
	}, ActivityActor{ID: fixture.instructor.ID, Role: models.RoleInstructor})
	require.NoError(t, err)

	require.NotNil(t, response.Score)
	require.Equal(t, 40.0, *response.Score)
	require.Equal(t, models.SubmissionStatusGraded, response.Status)
	require.NotNil(t, response.GradedBy)
	require.Equal(t, fixture.instructor.ID, *response.GradedBy)
	require.NotNil(t, response.Feedback)
	require.Contains(t, *response.Feedback, "solid work")
	require.Contains(t, *response.Feedback, "Late penalty applied: -50%")

	// Grading must leave an audit trail.
	var logCount int64
	require.NoError(t, fixture.db.Model(&models.ActivityLog{}).Count(&logCount).Error)
	require.EqualValues(t, 1, logCount)
}

func TestGradeOnTimeKeepsRawScoreAndPlainFeedback(t *testing.T) {
	fixture := newSubmissionFixture(t, false)
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assignment := seedAssignment(t, fixture.db, fixture.course.ID, "Homework", timePointer(due), 50)

	seedSubmission(t, fixture.db, assignment.ID, fixture.student.ID, due.Add(-time.Hour))

	var stored models.Submission
	require.NoError(t, fixture.db.First(&stored).Error)

	response, err := fixture.service.Grade(context.Background(), stored.ID, dto.GradeSubmissionRequest{
		Score:    floatPointer(47.5),
		Feedback: stringPointer("well done"),
	}, ActivityActor{ID: fixture.instructor.ID, Role: models.RoleInstructor})
	require.NoError(t, err)

	require.Equal(t, 47.5, *response.Score)
	require.Equal(t, "well done", *response.Feedback)
	require.False(t, response.IsLate)
}

func TestGradeRejectsScoreBeyondMaximum(t *testing.T) {
	fixture := newSubmissionFixture(t, false)
	assignment := seedAssignment(t, fixture.db, fixture.course.ID, "Homework", nil, 50)
	seedSubmission(t, fixture.db, assignment.ID, fixture.student.ID, time.Now().UTC())

	var stored models.Submission
	require.NoError(t, fixture.db.First(&stored).Error)

	_, err := fixture.service.Grade(context.Background(), stored.ID, dto.GradeSubmissionRequest{Score: floatPointer(51)}, ActivityActor{ID: fixture.instructor.ID, Role: models.RoleInstructor})
	require.ErrorIs(t, err, ErrScoreOutOfRange)
}

func TestGradeRequiresCourseOwnership(t *testing.T) {
	fixture := newSubmissionFixture(t, false)
	assignment := seedAssignment(t, fixture.db, fixture.course.ID, "Homework", nil, 100)
	seedSubmission(t, fixture.db, assignment.ID, fixture.student.ID, time.Now().UTC())

	rival := seedUser(t, fixture.db, "Mallory", "mallory@example.com", models.RoleInstructor)

	var stored models.Submission
	require.NoError(t, fixture.db.First(&stored).Error)

	_, err := fixture.service.Grade(context.Background(), stored.ID, dto.GradeSubmissionRequest{Score: floatPointer(10)}, ActivityActor{ID: rival.ID, Role: models.RoleInstructor})
	require.ErrorIs(t, err, ErrNotCourseOwner)
}

func TestListForAssignmentOwnerOnly(t *testing.T) {
	fixture := newSubmissionFixture(t, false)
	assignment := seedAssignment(t, fixture.db, fixture.course.ID, "Homework", nil, 100)
	seedSubmission(t, fixture.db, assignment.ID, fixture.student.ID, time.Now().UTC())

	submissions, err := fixture.service.ListForAssignment(context.Background(), assignment.ID, fixture.instructor.ID)
	require.NoError(t, err)
	require.Len(t, submissions, 1)

	rival := seedUser(t, fixture.db, "Mallory", "mallory@example.com", models.RoleInstructor)
	_, err = fixture.service.ListForAssignment(context.Background(), assignment.ID, rival.ID)
	require.ErrorIs(t, err, ErrNotCourseOwner)
}
