package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/classward/classward-api/internal/models"
	"github.com/classward/classward-api/internal/repository"
)

func newDashboardService(t *testing.T, db *gorm.DB, cache *redis.Client) DashboardService {
	t.Helper()

	return NewDashboardService(
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewSubmissionRepository(db),
		cache,
		time.Minute,
		testLogger(),
	)
}

func TestStudentDashboardAggregationAndNextDue(t *testing.T) {
	db := newTestDB(t)

	instructor := seedUser(t, db, "Grace", "grace@example.com", models.RoleInstructor)
	student := seedUser(t, db, "Alan", "alan@example.com", models.RoleStudent)
	course := seedCourse(t, db, "Networks", instructor.ID)
	seedEnrollment(t, db, course.ID, student.ID)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Unsubmitted with the nearest future due date: the projection target.
	soon := seedAssignment(t, db, course.ID, "Soon", timePointer(now.Add(24*time.Hour)), 100)
	seedAssignment(t, db, course.ID, "Far", timePointer(now.Add(96*time.Hour)), 100)
	seedAssignment(t, db, course.ID, "Undated", nil, 100)

	done := seedAssignment(t, db, course.ID, "Done", timePointer(now.Add(-24*time.Hour)), 100)
	submission := seedSubmission(t, db, done.ID, student.ID, now.Add(-30*time.Hour))
	score := 92.0
	submission.Score = &score
	gradedAt := now.Add(-time.Hour)
	submission.GradedAt = &gradedAt
	require.NoError(t, db.Save(&submission).Error)

	svc := newDashboardService(t, db, nil)
	svc.(*dashboardService).now = func() time.Time { return now }

	rows, err := svc.StudentDashboard(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	require.Equal(t, course.ID, row.CourseID)
	require.Equal(t, 4, row.TotalAssignments)
	require.Equal(t, 1, row.Submitted)
	require.Equal(t, 3, row.Missing)
	require.Equal(t, 1, row.Graded)
	require.NotNil(t, row.AverageGrade)
	require.Equal(t, 92.0, *row.AverageGrade)

	require.NotNil(t, row.NextDueAt)
	require.True(t, soon.DueAt.Equal(*row.NextDueAt))
	require.NotNil(t, row.NextDueTitle)
	require.Equal(t, "Soon", *row.NextDueTitle)
	require.False(t, row.NextDueIsOverdue)
}

func TestStudentDashboardOverdueProjection(t *testing.T) {
	db := newTestDB(t)

	instructor := seedUser(t, db, "Grace", "grace@example.com", models.RoleInstructor)
	student := seedUser(t, db, "Alan", "alan@example.com", models.RoleStudent)
	course := seedCourse(t, db, "Networks", instructor.ID)
	seedEnrollment(t, db, course.ID, student.ID)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seedAssignment(t, db, course.ID, "Overdue", timePointer(now.Add(-2*time.Hour)), 100)

	svc := newDashboardService(t, db, nil)
	svc.(*dashboardService).now = func() time.Time { return now }

	rows, err := svc.StudentDashboard(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.True(t, rows[0].NextDueIsOverdue)
}

func TestStudentDashboardCacheRoundTrip(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	cache := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	db := newTestDB(t)

	instructor := seedUser(t, db, "Grace", "grace@example.com", models.RoleInstructor)
	student := seedUser(t, db, "Alan", "alan@example.com", models.RoleStudent)
	course := seedCourse(t, db, "Networks", instructor.ID)
	seedEnrollment(t, db, course.ID, student.ID)
	seedAssignment(t, db, course.ID, "A1", nil, 100)

	svc := newDashboardService(t, db, cache)
	ctx := context.Background()

	first, err := svc.StudentDashboard(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.True(t, mini.Exists(fmt.Sprintf("dashboard:student:%d", student.ID)))

	// A write behind the cache stays invisible until invalidation.
	seedAssignment(t, db, course.ID, "A2", nil, 100)

	second, err := svc.StudentDashboard(ctx, student.ID)
	require.NoError(t, err)
	require.Equal(t, 1, second[0].TotalAssignments)

	svc.InvalidateStudent(ctx, student.ID)

	third, err := svc.StudentDashboard(ctx, student.ID)
	require.NoError(t, err)
	require.Equal(t, 2, third[0].TotalAssignments)
}

func TestInstructorDashboardPerCourseTotals(t *testing.T) {
	db := newTestDB(t)

	instructor := seedUser(t, db, "Grace", "grace@example.com", models.RoleInstructor)
	other := seedUser(t, db, "Mallory", "mallory@example.com", models.RoleInstructor)
	alan := seedUser(t, db, "Alan", "alan@example.com", models.RoleStudent)
	zoe := seedUser(t, db, "Zoe", "zoe@example.com", models.RoleStudent)

	course := seedCourse(t, db, "Networks", instructor.ID)
	seedCourse(t, db, "Someone Else's", other.ID)
	seedEnrollment(t, db, course.ID, alan.ID)
	seedEnrollment(t, db, course.ID, zoe.ID)

	a1 := seedAssignment(t, db, course.ID, "A1", nil, 100)
	seedAssignment(t, db, course.ID, "A2", nil, 100)

	graded := seedSubmission(t, db, a1.ID, alan.ID, time.Now().UTC())
	score := 80.0
	graded.Score = &score
	now := time.Now().UTC()
	graded.GradedAt = &now
	require.NoError(t, db.Save(&graded).Error)

	seedSubmission(t, db, a1.ID, zoe.ID, time.Now().UTC())

	svc := newDashboardService(t, db, nil)

	stats, err := svc.InstructorDashboard(context.Background(), instructor.ID)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	entry := stats[0]
	require.Equal(t, course.ID, entry.CourseID)
	require.Equal(t, 2, entry.TotalStudents)
	require.Equal(t, 2, entry.TotalAssignments)
	require.Equal(t, 2, entry.TotalSubmissions)
	require.Equal(t, 1, entry.UngradedSubmissions)
}
