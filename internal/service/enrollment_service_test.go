package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/classward/classward-api/internal/dto"
	"github.com/classward/classward-api/internal/models"
	"github.com/classward/classward-api/internal/repository"
)

func newEnrollmentService(t *testing.T) (EnrollmentService, *enrollmentTestData) {
	t.Helper()

	db := newTestDB(t)
	instructor := seedUser(t, db, "Grace", "grace@example.com", models.RoleInstructor)
	student := seedUser(t, db, "Alan", "alan@example.com", models.RoleStudent)
	course := seedCourse(t, db, "Operating Systems", instructor.ID)

	svc := NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewCourseRepository(db),
		testValidator(),
		nil,
		testLogger(),
	)

	return svc, &enrollmentTestData{student: student, course: course}
}

type enrollmentTestData struct {
	student models.User
	course  models.Course
}

func TestEnrollOnceThenConflict(t *testing.T) {
	svc, data := newEnrollmentService(t)
	ctx := context.Background()

	enrollment, err := svc.Enroll(ctx, data.student.ID, dto.EnrollmentCreateRequest{CourseID: data.course.ID})
	require.NoError(t, err)
	require.Equal(t, data.course.ID, enrollment.CourseID)
	require.Equal(t, data.student.ID, enrollment.StudentID)

	// The unique index turns the second attempt into a conflict.
	_, err = svc.Enroll(ctx, data.student.ID, dto.EnrollmentCreateRequest{CourseID: data.course.ID})
	require.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestEnrollUnknownCourse(t *testing.T) {
	svc, data := newEnrollmentService(t)

	_, err := svc.Enroll(context.Background(), data.student.ID, dto.EnrollmentCreateRequest{CourseID: 4242})
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestListMineReturnsEnrolledCourses(t *testing.T) {
	svc, data := newEnrollmentService(t)
	ctx := context.Background()

	_, err := svc.Enroll(ctx, data.student.ID, dto.EnrollmentCreateRequest{CourseID: data.course.ID})
	require.NoError(t, err)

	enrollments, err := svc.ListMine(ctx, data.student.ID)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	require.Equal(t, data.course.ID, enrollments[0].CourseID)
}
