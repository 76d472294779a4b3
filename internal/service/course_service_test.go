package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/classward/classward-api/internal/dto"
	"github.com/classward/classward-api/internal/models"
	"github.com/classward/classward-api/internal/repository"
)

func TestCourseCreateAndListing(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "Grace", "grace@example.com", models.RoleInstructor)
	student := seedUser(t, db, "Alan", "alan@example.com", models.RoleStudent)

	svc := NewCourseService(repository.NewCourseRepository(db), testValidator(), testLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, instructor.ID, dto.CourseCreateRequest{
		Title:       "Machine Learning",
		Description: "Supervised and unsupervised methods",
	})
	require.NoError(t, err)
	require.Equal(t, instructor.ID, created.InstructorID)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	// Not enrolled yet, so the student's view is empty.
	mine, err := svc.ListMine(ctx, student.ID)
	require.NoError(t, err)
	require.Empty(t, mine)

	seedEnrollment(t, db, created.ID, student.ID)

	mine, err = svc.ListMine(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, created.ID, mine[0].ID)
}

func TestCourseCreateRequiresTitle(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "Grace", "grace@example.com", models.RoleInstructor)

	svc := NewCourseService(repository.NewCourseRepository(db), testValidator(), testLogger())

	_, err := svc.Create(context.Background(), instructor.ID, dto.CourseCreateRequest{})
	require.Error(t, err)
}
