package service

import (
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/classward/classward-api/internal/models"
)

var testDBSequence atomic.Int64

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// newTestDB opens an isolated in-memory database per test. TranslateError
// matches the production connection so unique-constraint violations surface
// as gorm.ErrDuplicatedKey here too.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:classward_test_%d?mode=memory&cache=shared", testDBSequence.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.Assignment{},
		&models.Submission{},
		&models.ActivityLog{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	t.Helper()

	user := models.User{Name: name, Email: email, Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, title string, instructorID uint) models.Course {
	t.Helper()

	course := models.Course{Title: title, Description: title + " description", InstructorID: instructorID}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func seedEnrollment(t *testing.T, db *gorm.DB, courseID, studentID uint) models.Enrollment {
	t.Helper()

	enrollment := models.Enrollment{CourseID: courseID, StudentID: studentID}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}

func seedAssignment(t *testing.T, db *gorm.DB, courseID uint, title string, dueAt *time.Time, maxScore float64) models.Assignment {
	t.Helper()

	assignment := models.Assignment{
		CourseID:    courseID,
		Title:       title,
		Description: title + " description",
		DueAt:       dueAt,
		MaxScore:    maxScore,
	}
	require.NoError(t, db.Create(&assignment).Error)
	return assignment
}

func seedSubmission(t *testing.T, db *gorm.DB, assignmentID, studentID uint, submittedAt time.Time) models.Submission {
	t.Helper()

	submission := models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Content:      "submitted work",
		SubmittedAt:  submittedAt,
	}
	require.NoError(t, db.Create(&submission).Error)
	return submission
}

func timePointer(value time.Time) *time.Time {
	return &value
}

func floatPointer(value float64) *float64 {
	return &value
}

func stringPointer(value string) *string {
	return &value
}
