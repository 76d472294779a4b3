package service

import "errors"

// Sentinel errors returned by the services. Handlers match them with
// errors.Is and translate them into HTTP statuses; none of them is fatal.
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrNotEnrolled rejects students acting on a course they are not part of.
	ErrNotEnrolled = errors.New("student is not enrolled in this course")

	// ErrNotCourseOwner rejects instructor actions on courses owned by someone else.
	ErrNotCourseOwner = errors.New("user is not the course instructor")

	// ErrAlreadyEnrolled signals a duplicate (student, course) enrollment.
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this course")

	// ErrSubmissionConflict signals that two first submissions raced for the
	// same (assignment, student) key; the storage uniqueness constraint kept
	// one and the caller may retry, which then resolves as a resubmission.
	ErrSubmissionConflict = errors.New("submission already exists for this assignment and student")

	// ErrScoreOutOfRange rejects grades outside [0, assignment max score].
	ErrScoreOutOfRange = errors.New("score is outside the allowed range for this assignment")

	// ErrPastDue rejects submissions after the deadline when strict deadline
	// mode is enabled. The default lenient mode never returns it.
	ErrPastDue = errors.New("assignment is past due")
)
