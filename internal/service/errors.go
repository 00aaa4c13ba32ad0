package service

import "errors"

// Domain errors returned by services. Handlers map them to response codes.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionInvalid     = errors.New("session invalidated")

	ErrForbidden = errors.New("not allowed to modify this record")

	ErrStandardRequired   = errors.New("students must belong to a standard")
	ErrInvalidTimeRange   = errors.New("end time must be after start time")
	ErrInvalidDate        = errors.New("invalid date")
	ErrNotAStudent        = errors.New("user is not a student")
	ErrNotATutor          = errors.New("user is not a tutor")
	ErrStudentNotEnrolled = errors.New("student is not in the lecture's standard")
	ErrSubjectMismatch    = errors.New("subject does not belong to the standard")
	ErrDuplicateStudent   = errors.New("student listed more than once")
	ErrInvalidStatus      = errors.New("invalid attendance status")
	ErrAttendanceRequired = errors.New("attendance must be recorded before marks")
	ErrNotTestLecture     = errors.New("marks can only be recorded for test lectures")
	ErrMarksExceedTotal   = errors.New("marks exceed total marks")
	ErrInvalidMarks       = errors.New("marks must be non-negative and total marks positive")
)
