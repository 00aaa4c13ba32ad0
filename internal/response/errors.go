package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"
	ErrStudentOnly      ErrCode = "STUDENT_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidDate    ErrCode = "INVALID_DATE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"
	ErrInvalidReference ErrCode = "INVALID_REFERENCE"
	ErrActionForbidden  ErrCode = "ACTION_FORBIDDEN"

	// ─── Academics ─────────────────────────────────────────────────────
	ErrStandardRequired   ErrCode = "STANDARD_REQUIRED"
	ErrInvalidTimeRange   ErrCode = "INVALID_TIME_RANGE"
	ErrNotAStudent        ErrCode = "NOT_A_STUDENT"
	ErrNotATutor          ErrCode = "NOT_A_TUTOR"
	ErrStudentNotEnrolled ErrCode = "STUDENT_NOT_IN_STANDARD"
	ErrSubjectMismatch    ErrCode = "SUBJECT_NOT_IN_STANDARD"
	ErrDuplicateStudent   ErrCode = "DUPLICATE_STUDENT"
	ErrAttendanceRequired ErrCode = "ATTENDANCE_REQUIRED"
	ErrNotATestLecture    ErrCode = "NOT_A_TEST_LECTURE"
	ErrMarksExceedTotal   ErrCode = "MARKS_EXCEED_TOTAL"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You are not allowed to access this resource."
	case ErrPermissionDenied:
		return "Permission denied."
	case ErrStudentOnly:
		return "This resource is only available to students."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrInvalidDate:
		return "Dates must use the YYYY-MM-DD format."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrDependencyExists:
		return "This record is still referenced by other data and cannot be deleted."
	case ErrInvalidReference:
		return "A referenced record does not exist."
	case ErrActionForbidden:
		return "This action is not allowed."

	// ─── Academics ─────────────────────────────────────────────────────
	case ErrStandardRequired:
		return "Students must belong to a standard."
	case ErrInvalidTimeRange:
		return "End time must be after start time."
	case ErrNotAStudent:
		return "The referenced user is not a student."
	case ErrNotATutor:
		return "The referenced user is not a tutor."
	case ErrStudentNotEnrolled:
		return "The student does not belong to this lecture's standard."
	case ErrSubjectMismatch:
		return "The subject does not belong to the given standard."
	case ErrDuplicateStudent:
		return "A student appears more than once in the request."
	case ErrAttendanceRequired:
		return "Attendance must be recorded before marks can be entered."
	case ErrNotATestLecture:
		return "Marks can only be entered for test lectures."
	case ErrMarksExceedTotal:
		return "Marks cannot exceed total marks."

	// ─── Media ─────────────────────────────────────────────────────────
	case ErrFileRequired:
		return "A file upload is required."
	case ErrUnsupportedFile:
		return "Unsupported file type."
	case ErrFileTooLarge:
		return "File exceeds the size limit."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
