package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorhub-backend/internal/repository"
	"github.com/stemsi/tutorhub-backend/internal/response"
	"github.com/stemsi/tutorhub-backend/internal/service"
)

type errMapping struct {
	err    error
	status int
	code   response.ErrCode
}

// errorTable is checked in order; the first match wins.
var errorTable = []errMapping{
	{repository.ErrNotFound, http.StatusNotFound, response.ErrNotFound},
	{repository.ErrConflict, http.StatusConflict, response.ErrConflict},
	{repository.ErrDependencyExists, http.StatusConflict, response.ErrDependencyExists},
	{repository.ErrInvalidReference, http.StatusUnprocessableEntity, response.ErrInvalidReference},

	{service.ErrInvalidCredentials, http.StatusUnauthorized, response.ErrInvalidCredentials},
	{service.ErrSessionInvalid, http.StatusUnauthorized, response.ErrSessionInvalidated},
	{service.ErrForbidden, http.StatusForbidden, response.ErrActionForbidden},

	{service.ErrInvalidDate, http.StatusBadRequest, response.ErrInvalidDate},
	{service.ErrStandardRequired, http.StatusUnprocessableEntity, response.ErrStandardRequired},
	{service.ErrInvalidTimeRange, http.StatusUnprocessableEntity, response.ErrInvalidTimeRange},
	{service.ErrNotAStudent, http.StatusUnprocessableEntity, response.ErrNotAStudent},
	{service.ErrNotATutor, http.StatusUnprocessableEntity, response.ErrNotATutor},
	{service.ErrStudentNotEnrolled, http.StatusUnprocessableEntity, response.ErrStudentNotEnrolled},
	{service.ErrSubjectMismatch, http.StatusUnprocessableEntity, response.ErrSubjectMismatch},
	{service.ErrDuplicateStudent, http.StatusUnprocessableEntity, response.ErrDuplicateStudent},
	{service.ErrInvalidStatus, http.StatusBadRequest, response.ErrValidation},
	{service.ErrAttendanceRequired, http.StatusConflict, response.ErrAttendanceRequired},
	{service.ErrNotTestLecture, http.StatusUnprocessableEntity, response.ErrNotATestLecture},
	{service.ErrMarksExceedTotal, http.StatusUnprocessableEntity, response.ErrMarksExceedTotal},
	{service.ErrInvalidMarks, http.StatusBadRequest, response.ErrValidation},

	{service.ErrUnsupportedFileType, http.StatusBadRequest, response.ErrUnsupportedFile},
	{service.ErrFileTooLarge, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge},
}

// failFromError writes the response for a service or repository error.
// Unknown errors are attached to the context for the access log and
// reported as 500.
func failFromError(c *gin.Context, err error) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			response.Fail(c, m.status, m.code)
			return
		}
	}
	_ = c.Error(err)
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
