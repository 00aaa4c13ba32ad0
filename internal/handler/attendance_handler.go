package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorhub-backend/internal/middleware"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/response"
	"github.com/stemsi/tutorhub-backend/internal/service"
	"github.com/stemsi/tutorhub-backend/internal/validator"
)

// AttendanceHandler handles attendance marking and statistics.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// Mark godoc
// PUT /api/v1/lectures/:id/attendance
// Upserts one student's status for the lecture.
func (h *AttendanceHandler) Mark(c *gin.Context) {
	lectureID, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.MarkAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.attendanceService.Mark(c.Request.Context(), lectureID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attendance": record})
}

// MarkBulk godoc
// POST /api/v1/lectures/:id/attendance/bulk
// Validates every entry, queues them for the attendance worker and
// answers 202 without waiting for the write.
func (h *AttendanceHandler) MarkBulk(c *gin.Context) {
	lectureID, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.BulkAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	queued, err := h.attendanceService.MarkBulk(c.Request.Context(), lectureID, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"queued": queued})
}

// ListByLecture godoc
// GET /api/v1/lectures/:id/attendance
func (h *AttendanceHandler) ListByLecture(c *gin.Context) {
	lectureID, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	records, err := h.attendanceService.ListByLecture(c.Request.Context(), lectureID)
	if err != nil {
		failFromError(c, err)
		return
	}
	if records == nil {
		records = []model.Attendance{}
	}
	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}

// Delete godoc
// DELETE /api/v1/attendance/:id
func (h *AttendanceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.attendanceService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "attendance deleted successfully"})
}

// StudentSummary godoc
// GET /api/v1/students/:id/attendance/summary?subject_id=
func (h *AttendanceHandler) StudentSummary(c *gin.Context) {
	studentID, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	h.summary(c, studentID)
}

// MySummary godoc
// GET /api/v1/me/attendance/summary?subject_id=
func (h *AttendanceHandler) MySummary(c *gin.Context) {
	h.summary(c, middleware.GetActor(c).UserID)
}

func (h *AttendanceHandler) summary(c *gin.Context, studentID int) {
	subjectID, ok := queryInt(c, "subject_id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	report, err := h.attendanceService.Summary(c.Request.Context(), studentID, subjectID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}
