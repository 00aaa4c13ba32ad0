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

// MarkHandler handles test marks and progress reports.
type MarkHandler struct {
	markService *service.MarkService
}

// NewMarkHandler creates a new MarkHandler.
func NewMarkHandler(markService *service.MarkService) *MarkHandler {
	return &MarkHandler{markService: markService}
}

// Record godoc
// PUT /api/v1/lectures/:id/marks
// Upserts a student's marks for a test lecture. The student's attendance
// must already be recorded.
func (h *MarkHandler) Record(c *gin.Context) {
	lectureID, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.MarkRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	mark, err := h.markService.Record(c.Request.Context(), lectureID, &req, middleware.GetActor(c).UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"mark": mark})
}

// ListByLecture godoc
// GET /api/v1/lectures/:id/marks
func (h *MarkHandler) ListByLecture(c *gin.Context) {
	lectureID, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	marks, err := h.markService.ListByLecture(c.Request.Context(), lectureID)
	if err != nil {
		failFromError(c, err)
		return
	}
	if marks == nil {
		marks = []model.Mark{}
	}
	response.Success(c, http.StatusOK, gin.H{"marks": marks})
}

// Delete godoc
// DELETE /api/v1/marks/:id
func (h *MarkHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.markService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "mark deleted successfully"})
}

// StudentProgress godoc
// GET /api/v1/students/:id/progress?subject_id=
func (h *MarkHandler) StudentProgress(c *gin.Context) {
	studentID, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	h.progress(c, studentID)
}

// MyProgress godoc
// GET /api/v1/me/progress?subject_id=
func (h *MarkHandler) MyProgress(c *gin.Context) {
	h.progress(c, middleware.GetActor(c).UserID)
}

func (h *MarkHandler) progress(c *gin.Context, studentID int) {
	subjectID, ok := queryInt(c, "subject_id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	report, err := h.markService.Progress(c.Request.Context(), studentID, subjectID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}
