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

// HomeworkHandler handles homework endpoints.
type HomeworkHandler struct {
	homeworkService *service.HomeworkService
}

// NewHomeworkHandler creates a new HomeworkHandler.
func NewHomeworkHandler(homeworkService *service.HomeworkService) *HomeworkHandler {
	return &HomeworkHandler{homeworkService: homeworkService}
}

// contentFilter reads the standard_id and subject_id query filters shared
// by homework and note listings.
func contentFilter(c *gin.Context) (model.ContentFilter, bool) {
	var f model.ContentFilter
	var ok bool
	if f.StandardID, ok = queryInt(c, "standard_id"); !ok {
		return f, false
	}
	if f.SubjectID, ok = queryInt(c, "subject_id"); !ok {
		return f, false
	}
	return f, true
}

// List godoc
// GET /api/v1/homework?standard_id=&subject_id=
// Students only see homework of their own standard.
func (h *HomeworkHandler) List(c *gin.Context) {
	f, ok := contentFilter(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	items, err := h.homeworkService.List(c.Request.Context(), middleware.GetActor(c), f)
	if err != nil {
		failFromError(c, err)
		return
	}
	if items == nil {
		items = []model.Homework{}
	}
	response.Success(c, http.StatusOK, gin.H{"homework": items})
}

// Get godoc
// GET /api/v1/homework/:id
func (h *HomeworkHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	hw, err := h.homeworkService.GetByID(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"homework": hw})
}

// Create godoc
// POST /api/v1/homework
func (h *HomeworkHandler) Create(c *gin.Context) {
	var req model.HomeworkRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	hw, err := h.homeworkService.Create(c.Request.Context(), middleware.GetActor(c), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"homework": hw})
}

// Update godoc
// PUT /api/v1/homework/:id
// Tutors may only edit their own homework.
func (h *HomeworkHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.HomeworkRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	hw, err := h.homeworkService.Update(c.Request.Context(), middleware.GetActor(c), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"homework": hw})
}

// Delete godoc
// DELETE /api/v1/homework/:id
func (h *HomeworkHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.homeworkService.Delete(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "homework deleted successfully"})
}
