package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/response"
	"github.com/stemsi/tutorhub-backend/internal/service"
	"github.com/stemsi/tutorhub-backend/internal/validator"
)

type StandardHandler struct {
	standardService *service.StandardService
}

func NewStandardHandler(standardService *service.StandardService) *StandardHandler {
	return &StandardHandler{standardService: standardService}
}

// GetAll godoc
// GET /api/v1/standards
func (h *StandardHandler) GetAll(c *gin.Context) {
	standards, err := h.standardService.GetAll(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}

	if standards == nil {
		standards = []model.Standard{}
	}

	response.Success(c, http.StatusOK, gin.H{"standards": standards})
}

// Get godoc
// GET /api/v1/standards/:id
func (h *StandardHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	st, err := h.standardService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"standard": st})
}

// Create godoc
// POST /api/v1/standards
func (h *StandardHandler) Create(c *gin.Context) {
	var req model.StandardRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	st := &model.Standard{Name: strings.TrimSpace(req.Name), Code: strings.TrimSpace(req.Code)}
	if err := h.standardService.Create(c.Request.Context(), st); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"standard": st})
}

// Update godoc
// PUT /api/v1/standards/:id
func (h *StandardHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.StandardRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	st := &model.Standard{ID: id, Name: strings.TrimSpace(req.Name), Code: strings.TrimSpace(req.Code)}
	if err := h.standardService.Update(c.Request.Context(), st); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"standard": st})
}

// Delete godoc
// DELETE /api/v1/standards/:id
// Fails with DEPENDENCY_EXISTS while subjects, students or lectures reference it.
func (h *StandardHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.standardService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "standard deleted successfully"})
}
