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

// AnnouncementHandler handles announcement endpoints.
type AnnouncementHandler struct {
	announcementService *service.AnnouncementService
}

// NewAnnouncementHandler creates a new AnnouncementHandler.
func NewAnnouncementHandler(announcementService *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// List godoc
// GET /api/v1/announcements?page=&per_page=
// Only announcements addressed to the caller's audience and standard are returned.
func (h *AnnouncementHandler) List(c *gin.Context) {
	var q pageQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	items, pagination, err := h.announcementService.List(c.Request.Context(), middleware.GetActor(c), q.Page, q.PerPage)
	if err != nil {
		failFromError(c, err)
		return
	}
	if items == nil {
		items = []model.Announcement{}
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"announcements": items}, pagination)
}

// Get godoc
// GET /api/v1/announcements/:id
func (h *AnnouncementHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	a, err := h.announcementService.GetByID(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"announcement": a})
}

// Create godoc
// POST /api/v1/announcements
// Stores the announcement and pushes it to connected WebSocket readers.
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req model.AnnouncementRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	a, err := h.announcementService.Create(c.Request.Context(), middleware.GetActor(c), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"announcement": a})
}

// Update godoc
// PUT /api/v1/announcements/:id
func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AnnouncementRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	a, err := h.announcementService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"announcement": a})
}

// Delete godoc
// DELETE /api/v1/announcements/:id
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.announcementService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "announcement deleted successfully"})
}
