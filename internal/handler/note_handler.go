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

type NoteHandler struct {
	noteService *service.NoteService
}

func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// List godoc
// GET /api/v1/notes?standard_id=&subject_id=
func (h *NoteHandler) List(c *gin.Context) {
	f, ok := contentFilter(c)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	notes, err := h.noteService.List(c.Request.Context(), middleware.GetActor(c), f)
	if err != nil {
		failFromError(c, err)
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	response.Success(c, http.StatusOK, gin.H{"notes": notes})
}

// Get godoc
// GET /api/v1/notes/:id
func (h *NoteHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	note, err := h.noteService.GetByID(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"note": note})
}

// Create godoc
// POST /api/v1/notes
func (h *NoteHandler) Create(c *gin.Context) {
	var req model.NoteRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), middleware.GetActor(c), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"note": note})
}

// Update godoc
// PUT /api/v1/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.NoteRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), middleware.GetActor(c), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"note": note})
}

// Delete godoc
// DELETE /api/v1/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "note deleted successfully"})
}
