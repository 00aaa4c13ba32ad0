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

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// Submit godoc
// POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.FeedbackRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	fb, err := h.feedbackService.Submit(c.Request.Context(), middleware.GetActor(c), &req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"feedback": fb})
}

type listFeedbackQuery struct {
	pageQuery
	TutorID int `form:"tutor_id" binding:"omitempty,min=1"`
}

// List godoc
// GET /api/v1/feedback?tutor_id=&page=&per_page=
// Tutors always get feedback about themselves, whatever tutor_id says.
func (h *FeedbackHandler) List(c *gin.Context) {
	var q listFeedbackQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	var tutorID *int
	if q.TutorID > 0 {
		tutorID = &q.TutorID
	}

	items, pagination, err := h.feedbackService.List(c.Request.Context(), middleware.GetActor(c), tutorID, q.Page, q.PerPage)
	if err != nil {
		failFromError(c, err)
		return
	}
	if items == nil {
		items = []model.Feedback{}
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"feedback": items}, pagination)
}
