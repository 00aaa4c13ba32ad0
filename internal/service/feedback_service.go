package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/response"
)

type feedbackStore interface {
	Create(ctx context.Context, f *model.Feedback) error
	List(ctx context.Context, tutorID *int, limit, offset int) ([]model.Feedback, int, error)
}

type FeedbackService struct {
	feedback feedbackStore
	users    userGetter
	log      zerolog.Logger
}

func NewFeedbackService(feedback feedbackStore, users userGetter, log zerolog.Logger) *FeedbackService {
	return &FeedbackService{
		feedback: feedback,
		users:    users,
		log:      log.With().Str("component", "feedback_service").Logger(),
	}
}

// Submit stores feedback from the actor, optionally about a tutor.
func (s *FeedbackService) Submit(ctx context.Context, actor Actor, req *model.FeedbackRequest) (*model.Feedback, error) {
	if req.TutorID != nil {
		tutor, err := s.users.GetByID(ctx, *req.TutorID)
		if err != nil {
			return nil, err
		}
		if tutor.Role != model.RoleTutor {
			return nil, ErrNotATutor
		}
	}

	f := &model.Feedback{
		FromUserID: actor.UserID,
		TutorID:    req.TutorID,
		Message:    strings.TrimSpace(req.Message),
		Rating:     req.Rating,
	}
	if err := s.feedback.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// List returns feedback. Tutors only ever see feedback about themselves.
func (s *FeedbackService) List(ctx context.Context, actor Actor, tutorID *int, page, perPage int) ([]model.Feedback, *response.Pagination, error) {
	if actor.Role == model.RoleTutor {
		self := actor.UserID
		tutorID = &self
	}

	page, perPage, limit, offset := pageWindow(page, perPage)
	items, total, err := s.feedback.List(ctx, tutorID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return items, response.NewPagination(page, perPage, total), nil
}
