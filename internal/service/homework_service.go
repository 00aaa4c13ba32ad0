package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

type homeworkStore interface {
	GetByID(ctx context.Context, id int) (*model.Homework, error)
	List(ctx context.Context, f model.ContentFilter) ([]model.Homework, error)
	Create(ctx context.Context, h *model.Homework) error
	Update(ctx context.Context, h *model.Homework) error
	Delete(ctx context.Context, id int) error
}

// checkSubjectStandard verifies the subject is taught in the standard.
func checkSubjectStandard(ctx context.Context, subjects subjectGetter, subjectID, standardID int) error {
	sub, err := subjects.GetByID(ctx, subjectID)
	if err != nil {
		return err
	}
	if sub.StandardID != standardID {
		return ErrSubjectMismatch
	}
	return nil
}

type HomeworkService struct {
	homework homeworkStore
	subjects subjectGetter
	log      zerolog.Logger
}

func NewHomeworkService(homework homeworkStore, subjects subjectGetter, log zerolog.Logger) *HomeworkService {
	return &HomeworkService{
		homework: homework,
		subjects: subjects,
		log:      log.With().Str("component", "homework_service").Logger(),
	}
}

func (s *HomeworkService) List(ctx context.Context, actor Actor, f model.ContentFilter) ([]model.Homework, error) {
	return s.homework.List(ctx, actor.contentScope(f))
}

// GetByID returns a homework item. Students only see their own standard's.
func (s *HomeworkService) GetByID(ctx context.Context, actor Actor, id int) (*model.Homework, error) {
	h, err := s.homework.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == model.RoleStudent && (actor.StandardID == nil || *actor.StandardID != h.StandardID) {
		return nil, ErrForbidden
	}
	return h, nil
}

func (s *HomeworkService) fromRequest(ctx context.Context, req *model.HomeworkRequest) (*model.Homework, error) {
	due, err := time.Parse(model.DateLayout, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, req.DueDate)
	}
	if err := checkSubjectStandard(ctx, s.subjects, req.SubjectID, req.StandardID); err != nil {
		return nil, err
	}
	return &model.Homework{
		SubjectID:     req.SubjectID,
		StandardID:    req.StandardID,
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		DueDate:       due,
		AttachmentURL: req.AttachmentURL,
	}, nil
}

func (s *HomeworkService) Create(ctx context.Context, actor Actor, req *model.HomeworkRequest) (*model.Homework, error) {
	h, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	h.TutorID = actor.UserID
	if err := s.homework.Create(ctx, h); err != nil {
		return nil, err
	}
	return s.homework.GetByID(ctx, h.ID)
}

// Update edits homework. Tutors may only edit their own.
func (s *HomeworkService) Update(ctx context.Context, actor Actor, id int, req *model.HomeworkRequest) (*model.Homework, error) {
	existing, err := s.homework.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canModify(existing.TutorID) {
		return nil, ErrForbidden
	}

	h, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	h.ID = id
	if err := s.homework.Update(ctx, h); err != nil {
		return nil, err
	}
	return s.homework.GetByID(ctx, id)
}

func (s *HomeworkService) Delete(ctx context.Context, actor Actor, id int) error {
	existing, err := s.homework.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.canModify(existing.TutorID) {
		return ErrForbidden
	}
	return s.homework.Delete(ctx, id)
}
