package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

type noteStore interface {
	GetByID(ctx context.Context, id int) (*model.Note, error)
	List(ctx context.Context, f model.ContentFilter) ([]model.Note, error)
	Create(ctx context.Context, n *model.Note) error
	Update(ctx context.Context, n *model.Note) error
	Delete(ctx context.Context, id int) error
}

type NoteService struct {
	notes    noteStore
	subjects subjectGetter
	log      zerolog.Logger
}

func NewNoteService(notes noteStore, subjects subjectGetter, log zerolog.Logger) *NoteService {
	return &NoteService{
		notes:    notes,
		subjects: subjects,
		log:      log.With().Str("component", "note_service").Logger(),
	}
}

func (s *NoteService) List(ctx context.Context, actor Actor, f model.ContentFilter) ([]model.Note, error) {
	return s.notes.List(ctx, actor.contentScope(f))
}

func (s *NoteService) GetByID(ctx context.Context, actor Actor, id int) (*model.Note, error) {
	n, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == model.RoleStudent && (actor.StandardID == nil || *actor.StandardID != n.StandardID) {
		return nil, ErrForbidden
	}
	return n, nil
}

func (s *NoteService) Create(ctx context.Context, actor Actor, req *model.NoteRequest) (*model.Note, error) {
	if err := checkSubjectStandard(ctx, s.subjects, req.SubjectID, req.StandardID); err != nil {
		return nil, err
	}
	n := &model.Note{
		SubjectID:  req.SubjectID,
		StandardID: req.StandardID,
		UploadedBy: actor.UserID,
		Title:      strings.TrimSpace(req.Title),
		FileURL:    req.FileURL,
	}
	if err := s.notes.Create(ctx, n); err != nil {
		return nil, err
	}
	return s.notes.GetByID(ctx, n.ID)
}

func (s *NoteService) Update(ctx context.Context, actor Actor, id int, req *model.NoteRequest) (*model.Note, error) {
	existing, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canModify(existing.UploadedBy) {
		return nil, ErrForbidden
	}
	if err := checkSubjectStandard(ctx, s.subjects, req.SubjectID, req.StandardID); err != nil {
		return nil, err
	}

	n := &model.Note{
		ID:         id,
		SubjectID:  req.SubjectID,
		StandardID: req.StandardID,
		Title:      strings.TrimSpace(req.Title),
		FileURL:    req.FileURL,
	}
	if err := s.notes.Update(ctx, n); err != nil {
		return nil, err
	}
	return s.notes.GetByID(ctx, id)
}

func (s *NoteService) Delete(ctx context.Context, actor Actor, id int) error {
	existing, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.canModify(existing.UploadedBy) {
		return ErrForbidden
	}
	return s.notes.Delete(ctx, id)
}
