package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/repository"
)

type SubjectService struct {
	subjectRepo *repository.SubjectRepository
	schedule    scheduleCache
	log         zerolog.Logger
}

func NewSubjectService(subjectRepo *repository.SubjectRepository, schedule scheduleCache, log zerolog.Logger) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		schedule:    schedule,
		log:         log.With().Str("component", "subject_service").Logger(),
	}
}

func (s *SubjectService) GetAll(ctx context.Context, standardID *int) ([]model.Subject, error) {
	return s.subjectRepo.GetAll(ctx, standardID)
}

func (s *SubjectService) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	return s.subjectRepo.GetByID(ctx, id)
}

func (s *SubjectService) Create(ctx context.Context, sub *model.Subject) error {
	return s.subjectRepo.Create(ctx, sub)
}

func (s *SubjectService) Update(ctx context.Context, sub *model.Subject) error {
	if err := s.subjectRepo.Update(ctx, sub); err != nil {
		return err
	}
	invalidateSchedule(ctx, s.schedule, s.log)
	return nil
}

func (s *SubjectService) Delete(ctx context.Context, id int) error {
	return s.subjectRepo.Delete(ctx, id)
}
