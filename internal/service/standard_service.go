package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/repository"
)

type StandardService struct {
	standardRepo *repository.StandardRepository
	schedule     scheduleCache
	log          zerolog.Logger
}

func NewStandardService(standardRepo *repository.StandardRepository, schedule scheduleCache, log zerolog.Logger) *StandardService {
	return &StandardService{
		standardRepo: standardRepo,
		schedule:     schedule,
		log:          log.With().Str("component", "standard_service").Logger(),
	}
}

func (s *StandardService) GetAll(ctx context.Context) ([]model.Standard, error) {
	return s.standardRepo.GetAll(ctx)
}

func (s *StandardService) GetByID(ctx context.Context, id int) (*model.Standard, error) {
	return s.standardRepo.GetByID(ctx, id)
}

func (s *StandardService) Create(ctx context.Context, st *model.Standard) error {
	return s.standardRepo.Create(ctx, st)
}

// Update renames a standard. Cached weeks embed standard names, so they are invalidated.
func (s *StandardService) Update(ctx context.Context, st *model.Standard) error {
	if err := s.standardRepo.Update(ctx, st); err != nil {
		return err
	}
	invalidateSchedule(ctx, s.schedule, s.log)
	return nil
}

func (s *StandardService) Delete(ctx context.Context, id int) error {
	return s.standardRepo.Delete(ctx, id)
}
