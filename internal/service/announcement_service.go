package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/response"
)

type announcementStore interface {
	GetByID(ctx context.Context, id int) (*model.Announcement, error)
	ListVisible(ctx context.Context, role model.Role, standardID *int, limit, offset int) ([]model.Announcement, int, error)
	Create(ctx context.Context, a *model.Announcement) error
	Update(ctx context.Context, a *model.Announcement) error
	Delete(ctx context.Context, id int) error
}

type announcementPublisher interface {
	Publish(ctx context.Context, a *model.Announcement) error
}

// AnnouncementService manages notices and pushes new ones to live readers.
type AnnouncementService struct {
	announcements announcementStore
	publisher     announcementPublisher
	log           zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService.
func NewAnnouncementService(announcements announcementStore, publisher announcementPublisher, log zerolog.Logger) *AnnouncementService {
	return &AnnouncementService{
		announcements: announcements,
		publisher:     publisher,
		log:           log.With().Str("component", "announcement_service").Logger(),
	}
}

// List returns the announcements visible to the actor, newest first.
func (s *AnnouncementService) List(ctx context.Context, actor Actor, page, perPage int) ([]model.Announcement, *response.Pagination, error) {
	page, perPage, limit, offset := pageWindow(page, perPage)
	items, total, err := s.announcements.ListVisible(ctx, actor.Role, actor.StandardID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return items, response.NewPagination(page, perPage, total), nil
}

// GetByID returns an announcement if the actor may see it.
func (s *AnnouncementService) GetByID(ctx context.Context, actor Actor, id int) (*model.Announcement, error) {
	a, err := s.announcements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.VisibleTo(actor.Role, actor.StandardID) {
		return nil, ErrForbidden
	}
	return a, nil
}

// Create stores an announcement and publishes it. A failed publish is
// logged; readers still get it on their next listing.
func (s *AnnouncementService) Create(ctx context.Context, actor Actor, req *model.AnnouncementRequest) (*model.Announcement, error) {
	a := &model.Announcement{
		Title:      strings.TrimSpace(req.Title),
		Body:       req.Body,
		Audience:   req.Audience,
		StandardID: req.StandardID,
		CreatedBy:  actor.UserID,
	}
	if err := s.announcements.Create(ctx, a); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, a); err != nil {
		s.log.Warn().Err(err).Int("announcement_id", a.ID).Msg("Failed to publish announcement")
	}
	return a, nil
}

func (s *AnnouncementService) Update(ctx context.Context, id int, req *model.AnnouncementRequest) (*model.Announcement, error) {
	a := &model.Announcement{
		ID:         id,
		Title:      strings.TrimSpace(req.Title),
		Body:       req.Body,
		Audience:   req.Audience,
		StandardID: req.StandardID,
	}
	if err := s.announcements.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id int) error {
	return s.announcements.Delete(ctx, id)
}
