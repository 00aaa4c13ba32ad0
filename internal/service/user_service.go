package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/response"
)

type userStore interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
	ListPaginated(ctx context.Context, f model.UserFilter, limit, offset int) ([]model.User, int, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int) error
}

// UserService manages accounts of every role.
type UserService struct {
	users userStore
	auth  *AuthService
	log   zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users userStore, auth *AuthService, log zerolog.Logger) *UserService {
	return &UserService{
		users: users,
		auth:  auth,
		log:   log.With().Str("component", "user_service").Logger(),
	}
}

// GetByID retrieves a user.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// List retrieves users with pagination and optional role/standard filters.
func (s *UserService) List(ctx context.Context, f model.UserFilter, page, perPage int) ([]model.User, *response.Pagination, error) {
	page, perPage, limit, offset := pageWindow(page, perPage)

	users, total, err := s.users.ListPaginated(ctx, f, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, response.NewPagination(page, perPage, total), nil
}

// normalizeStandard enforces that students carry a standard and nobody else does.
func normalizeStandard(role model.Role, standardID *int) (*int, error) {
	if role != model.RoleStudent {
		return nil, nil
	}
	if standardID == nil {
		return nil, ErrStandardRequired
	}
	return standardID, nil
}

// Create inserts a new user with a hashed password.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	standardID, err := normalizeStandard(req.Role, req.StandardID)
	if err != nil {
		return nil, err
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        req.Phone,
		Role:         req.Role,
		StandardID:   standardID,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info().Int("user_id", u.ID).Str("role", string(u.Role)).Msg("User created")
	return s.users.GetByID(ctx, u.ID)
}

// Update modifies a user. A non-empty password is re-hashed. Changing the
// role or standard ends the user's session so new claims take effect.
func (s *UserService) Update(ctx context.Context, id int, req *model.UpdateUserRequest) (*model.User, error) {
	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	standardID, err := normalizeStandard(req.Role, req.StandardID)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:         id,
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:      req.Phone,
		Role:       req.Role,
		StandardID: standardID,
	}
	if req.Password != "" {
		if u.PasswordHash, err = s.auth.HashPassword(req.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	if existing.Role != u.Role || !sameStandard(existing.StandardID, u.StandardID) || req.Password != "" {
		if err := s.auth.ResetSession(ctx, id); err != nil {
			s.log.Warn().Err(err).Int("user_id", id).Msg("Failed to reset session after update")
		}
	}

	return s.users.GetByID(ctx, id)
}

func sameStandard(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Delete removes a user and ends their session.
func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.auth.ResetSession(ctx, id); err != nil {
		s.log.Warn().Err(err).Int("user_id", id).Msg("Failed to reset session after delete")
	}
	return nil
}

// ResetSession forces the user to log in again.
func (s *UserService) ResetSession(ctx context.Context, id int) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.auth.ResetSession(ctx, id)
}
