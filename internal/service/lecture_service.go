package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/config"
	"github.com/stemsi/tutorhub-backend/internal/metrics"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/progress"
)

type lectureStore interface {
	GetByID(ctx context.Context, id int) (*model.Lecture, error)
	List(ctx context.Context, f model.LectureFilter) ([]model.Lecture, error)
	Create(ctx context.Context, l *model.Lecture) error
	Update(ctx context.Context, l *model.Lecture) error
	Delete(ctx context.Context, id int) error
}

type userGetter interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
}

type subjectGetter interface {
	GetByID(ctx context.Context, id int) (*model.Subject, error)
}

type standardLister interface {
	GetAll(ctx context.Context) ([]model.Standard, error)
}

type scheduleCache interface {
	Version(ctx context.Context) (int64, error)
	Bump(ctx context.Context) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
}

// invalidateSchedule bumps the cache version. Failures only cost freshness
// until the TTL expires, so they are logged rather than returned.
func invalidateSchedule(ctx context.Context, cache scheduleCache, log zerolog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Bump(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to bump schedule cache version")
	}
}

// ScheduleScope selects whose lectures a week contains. Nil fields match all.
type ScheduleScope struct {
	StandardID *int
	TutorID    *int
}

// Key returns a stable cache key fragment for the scope.
func (s ScheduleScope) Key() string {
	key := "all"
	if s.StandardID != nil {
		key = "standard:" + strconv.Itoa(*s.StandardID)
	}
	if s.TutorID != nil {
		if key == "all" {
			key = ""
		} else {
			key += ":"
		}
		key += "tutor:" + strconv.Itoa(*s.TutorID)
	}
	return key
}

// LectureService manages lectures and serves weekly schedules.
type LectureService struct {
	lectures  lectureStore
	users     userGetter
	subjects  subjectGetter
	standards standardLister
	cache     scheduleCache
	log       zerolog.Logger
}

// NewLectureService creates a new LectureService.
func NewLectureService(
	lectures lectureStore,
	users userGetter,
	subjects subjectGetter,
	standards standardLister,
	cache scheduleCache,
	log zerolog.Logger,
) *LectureService {
	return &LectureService{
		lectures:  lectures,
		users:     users,
		subjects:  subjects,
		standards: standards,
		cache:     cache,
		log:       log.With().Str("component", "lecture_service").Logger(),
	}
}

// GetByID retrieves a lecture.
func (s *LectureService) GetByID(ctx context.Context, id int) (*model.Lecture, error) {
	return s.lectures.GetByID(ctx, id)
}

// List returns lectures matching the filter.
func (s *LectureService) List(ctx context.Context, f model.LectureFilter) ([]model.Lecture, error) {
	return s.lectures.List(ctx, f)
}

// fromRequest validates a payload and builds the lecture it describes.
func (s *LectureService) fromRequest(ctx context.Context, req *model.LectureRequest) (*model.Lecture, error) {
	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, req.Date)
	}
	start, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	end, err := time.Parse("15:04", req.EndTime)
	if err != nil || !end.After(start) {
		return nil, ErrInvalidTimeRange
	}

	tutor, err := s.users.GetByID(ctx, req.TutorID)
	if err != nil {
		return nil, err
	}
	if tutor.Role != model.RoleTutor {
		return nil, ErrNotATutor
	}

	subject, err := s.subjects.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}
	if subject.StandardID != req.StandardID {
		return nil, ErrSubjectMismatch
	}

	return &model.Lecture{
		SubjectID:   req.SubjectID,
		TutorID:     req.TutorID,
		StandardID:  req.StandardID,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
	}, nil
}

// Create schedules a new lecture.
func (s *LectureService) Create(ctx context.Context, req *model.LectureRequest) (*model.Lecture, error) {
	l, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.lectures.Create(ctx, l); err != nil {
		return nil, err
	}
	invalidateSchedule(ctx, s.cache, s.log)

	s.log.Info().Int("lecture_id", l.ID).Str("date", req.Date).Msg("Lecture created")
	return s.lectures.GetByID(ctx, l.ID)
}

// Update reschedules or edits a lecture.
func (s *LectureService) Update(ctx context.Context, id int, req *model.LectureRequest) (*model.Lecture, error) {
	l, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	l.ID = id
	if err := s.lectures.Update(ctx, l); err != nil {
		return nil, err
	}
	invalidateSchedule(ctx, s.cache, s.log)
	return s.lectures.GetByID(ctx, id)
}

// Delete removes a lecture together with its attendance and marks.
func (s *LectureService) Delete(ctx context.Context, id int) error {
	if err := s.lectures.Delete(ctx, id); err != nil {
		return err
	}
	invalidateSchedule(ctx, s.cache, s.log)
	return nil
}

// WeeklySchedule returns the Sunday..Saturday week containing ref for the
// scope. Built weeks are cached per scope, week and cache version; cache
// failures fall back to building from the database.
func (s *LectureService) WeeklySchedule(ctx context.Context, ref time.Time, scope ScheduleScope) (progress.Week, error) {
	start, end := progress.WeekBounds(ref)

	var key string
	if s.cache != nil {
		version, err := s.cache.Version(ctx)
		if err != nil {
			metrics.ScheduleCache.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Msg("Schedule cache version unavailable")
		} else {
			key = config.CacheKey.WeekScheduleKey(scope.Key(), start.Format(model.DateLayout), version)
			if week, ok := s.cachedWeek(ctx, key); ok {
				metrics.ScheduleCache.WithLabelValues("hit").Inc()
				return week, nil
			}
			metrics.ScheduleCache.WithLabelValues("miss").Inc()
		}
	}

	lectures, err := s.lectures.List(ctx, model.LectureFilter{
		StandardID: scope.StandardID,
		TutorID:    scope.TutorID,
		From:       &start,
		To:         &end,
	})
	if err != nil {
		return progress.Week{}, fmt.Errorf("list week lectures: %w", err)
	}

	week := progress.BuildWeek(ref, lectures)

	if key != "" {
		if raw, err := json.Marshal(week); err == nil {
			if err := s.cache.Set(ctx, key, raw); err != nil {
				s.log.Warn().Err(err).Str("key", key).Msg("Failed to cache week")
			}
		}
	}
	return week, nil
}

func (s *LectureService) cachedWeek(ctx context.Context, key string) (progress.Week, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Schedule cache read failed")
		return progress.Week{}, false
	}
	if !ok {
		return progress.Week{}, false
	}
	var week progress.Week
	if err := json.Unmarshal(raw, &week); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Discarding corrupt cached week")
		return progress.Week{}, false
	}
	return week, true
}

// PrewarmWeek builds and caches the week containing ref for every standard
// and for the unscoped view. It returns how many weeks were built.
func (s *LectureService) PrewarmWeek(ctx context.Context, ref time.Time) (int, error) {
	standards, err := s.standards.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list standards: %w", err)
	}

	built := 0
	if _, err := s.WeeklySchedule(ctx, ref, ScheduleScope{}); err != nil {
		return built, err
	}
	built++

	for _, st := range standards {
		id := st.ID
		if _, err := s.WeeklySchedule(ctx, ref, ScheduleScope{StandardID: &id}); err != nil {
			return built, fmt.Errorf("prewarm standard %d: %w", id, err)
		}
		built++
	}
	return built, nil
}
