package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/progress"
	"github.com/stemsi/tutorhub-backend/internal/repository"
	"github.com/stemsi/tutorhub-backend/internal/timezone"
)

// DashboardData is the admin landing page payload.
type DashboardData struct {
	Counts         *repository.DashboardCounts `json:"counts"`
	WeekStart      string                      `json:"week_start"`
	WeekEnd        string                      `json:"week_end"`
	WeekAttendance string                      `json:"week_attendance"`
	Day            string                      `json:"day"`
	TodayLectures  []model.Lecture             `json:"today_lectures"`
}

// DashboardService aggregates dashboard numbers.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
	lectures      lectureStore
	loc           *time.Location
	log           zerolog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo *repository.DashboardRepository, lectures lectureStore, loc *time.Location, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		lectures:      lectures,
		loc:           loc,
		log:           log.With().Str("component", "dashboard_service").Logger(),
	}
}

// GetDashboardData returns counts for the week containing day and the
// lectures held on day. A nil day means today in the school time zone.
func (s *DashboardService) GetDashboardData(ctx context.Context, day *time.Time) (*DashboardData, error) {
	today := timezone.Today(s.loc)
	if day != nil {
		today = *day
	}
	start, end := progress.WeekBounds(today)

	counts, err := s.dashboardRepo.GetSummaryCounts(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("summary counts: %w", err)
	}

	present, marked, err := s.dashboardRepo.GetAttendanceRate(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("attendance rate: %w", err)
	}

	lectures, err := s.lectures.List(ctx, model.LectureFilter{From: &today, To: &today})
	if err != nil {
		return nil, fmt.Errorf("today lectures: %w", err)
	}

	return &DashboardData{
		Counts:         counts,
		WeekStart:      start.Format(model.DateLayout),
		WeekEnd:        end.Format(model.DateLayout),
		WeekAttendance: progress.Percent(float64(present), float64(marked)),
		Day:            today.Format(model.DateLayout),
		TodayLectures:  lectures,
	}, nil
}
