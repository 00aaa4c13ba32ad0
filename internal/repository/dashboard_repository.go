package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

// DashboardRepository handles admin dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// DashboardCounts are the headline numbers of the admin dashboard.
type DashboardCounts struct {
	Students          int `json:"students"`
	Tutors            int `json:"tutors"`
	Standards         int `json:"standards"`
	Subjects          int `json:"subjects"`
	LecturesThisWeek  int `json:"lectures_this_week"`
	TestsPendingMarks int `json:"tests_pending_marks"`
}

// GetSummaryCounts retrieves the high-level metrics for the dashboard.
// weekStart and weekEnd bound the lecture count inclusively.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context, weekStart, weekEnd time.Time) (*DashboardCounts, error) {
	c := &DashboardCounts{}
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM users WHERE role = $1),
			(SELECT COUNT(*) FROM users WHERE role = $2),
			(SELECT COUNT(*) FROM standards),
			(SELECT COUNT(*) FROM subjects),
			(SELECT COUNT(*) FROM lectures WHERE date BETWEEN $3 AND $4),
			(SELECT COUNT(DISTINCT l.id)
			   FROM lectures l
			   JOIN attendance a ON a.lecture_id = l.id
			   LEFT JOIN marks m ON m.lecture_id = l.id AND m.student_id = a.student_id
			  WHERE l.description = $5 AND l.date <= $4 AND m.id IS NULL)`,
		model.RoleStudent, model.RoleTutor, weekStart, weekEnd, model.LectureKindTest,
	).Scan(&c.Students, &c.Tutors, &c.Standards, &c.Subjects, &c.LecturesThisWeek, &c.TestsPendingMarks)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetAttendanceRate returns present and marked record counts between two dates.
func (r *DashboardRepository) GetAttendanceRate(ctx context.Context, from, to time.Time) (present, marked int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE a.status = $1), COUNT(*)
		 FROM attendance a JOIN lectures l ON l.id = a.lecture_id
		 WHERE l.date BETWEEN $2 AND $3`,
		model.AttendancePresent, from, to,
	).Scan(&present, &marked)
	return
}
