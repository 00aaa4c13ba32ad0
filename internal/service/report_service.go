package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/export"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

type standardGetter interface {
	GetByID(ctx context.Context, id int) (*model.Standard, error)
}

type rosterStore interface {
	ListStudents(ctx context.Context, standardID int) ([]model.User, error)
}

type registerStore interface {
	Register(ctx context.Context, lectureIDs []int) (map[int]map[int]model.AttendanceStatus, error)
}

type lectureLister interface {
	List(ctx context.Context, f model.LectureFilter) ([]model.Lecture, error)
}

// maxReportDays bounds the date range of a register export.
const maxReportDays = 366

// ReportService renders spreadsheet and calendar downloads.
type ReportService struct {
	standards standardGetter
	roster    rosterStore
	lectures  lectureLister
	register  registerStore
	marks     *MarkService
	schedule  *LectureService
	loc       *time.Location
	log       zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(
	standards standardGetter,
	roster rosterStore,
	lectures lectureLister,
	register registerStore,
	marks *MarkService,
	schedule *LectureService,
	loc *time.Location,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{
		standards: standards,
		roster:    roster,
		lectures:  lectures,
		register:  register,
		marks:     marks,
		schedule:  schedule,
		loc:       loc,
		log:       log.With().Str("component", "report_service").Logger(),
	}
}

// AttendanceWorkbook renders the register of a standard between from and to,
// both inclusive.
func (s *ReportService) AttendanceWorkbook(ctx context.Context, standardID int, from, to time.Time) (*excelize.File, string, error) {
	if to.Before(from) {
		return nil, "", fmt.Errorf("%w: range ends before it starts", ErrInvalidDate)
	}
	if to.Sub(from) > maxReportDays*24*time.Hour {
		return nil, "", fmt.Errorf("%w: range longer than %d days", ErrInvalidDate, maxReportDays)
	}

	standard, err := s.standards.GetByID(ctx, standardID)
	if err != nil {
		return nil, "", err
	}
	students, err := s.roster.ListStudents(ctx, standardID)
	if err != nil {
		return nil, "", fmt.Errorf("list students: %w", err)
	}
	lectures, err := s.lectures.List(ctx, model.LectureFilter{StandardID: &standardID, From: &from, To: &to})
	if err != nil {
		return nil, "", fmt.Errorf("list lectures: %w", err)
	}

	ids := make([]int, len(lectures))
	for i, l := range lectures {
		ids[i] = l.ID
	}
	statuses := map[int]map[int]model.AttendanceStatus{}
	if len(ids) > 0 {
		if statuses, err = s.register.Register(ctx, ids); err != nil {
			return nil, "", fmt.Errorf("load register: %w", err)
		}
	}

	f, err := export.AttendanceWorkbook(export.AttendanceRegister{
		StandardName: standard.Name,
		From:         from,
		To:           to,
		Students:     students,
		Lectures:     lectures,
		Statuses:     statuses,
	})
	if err != nil {
		return nil, "", err
	}

	s.log.Info().
		Int("standard_id", standardID).
		Int("students", len(students)).
		Int("lectures", len(lectures)).
		Msg("Attendance workbook generated")

	name := fmt.Sprintf("attendance-%s-%s-%s.xlsx", slug(standard.Name),
		from.Format(model.DateLayout), to.Format(model.DateLayout))
	return f, name, nil
}

// ProgressWorkbook renders one student's marks.
func (s *ReportService) ProgressWorkbook(ctx context.Context, studentID int) (*excelize.File, string, error) {
	report, err := s.marks.Progress(ctx, studentID, nil)
	if err != nil {
		return nil, "", err
	}
	f, err := export.ProgressWorkbook(report.StudentName, report.Marks)
	if err != nil {
		return nil, "", err
	}
	return f, fmt.Sprintf("progress-%s.xlsx", slug(report.StudentName)), nil
}

// WeekCalendar writes the scoped week containing ref as an iCalendar feed.
func (s *ReportService) WeekCalendar(ctx context.Context, w io.Writer, ref time.Time, scope ScheduleScope) error {
	week, err := s.schedule.WeeklySchedule(ctx, ref, scope)
	if err != nil {
		return err
	}
	name := "Tutorhub schedule " + week.Start.Format(model.DateLayout)
	return export.WeekCalendar(w, name, week, s.loc)
}

// slug lowercases name and keeps letters and digits, joining runs of
// anything else with a single hyphen.
func slug(name string) string {
	out := make([]rune, 0, len(name))
	dash := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
			dash = false
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
			dash = false
		default:
			if len(out) > 0 && !dash {
				out = append(out, '-')
				dash = true
			}
		}
	}
	if dash {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return "report"
	}
	return string(out)
}
