package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/progress"
	"github.com/stemsi/tutorhub-backend/internal/timezone"
)

type lectureGetter interface {
	GetByID(ctx context.Context, id int) (*model.Lecture, error)
}

type attendanceStore interface {
	Upsert(ctx context.Context, a *model.Attendance) error
	ListByLecture(ctx context.Context, lectureID int) ([]model.Attendance, error)
	Delete(ctx context.Context, id int) error
	ForStudent(ctx context.Context, studentID, standardID int, subjectID *int, upTo time.Time) ([]model.LectureAttendance, error)
}

type studentDirectory interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
	StudentIDsInStandard(ctx context.Context, standardID int, ids []int) (map[int]bool, error)
}

type attendanceQueue interface {
	Enqueue(ctx context.Context, jobs []model.AttendanceJob) error
}

// AttendanceReport is a student's attendance overall and per subject.
type AttendanceReport struct {
	StudentID   int                          `json:"student_id"`
	StudentName string                       `json:"student_name"`
	AsOf        string                       `json:"as_of"`
	Overall     progress.AttendanceSummary   `json:"overall"`
	Subjects    []progress.SubjectAttendance `json:"subjects"`
	Lectures    []model.LectureAttendance    `json:"lectures"`
}

// AttendanceService records attendance and reports statistics.
type AttendanceService struct {
	lectures   lectureGetter
	attendance attendanceStore
	students   studentDirectory
	queue      attendanceQueue
	today      func() time.Time
	log        zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService. loc resolves "today"
// when counting lectures in scope.
func NewAttendanceService(
	lectures lectureGetter,
	attendance attendanceStore,
	students studentDirectory,
	queue attendanceQueue,
	loc *time.Location,
	log zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		lectures:   lectures,
		attendance: attendance,
		students:   students,
		queue:      queue,
		today:      func() time.Time { return timezone.Today(loc) },
		log:        log.With().Str("component", "attendance_service").Logger(),
	}
}

// requireStudent loads a student and checks they belong to standardID.
// A nil standardID skips the enrolment check.
func requireStudent(ctx context.Context, users userGetter, studentID int, standardID *int) (*model.User, error) {
	u, err := users.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if u.Role != model.RoleStudent {
		return nil, ErrNotAStudent
	}
	if u.StandardID == nil {
		return nil, ErrStandardRequired
	}
	if standardID != nil && *u.StandardID != *standardID {
		return nil, ErrStudentNotEnrolled
	}
	return u, nil
}

// Mark records one student's status for a lecture, replacing any earlier status.
func (s *AttendanceService) Mark(ctx context.Context, lectureID int, req *model.MarkAttendanceRequest) (*model.Attendance, error) {
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	lecture, err := s.lectures.GetByID(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	student, err := requireStudent(ctx, s.students, req.StudentID, &lecture.StandardID)
	if err != nil {
		return nil, err
	}

	a := &model.Attendance{LectureID: lectureID, StudentID: student.ID, StudentName: student.Name, Status: req.Status}
	if err := s.attendance.Upsert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// MarkBulk validates a whole class register and queues it for the
// attendance worker. Nothing is queued unless every entry is valid.
func (s *AttendanceService) MarkBulk(ctx context.Context, lectureID int, req *model.BulkAttendanceRequest) (int, error) {
	lecture, err := s.lectures.GetByID(ctx, lectureID)
	if err != nil {
		return 0, err
	}

	seen := make(map[int]bool, len(req.Entries))
	ids := make([]int, 0, len(req.Entries))
	jobs := make([]model.AttendanceJob, 0, len(req.Entries))
	for _, e := range req.Entries {
		if !e.Status.Valid() {
			return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, e.Status)
		}
		if seen[e.StudentID] {
			return 0, fmt.Errorf("%w: %d", ErrDuplicateStudent, e.StudentID)
		}
		seen[e.StudentID] = true
		ids = append(ids, e.StudentID)
		jobs = append(jobs, model.AttendanceJob{LectureID: lectureID, StudentID: e.StudentID, Status: e.Status})
	}

	enrolled, err := s.students.StudentIDsInStandard(ctx, lecture.StandardID, ids)
	if err != nil {
		return 0, fmt.Errorf("check enrolment: %w", err)
	}
	for _, id := range ids {
		if !enrolled[id] {
			return 0, fmt.Errorf("%w: %d", ErrStudentNotEnrolled, id)
		}
	}

	if err := s.queue.Enqueue(ctx, jobs); err != nil {
		return 0, fmt.Errorf("enqueue attendance: %w", err)
	}

	s.log.Info().Int("lecture_id", lectureID).Int("entries", len(jobs)).Msg("Bulk attendance queued")
	return len(jobs), nil
}

// ListByLecture returns the lecture's register.
func (s *AttendanceService) ListByLecture(ctx context.Context, lectureID int) ([]model.Attendance, error) {
	if _, err := s.lectures.GetByID(ctx, lectureID); err != nil {
		return nil, err
	}
	return s.attendance.ListByLecture(ctx, lectureID)
}

// Delete removes one attendance record.
func (s *AttendanceService) Delete(ctx context.Context, id int) error {
	return s.attendance.Delete(ctx, id)
}

// Summary reports a student's attendance over every lecture of their
// standard held up to today, optionally for one subject.
func (s *AttendanceService) Summary(ctx context.Context, studentID int, subjectID *int) (*AttendanceReport, error) {
	student, err := requireStudent(ctx, s.students, studentID, nil)
	if err != nil {
		return nil, err
	}

	today := s.today()
	rows, err := s.attendance.ForStudent(ctx, student.ID, *student.StandardID, subjectID, today)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}

	return &AttendanceReport{
		StudentID:   student.ID,
		StudentName: student.Name,
		AsOf:        today.Format(model.DateLayout),
		Overall:     progress.SummarizeLectures(rows),
		Subjects:    progress.SummarizeBySubject(rows),
		Lectures:    rows,
	}, nil
}
