package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/progress"
)

type markStore interface {
	Upsert(ctx context.Context, m *model.Mark) error
	ListByLecture(ctx context.Context, lectureID int) ([]model.Mark, error)
	ListByStudent(ctx context.Context, studentID int, subjectID *int) ([]model.Mark, error)
	Delete(ctx context.Context, id int) error
}

type attendanceChecker interface {
	Exists(ctx context.Context, lectureID, studentID int) (bool, error)
}

// ProgressReport is a student's marks overall and per subject.
type ProgressReport struct {
	StudentID   int                     `json:"student_id"`
	StudentName string                  `json:"student_name"`
	Overall     progress.MarksSummary   `json:"overall"`
	Subjects    []progress.SubjectMarks `json:"subjects"`
	Marks       []model.Mark            `json:"marks"`
}

// MarkService records test marks. Marks are only accepted for test
// lectures and only once the student's attendance has been recorded.
type MarkService struct {
	lectures   lectureGetter
	marks      markStore
	attendance attendanceChecker
	users      userGetter
	log        zerolog.Logger
}

// NewMarkService creates a new MarkService.
func NewMarkService(lectures lectureGetter, marks markStore, attendance attendanceChecker, users userGetter, log zerolog.Logger) *MarkService {
	return &MarkService{
		lectures:   lectures,
		marks:      marks,
		attendance: attendance,
		users:      users,
		log:        log.With().Str("component", "mark_service").Logger(),
	}
}

// Record writes a student's marks for a test lecture.
func (s *MarkService) Record(ctx context.Context, lectureID int, req *model.MarkRequest, updatedBy int) (*model.Mark, error) {
	lecture, err := s.lectures.GetByID(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	if !lecture.IsTest() {
		return nil, ErrNotTestLecture
	}
	if req.Marks < 0 || req.TotalMarks <= 0 {
		return nil, ErrInvalidMarks
	}
	if req.Marks > req.TotalMarks {
		return nil, ErrMarksExceedTotal
	}

	student, err := requireStudent(ctx, s.users, req.StudentID, &lecture.StandardID)
	if err != nil {
		return nil, err
	}

	attended, err := s.attendance.Exists(ctx, lectureID, student.ID)
	if err != nil {
		return nil, fmt.Errorf("check attendance: %w", err)
	}
	if !attended {
		return nil, ErrAttendanceRequired
	}

	m := &model.Mark{
		StudentID:   student.ID,
		StudentName: student.Name,
		SubjectID:   lecture.SubjectID,
		SubjectName: lecture.SubjectName,
		LectureID:   lecture.ID,
		LectureDate: lecture.Date,
		Marks:       req.Marks,
		TotalMarks:  req.TotalMarks,
		Description: req.Description,
		UpdatedBy:   updatedBy,
	}
	if err := s.marks.Upsert(ctx, m); err != nil {
		return nil, err
	}

	s.log.Info().Int("lecture_id", lectureID).Int("student_id", student.ID).Int("updated_by", updatedBy).Msg("Marks recorded")
	return m, nil
}

// ListByLecture returns the marks of one lecture.
func (s *MarkService) ListByLecture(ctx context.Context, lectureID int) ([]model.Mark, error) {
	if _, err := s.lectures.GetByID(ctx, lectureID); err != nil {
		return nil, err
	}
	return s.marks.ListByLecture(ctx, lectureID)
}

// Delete removes one mark record.
func (s *MarkService) Delete(ctx context.Context, id int) error {
	return s.marks.Delete(ctx, id)
}

// Progress summarizes a student's marks, optionally for one subject.
func (s *MarkService) Progress(ctx context.Context, studentID int, subjectID *int) (*ProgressReport, error) {
	student, err := requireStudent(ctx, s.users, studentID, nil)
	if err != nil {
		return nil, err
	}

	marks, err := s.marks.ListByStudent(ctx, student.ID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("load marks: %w", err)
	}
	if marks == nil {
		marks = []model.Mark{}
	}

	return &ProgressReport{
		StudentID:   student.ID,
		StudentName: student.Name,
		Overall:     progress.SummarizeMarks(marks),
		Subjects:    progress.SummarizeMarksBySubject(marks),
		Marks:       marks,
	}, nil
}
