package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

const markSelect = `SELECT m.id, m.student_id, u.name, m.subject_id, sub.name, m.lecture_id, l.date,
	m.marks, m.total_marks, m.description, m.updated_by, m.updated_at
	FROM marks m
	JOIN users u ON u.id = m.student_id
	JOIN subjects sub ON sub.id = m.subject_id
	JOIN lectures l ON l.id = m.lecture_id`

// MarkRepository handles test marks.
type MarkRepository struct {
	pool *pgxpool.Pool
}

// NewMarkRepository creates a new MarkRepository.
func NewMarkRepository(pool *pgxpool.Pool) *MarkRepository {
	return &MarkRepository{pool: pool}
}

func scanMarks(rows pgx.Rows) ([]model.Mark, error) {
	defer rows.Close()
	marks := []model.Mark{}
	for rows.Next() {
		var m model.Mark
		if err := rows.Scan(&m.ID, &m.StudentID, &m.StudentName, &m.SubjectID, &m.SubjectName, &m.LectureID, &m.LectureDate,
			&m.Marks, &m.TotalMarks, &m.Description, &m.UpdatedBy, &m.UpdatedAt); err != nil {
			return nil, err
		}
		marks = append(marks, m)
	}
	return marks, rows.Err()
}

// Upsert writes a student's marks for a lecture, replacing earlier marks.
func (r *MarkRepository) Upsert(ctx context.Context, m *model.Mark) error {
	return mapError(r.pool.QueryRow(ctx,
		`INSERT INTO marks (student_id, subject_id, lecture_id, marks, total_marks, description, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (lecture_id, student_id)
		 DO UPDATE SET marks = EXCLUDED.marks, total_marks = EXCLUDED.total_marks,
		               description = EXCLUDED.description, updated_by = EXCLUDED.updated_by,
		               updated_at = NOW()
		 RETURNING id, updated_at`,
		m.StudentID, m.SubjectID, m.LectureID, m.Marks, m.TotalMarks, m.Description, m.UpdatedBy,
	).Scan(&m.ID, &m.UpdatedAt))
}

// ListByLecture returns the marks of one test lecture.
func (r *MarkRepository) ListByLecture(ctx context.Context, lectureID int) ([]model.Mark, error) {
	rows, err := r.pool.Query(ctx, markSelect+` WHERE m.lecture_id = $1 ORDER BY u.name, m.student_id`, lectureID)
	if err != nil {
		return nil, err
	}
	return scanMarks(rows)
}

// ListByStudent returns a student's marks, optionally for one subject, oldest first.
func (r *MarkRepository) ListByStudent(ctx context.Context, studentID int, subjectID *int) ([]model.Mark, error) {
	rows, err := r.pool.Query(ctx,
		markSelect+` WHERE m.student_id = $1 AND ($2::int IS NULL OR m.subject_id = $2) ORDER BY l.date, l.start_time, m.id`,
		studentID, subjectID)
	if err != nil {
		return nil, err
	}
	return scanMarks(rows)
}

// Delete removes one mark record.
func (r *MarkRepository) Delete(ctx context.Context, id int) error {
	return mapDeleteError(expectRows(r.pool.Exec(ctx, `DELETE FROM marks WHERE id = $1`, id)))
}
