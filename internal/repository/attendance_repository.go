package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

// AttendanceRepository handles attendance records.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Upsert writes one status, replacing any earlier status for the same
// lecture and student.
func (r *AttendanceRepository) Upsert(ctx context.Context, a *model.Attendance) error {
	return mapError(r.pool.QueryRow(ctx,
		`INSERT INTO attendance (lecture_id, student_id, status)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (lecture_id, student_id)
		 DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		a.LectureID, a.StudentID, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt))
}

// UpsertBatch writes many statuses in one statement. Each (lecture, student)
// pair must appear at most once in the batch.
func (r *AttendanceRepository) UpsertBatch(ctx context.Context, lectureIDs, studentIDs []int, statuses []string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO attendance (lecture_id, student_id, status)
		SELECT u.lecture_id, u.student_id, u.status
		FROM UNNEST(
			$1::int[],
			$2::int[],
			$3::text[]
		) AS u (lecture_id, student_id, status)
		ON CONFLICT (lecture_id, student_id)
		DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()`,
		lectureIDs, studentIDs, statuses,
	)
	if err != nil {
		return 0, mapError(err)
	}
	return tag.RowsAffected(), nil
}

// ListByLecture returns all records of a lecture with student names.
func (r *AttendanceRepository) ListByLecture(ctx context.Context, lectureID int) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.lecture_id, a.student_id, u.name, a.status, a.created_at, a.updated_at
		 FROM attendance a JOIN users u ON u.id = a.student_id
		 WHERE a.lecture_id = $1
		 ORDER BY u.name, a.student_id`, lectureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.Attendance{}
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.LectureID, &a.StudentID, &a.StudentName, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// Exists reports whether a status has been recorded for the pair.
func (r *AttendanceRepository) Exists(ctx context.Context, lectureID, studentID int) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM attendance WHERE lecture_id = $1 AND student_id = $2)`,
		lectureID, studentID,
	).Scan(&ok)
	return ok, err
}

// Delete removes a single record.
func (r *AttendanceRepository) Delete(ctx context.Context, id int) error {
	return mapDeleteError(expectRows(r.pool.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)))
}

// ForStudent returns every lecture of the standard dated on or before upTo,
// joined with the student's status for it. The status is empty when
// attendance was not marked.
func (r *AttendanceRepository) ForStudent(ctx context.Context, studentID, standardID int, subjectID *int, upTo time.Time) ([]model.LectureAttendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT l.id, l.subject_id, sub.name, l.date, l.description, COALESCE(a.status, '')
		 FROM lectures l
		 JOIN subjects sub ON sub.id = l.subject_id
		 LEFT JOIN attendance a ON a.lecture_id = l.id AND a.student_id = $1
		 WHERE l.standard_id = $2
		   AND l.date <= $3
		   AND ($4::int IS NULL OR l.subject_id = $4)
		 ORDER BY l.date, l.start_time, l.id`,
		studentID, standardID, upTo, subjectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.LectureAttendance{}
	for rows.Next() {
		var la model.LectureAttendance
		if err := rows.Scan(&la.LectureID, &la.SubjectID, &la.SubjectName, &la.Date, &la.Description, &la.Status); err != nil {
			return nil, err
		}
		out = append(out, la)
	}
	return out, rows.Err()
}

// Register returns the statuses of every student for the given lectures,
// keyed by lecture then student.
func (r *AttendanceRepository) Register(ctx context.Context, lectureIDs []int) (map[int]map[int]model.AttendanceStatus, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT lecture_id, student_id, status FROM attendance WHERE lecture_id = ANY($1::int[])`, lectureIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	register := make(map[int]map[int]model.AttendanceStatus)
	for rows.Next() {
		var lectureID, studentID int
		var status model.AttendanceStatus
		if err := rows.Scan(&lectureID, &studentID, &status); err != nil {
			return nil, err
		}
		if register[lectureID] == nil {
			register[lectureID] = make(map[int]model.AttendanceStatus)
		}
		register[lectureID][studentID] = status
	}
	return register, rows.Err()
}
