package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

const lectureSelect = `SELECT l.id, l.subject_id, sub.name, l.tutor_id, t.name, l.standard_id, st.name,
	l.date, l.start_time, l.end_time, l.description, l.created_at, l.updated_at
	FROM lectures l
	JOIN subjects sub ON sub.id = l.subject_id
	JOIN users t ON t.id = l.tutor_id
	JOIN standards st ON st.id = l.standard_id`

// LectureRepository handles lecture data access. Subject, tutor and
// standard names are joined in every read.
type LectureRepository struct {
	pool *pgxpool.Pool
}

// NewLectureRepository creates a new LectureRepository.
func NewLectureRepository(pool *pgxpool.Pool) *LectureRepository {
	return &LectureRepository{pool: pool}
}

func scanLecture(row pgx.Row) (*model.Lecture, error) {
	l := &model.Lecture{}
	err := row.Scan(&l.ID, &l.SubjectID, &l.SubjectName, &l.TutorID, &l.TutorName, &l.StandardID, &l.StandardName,
		&l.Date, &l.StartTime, &l.EndTime, &l.Description, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// GetByID retrieves a lecture by ID.
func (r *LectureRepository) GetByID(ctx context.Context, id int) (*model.Lecture, error) {
	l, err := scanLecture(r.pool.QueryRow(ctx, lectureSelect+` WHERE l.id = $1`, id))
	return l, mapError(err)
}

// List returns lectures matching the filter ordered by date and start time.
// From and To are inclusive calendar dates.
func (r *LectureRepository) List(ctx context.Context, f model.LectureFilter) ([]model.Lecture, error) {
	query := lectureSelect + ` WHERE 1=1`
	var args []interface{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		query += ` AND ` + cond + ` $` + strconv.Itoa(len(args))
	}

	if f.StandardID != nil {
		add(`l.standard_id =`, *f.StandardID)
	}
	if f.TutorID != nil {
		add(`l.tutor_id =`, *f.TutorID)
	}
	if f.SubjectID != nil {
		add(`l.subject_id =`, *f.SubjectID)
	}
	if f.From != nil {
		add(`l.date >=`, *f.From)
	}
	if f.To != nil {
		add(`l.date <=`, *f.To)
	}
	query += ` ORDER BY l.date, l.start_time, l.id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lectures := []model.Lecture{}
	for rows.Next() {
		l, err := scanLecture(rows)
		if err != nil {
			return nil, err
		}
		lectures = append(lectures, *l)
	}
	return lectures, rows.Err()
}

// Create inserts a new lecture.
func (r *LectureRepository) Create(ctx context.Context, l *model.Lecture) error {
	return mapError(r.pool.QueryRow(ctx,
		`INSERT INTO lectures (subject_id, tutor_id, standard_id, date, start_time, end_time, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		l.SubjectID, l.TutorID, l.StandardID, l.Date, l.StartTime, l.EndTime, l.Description,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt))
}

// Update modifies a lecture.
func (r *LectureRepository) Update(ctx context.Context, l *model.Lecture) error {
	return mapError(r.pool.QueryRow(ctx,
		`UPDATE lectures SET subject_id = $1, tutor_id = $2, standard_id = $3, date = $4,
		        start_time = $5, end_time = $6, description = $7, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8
		 RETURNING created_at, updated_at`,
		l.SubjectID, l.TutorID, l.StandardID, l.Date, l.StartTime, l.EndTime, l.Description, l.ID,
	).Scan(&l.CreatedAt, &l.UpdatedAt))
}

// Delete removes a lecture. Attendance and marks cascade.
func (r *LectureRepository) Delete(ctx context.Context, id int) error {
	return mapDeleteError(expectRows(r.pool.Exec(ctx, `DELETE FROM lectures WHERE id = $1`, id)))
}
