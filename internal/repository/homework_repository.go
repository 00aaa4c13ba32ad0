package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

const homeworkSelect = `SELECT h.id, h.subject_id, sub.name, h.standard_id, h.tutor_id, u.name,
	h.title, h.description, h.due_date, h.attachment_url, h.created_at, h.updated_at
	FROM homework h
	JOIN subjects sub ON sub.id = h.subject_id
	JOIN users u ON u.id = h.tutor_id`

type HomeworkRepository struct {
	pool *pgxpool.Pool
}

func NewHomeworkRepository(pool *pgxpool.Pool) *HomeworkRepository {
	return &HomeworkRepository{pool: pool}
}

func scanHomework(row pgx.Row) (*model.Homework, error) {
	h := &model.Homework{}
	err := row.Scan(&h.ID, &h.SubjectID, &h.SubjectName, &h.StandardID, &h.TutorID, &h.TutorName,
		&h.Title, &h.Description, &h.DueDate, &h.AttachmentURL, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (r *HomeworkRepository) GetByID(ctx context.Context, id int) (*model.Homework, error) {
	h, err := scanHomework(r.pool.QueryRow(ctx, homeworkSelect+` WHERE h.id = $1`, id))
	return h, mapError(err)
}

// List returns homework newest due date first.
func (r *HomeworkRepository) List(ctx context.Context, f model.ContentFilter) ([]model.Homework, error) {
	rows, err := r.pool.Query(ctx, homeworkSelect+`
		WHERE ($1::int IS NULL OR h.standard_id = $1)
		  AND ($2::int IS NULL OR h.subject_id = $2)
		ORDER BY h.due_date DESC, h.id DESC`,
		f.StandardID, f.SubjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Homework{}
	for rows.Next() {
		h, err := scanHomework(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *h)
	}
	return items, rows.Err()
}

func (r *HomeworkRepository) Create(ctx context.Context, h *model.Homework) error {
	return mapError(r.pool.QueryRow(ctx,
		`INSERT INTO homework (subject_id, standard_id, tutor_id, title, description, due_date, attachment_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		h.SubjectID, h.StandardID, h.TutorID, h.Title, h.Description, h.DueDate, h.AttachmentURL,
	).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt))
}

func (r *HomeworkRepository) Update(ctx context.Context, h *model.Homework) error {
	return mapError(r.pool.QueryRow(ctx,
		`UPDATE homework SET subject_id = $1, standard_id = $2, title = $3, description = $4,
		        due_date = $5, attachment_url = $6, updated_at = NOW()
		 WHERE id = $7
		 RETURNING tutor_id, created_at, updated_at`,
		h.SubjectID, h.StandardID, h.Title, h.Description, h.DueDate, h.AttachmentURL, h.ID,
	).Scan(&h.TutorID, &h.CreatedAt, &h.UpdatedAt))
}

func (r *HomeworkRepository) Delete(ctx context.Context, id int) error {
	return mapDeleteError(expectRows(r.pool.Exec(ctx, `DELETE FROM homework WHERE id = $1`, id)))
}
