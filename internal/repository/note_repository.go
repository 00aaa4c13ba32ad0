package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

const noteSelect = `SELECT n.id, n.subject_id, sub.name, n.standard_id, n.uploaded_by, u.name,
	n.title, n.file_url, n.created_at
	FROM notes n
	JOIN subjects sub ON sub.id = n.subject_id
	JOIN users u ON u.id = n.uploaded_by`

type NoteRepository struct {
	pool *pgxpool.Pool
}

func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

func scanNote(row pgx.Row) (*model.Note, error) {
	n := &model.Note{}
	err := row.Scan(&n.ID, &n.SubjectID, &n.SubjectName, &n.StandardID, &n.UploadedBy, &n.UploadedByName,
		&n.Title, &n.FileURL, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id int) (*model.Note, error) {
	n, err := scanNote(r.pool.QueryRow(ctx, noteSelect+` WHERE n.id = $1`, id))
	return n, mapError(err)
}

func (r *NoteRepository) List(ctx context.Context, f model.ContentFilter) ([]model.Note, error) {
	rows, err := r.pool.Query(ctx, noteSelect+`
		WHERE ($1::int IS NULL OR n.standard_id = $1)
		  AND ($2::int IS NULL OR n.subject_id = $2)
		ORDER BY n.created_at DESC, n.id DESC`,
		f.StandardID, f.SubjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func (r *NoteRepository) Create(ctx context.Context, n *model.Note) error {
	return mapError(r.pool.QueryRow(ctx,
		`INSERT INTO notes (subject_id, standard_id, uploaded_by, title, file_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		n.SubjectID, n.StandardID, n.UploadedBy, n.Title, n.FileURL,
	).Scan(&n.ID, &n.CreatedAt))
}

func (r *NoteRepository) Update(ctx context.Context, n *model.Note) error {
	return mapError(r.pool.QueryRow(ctx,
		`UPDATE notes SET subject_id = $1, standard_id = $2, title = $3, file_url = $4
		 WHERE id = $5
		 RETURNING uploaded_by, created_at`,
		n.SubjectID, n.StandardID, n.Title, n.FileURL, n.ID,
	).Scan(&n.UploadedBy, &n.CreatedAt))
}

func (r *NoteRepository) Delete(ctx context.Context, id int) error {
	return mapDeleteError(expectRows(r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)))
}
