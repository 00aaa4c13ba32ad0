package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

type SubjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

// GetAll lists subjects, optionally only those of one standard.
func (r *SubjectRepository) GetAll(ctx context.Context, standardID *int) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT sub.id, sub.name, sub.code, sub.standard_id, st.name, sub.created_at, sub.updated_at
		 FROM subjects sub JOIN standards st ON st.id = sub.standard_id
		 WHERE $1::int IS NULL OR sub.standard_id = $1
		 ORDER BY st.name, sub.name`, standardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []model.Subject{}
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.StandardID, &s.StandardName, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *SubjectRepository) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	s := &model.Subject{}
	err := r.pool.QueryRow(ctx,
		`SELECT sub.id, sub.name, sub.code, sub.standard_id, st.name, sub.created_at, sub.updated_at
		 FROM subjects sub JOIN standards st ON st.id = sub.standard_id
		 WHERE sub.id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Code, &s.StandardID, &s.StandardName, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return s, nil
}

func (r *SubjectRepository) Create(ctx context.Context, s *model.Subject) error {
	return mapError(r.pool.QueryRow(ctx,
		`INSERT INTO subjects (name, code, standard_id) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`,
		s.Name, s.Code, s.StandardID).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt))
}

func (r *SubjectRepository) Update(ctx context.Context, s *model.Subject) error {
	return mapError(r.pool.QueryRow(ctx,
		`UPDATE subjects SET name = $1, code = $2, standard_id = $3, updated_at = NOW()
		 WHERE id = $4 RETURNING created_at, updated_at`,
		s.Name, s.Code, s.StandardID, s.ID).Scan(&s.CreatedAt, &s.UpdatedAt))
}

func (r *SubjectRepository) Delete(ctx context.Context, id int) error {
	return mapDeleteError(expectRows(r.pool.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)))
}
