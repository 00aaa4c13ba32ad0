package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

type StandardRepository struct {
	pool *pgxpool.Pool
}

func NewStandardRepository(pool *pgxpool.Pool) *StandardRepository {
	return &StandardRepository{pool: pool}
}

func (r *StandardRepository) GetAll(ctx context.Context) ([]model.Standard, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, code, created_at, updated_at FROM standards ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standards := []model.Standard{}
	for rows.Next() {
		var s model.Standard
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		standards = append(standards, s)
	}
	return standards, rows.Err()
}

func (r *StandardRepository) GetByID(ctx context.Context, id int) (*model.Standard, error) {
	s := &model.Standard{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, code, created_at, updated_at FROM standards WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Code, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return s, nil
}

func (r *StandardRepository) Create(ctx context.Context, s *model.Standard) error {
	return mapError(r.pool.QueryRow(ctx,
		`INSERT INTO standards (name, code) VALUES ($1, $2) RETURNING id, created_at, updated_at`,
		s.Name, s.Code).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt))
}

func (r *StandardRepository) Update(ctx context.Context, s *model.Standard) error {
	return mapError(r.pool.QueryRow(ctx,
		`UPDATE standards SET name = $1, code = $2, updated_at = NOW() WHERE id = $3 RETURNING created_at, updated_at`,
		s.Name, s.Code, s.ID).Scan(&s.CreatedAt, &s.UpdatedAt))
}

func (r *StandardRepository) Delete(ctx context.Context, id int) error {
	return mapDeleteError(expectRows(r.pool.Exec(ctx, `DELETE FROM standards WHERE id = $1`, id)))
}
