package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

type FeedbackRepository struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *model.Feedback) error {
	return mapError(r.pool.QueryRow(ctx,
		`INSERT INTO feedback (from_user_id, tutor_id, message, rating)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		f.FromUserID, f.TutorID, f.Message, f.Rating,
	).Scan(&f.ID, &f.CreatedAt))
}

// List returns feedback newest first, optionally only about one tutor.
func (r *FeedbackRepository) List(ctx context.Context, tutorID *int, limit, offset int) ([]model.Feedback, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM feedback WHERE $1::int IS NULL OR tutor_id = $1`, tutorID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT f.id, f.from_user_id, fu.name, f.tutor_id, t.name, f.message, f.rating, f.created_at
		 FROM feedback f
		 JOIN users fu ON fu.id = f.from_user_id
		 LEFT JOIN users t ON t.id = f.tutor_id
		 WHERE $1::int IS NULL OR f.tutor_id = $1
		 ORDER BY f.created_at DESC, f.id DESC
		 LIMIT $2 OFFSET $3`,
		tutorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []model.Feedback{}
	for rows.Next() {
		var f model.Feedback
		if err := rows.Scan(&f.ID, &f.FromUserID, &f.FromName, &f.TutorID, &f.TutorName, &f.Message, &f.Rating, &f.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, f)
	}
	return items, total, rows.Err()
}
