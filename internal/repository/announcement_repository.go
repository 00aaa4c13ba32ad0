package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

type AnnouncementRepository struct {
	pool *pgxpool.Pool
}

func NewAnnouncementRepository(pool *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{pool: pool}
}

func (r *AnnouncementRepository) GetByID(ctx context.Context, id int) (*model.Announcement, error) {
	a := &model.Announcement{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, body, audience, standard_id, created_by, created_at FROM announcements WHERE id = $1`, id,
	).Scan(&a.ID, &a.Title, &a.Body, &a.Audience, &a.StandardID, &a.CreatedBy, &a.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

// ListVisible returns the newest announcements a reader may see. The
// predicate mirrors model.Announcement.VisibleTo.
func (r *AnnouncementRepository) ListVisible(ctx context.Context, role model.Role, standardID *int, limit, offset int) ([]model.Announcement, int, error) {
	const where = ` WHERE $1 = 'Admin'
		OR ((audience = 'All' OR audience = $1)
		    AND ($1 <> 'Student' OR standard_id IS NULL OR standard_id = $2::int))`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM announcements`+where, string(role), standardID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, title, body, audience, standard_id, created_by, created_at FROM announcements`+where+
			` ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`,
		string(role), standardID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []model.Announcement{}
	for rows.Next() {
		var a model.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Audience, &a.StandardID, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *model.Announcement) error {
	return mapError(r.pool.QueryRow(ctx,
		`INSERT INTO announcements (title, body, audience, standard_id, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		a.Title, a.Body, a.Audience, a.StandardID, a.CreatedBy,
	).Scan(&a.ID, &a.CreatedAt))
}

func (r *AnnouncementRepository) Update(ctx context.Context, a *model.Announcement) error {
	return mapError(r.pool.QueryRow(ctx,
		`UPDATE announcements SET title = $1, body = $2, audience = $3, standard_id = $4
		 WHERE id = $5
		 RETURNING created_by, created_at`,
		a.Title, a.Body, a.Audience, a.StandardID, a.ID,
	).Scan(&a.CreatedBy, &a.CreatedAt))
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id int) error {
	return mapDeleteError(expectRows(r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)))
}
