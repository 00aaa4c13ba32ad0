package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

const userColumns = `u.id, u.name, u.email, u.phone, u.role, u.standard_id, s.name,
	u.password_hash, u.created_at, u.updated_at`

const userFrom = ` FROM users u LEFT JOIN standards s ON s.id = u.standard_id`

// UserRepository handles account data access for every role.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.StandardID, &u.StandardName,
		&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+userFrom+` WHERE u.id = $1`, id))
	return u, mapError(err)
}

// GetByEmail retrieves a user by their unique, case-insensitive email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+userFrom+` WHERE LOWER(u.email) = LOWER($1)`, email))
	return u, mapError(err)
}

func userWhere(f model.UserFilter) (string, []interface{}) {
	clause := ` WHERE 1=1`
	var args []interface{}
	if f.Role != nil {
		args = append(args, *f.Role)
		clause += ` AND u.role = $` + strconv.Itoa(len(args))
	}
	if f.StandardID != nil {
		args = append(args, *f.StandardID)
		clause += ` AND u.standard_id = $` + strconv.Itoa(len(args))
	}
	return clause, args
}

// ListPaginated retrieves users matching the filter ordered by name.
func (r *UserRepository) ListPaginated(ctx context.Context, f model.UserFilter, limit, offset int) ([]model.User, int, error) {
	where, args := userWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+userFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + userFrom + where +
		` ORDER BY u.name, u.id LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

// ListStudents returns every student of a standard ordered by name.
func (r *UserRepository) ListStudents(ctx context.Context, standardID int) ([]model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+userFrom+` WHERE u.role = $1 AND u.standard_id = $2 ORDER BY u.name, u.id`,
		model.RoleStudent, standardID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *u)
	}
	return students, rows.Err()
}

// StudentIDsInStandard returns the subset of ids that are students of the standard.
func (r *UserRepository) StudentIDsInStandard(ctx context.Context, standardID int, ids []int) (map[int]bool, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM users WHERE role = $1 AND standard_id = $2 AND id = ANY($3::int[])`,
		model.RoleStudent, standardID, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[int]bool, len(ids))
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = true
	}
	return found, rows.Err()
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, phone, role, standard_id, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.Phone, u.Role, u.StandardID, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return mapError(err)
}

// Update modifies a user's profile. The password hash is only replaced when non-empty.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE users SET name = $1, email = $2, phone = $3, role = $4, standard_id = $5,
		        password_hash = COALESCE(NULLIF($6, ''), password_hash), updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7
		 RETURNING created_at, updated_at`,
		u.Name, u.Email, u.Phone, u.Role, u.StandardID, u.PasswordHash, u.ID,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	return mapError(err)
}

// Delete removes a user.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	return mapDeleteError(expectRows(r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)))
}
