package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("user not found")

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, username, passwordHash string, role Role) (*User, error) {
	const q = `
INSERT INTO users (username, password_hash, role)
VALUES ($1, $2, $3)
RETURNING id, username, password_hash, role, created_at
`
	u := &User{}
	if err := r.db.QueryRow(ctx, q, username, passwordHash, string(role)).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*User, error) {
	const q = `
SELECT id, username, password_hash, role, created_at
FROM users
WHERE id = $1
`
	return r.scanOne(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	const q = `
SELECT id, username, password_hash, role, created_at
FROM users
WHERE username = $1
`
	return r.scanOne(r.db.QueryRow(ctx, q, username))
}

func (r *Repository) List(ctx context.Context) ([]User, error) {
	const q = `
SELECT id, username, password_hash, role, created_at
FROM users
ORDER BY id
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Delete removes the user and reports whether a row existed.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM users WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) UpdatePassword(ctx context.Context, username, passwordHash string) (bool, error) {
	const q = `UPDATE users SET password_hash = $1 WHERE username = $2`
	tag, err := r.db.Exec(ctx, q, passwordHash, username)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// EnsureAdmin creates the bootstrap admin account when missing. An existing
// user with that name keeps its password but is promoted to admin.
func (r *Repository) EnsureAdmin(ctx context.Context, username, passwordHash string) error {
	const q = `
INSERT INTO users (username, password_hash, role)
VALUES ($1, $2, 'admin')
ON CONFLICT (username) DO UPDATE SET role = 'admin'
`
	_, err := r.db.Exec(ctx, q, username, passwordHash)
	return err
}

func (r *Repository) scanOne(row pgx.Row) (*User, error) {
	u := &User{}
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
