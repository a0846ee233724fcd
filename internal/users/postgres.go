package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepo stores users in Postgres via database/sql (pgx stdlib).
//
// Schema expectations:
// - users(id, external_id, name, email, password_hash, city, level, role, created_at)
// - unique index on lower(email); violations surface as SQLSTATE 23505 and
//   are translated to ErrDuplicateEmail so a registration race maps back to
//   the same outcome as the pre-insert check.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) FindByEmail(ctx context.Context, email string) (User, bool, error) {
	const q = `
		SELECT id, COALESCE(external_id, ''), name, email, password_hash,
		       COALESCE(city, ''), COALESCE(level, ''), role, created_at
		FROM users
		WHERE lower(email) = $1`

	var u User
	err := r.db.QueryRowContext(ctx, q, NormalizeEmail(email)).Scan(
		&u.ID, &u.ExternalID, &u.Name, &u.Email, &u.PasswordHash,
		&u.City, &u.Level, &u.Role, &u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

func (r *PostgresRepo) Insert(ctx context.Context, u User) error {
	const q = `
		INSERT INTO users (id, external_id, name, email, password_hash, city, level, role, created_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9)`

	_, err := r.db.ExecContext(ctx, q,
		u.ID, u.ExternalID, u.Name, NormalizeEmail(u.Email), u.PasswordHash,
		u.City, u.Level, u.Role, u.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
