package modules

import (
	"context"
	"database/sql"
	"errors"

	"pathific-platform/pkg/utils"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepo stores modules, items and completions in Postgres via
// database/sql (pgx stdlib).
//
// Schema expectations:
// - modules(id, court_id, title, summary, order_index, created_at) with a
//   unique constraint on (court_id, order_index); violations surface as
//   SQLSTATE 23505 and translate to ErrOrderTaken.
// - module_items(id, module_id, title, url, position) with a unique
//   constraint on (module_id, position); 23505 → ErrPositionTaken.
// - completions(user_email, module_id, completed_at) with primary key
//   (user_email, module_id); inserts use ON CONFLICT DO NOTHING for
//   idempotency.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) ListByCourt(ctx context.Context, courtID string) ([]Module, error) {
	const q = `
		SELECT id, court_id, title, COALESCE(summary, ''), order_index, created_at
		FROM modules
		WHERE court_id = $1
		ORDER BY order_index ASC`

	rows, err := r.db.QueryContext(ctx, q, courtID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Module, 0)
	for rows.Next() {
		var m Module
		if err := rows.Scan(&m.ID, &m.CourtID, &m.Title, &m.Summary, &m.OrderIndex, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (Module, error) {
	const q = `
		SELECT id, court_id, title, COALESCE(summary, ''), order_index, created_at
		FROM modules
		WHERE id = $1`

	var m Module
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.CourtID, &m.Title, &m.Summary, &m.OrderIndex, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Module{}, ErrNotFound
	}
	if err != nil {
		return Module{}, err
	}
	return m, nil
}

func (r *PostgresRepo) Create(ctx context.Context, m Module) error {
	const q = `
		INSERT INTO modules (id, court_id, title, summary, order_index, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`

	_, err := r.db.ExecContext(ctx, q, m.ID, m.CourtID, m.Title, m.Summary, m.OrderIndex, m.CreatedAt)
	if isUniqueViolation(err) {
		return ErrOrderTaken
	}
	return err
}

func (r *PostgresRepo) Update(ctx context.Context, m Module) error {
	return utils.WithTx(ctx, r.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
			UPDATE modules
			SET title = $2, summary = NULLIF($3, ''), order_index = $4
			WHERE id = $1`

		res, err := tx.ExecContext(ctx, q, m.ID, m.Title, m.Summary, m.OrderIndex)
		if isUniqueViolation(err) {
			return ErrOrderTaken
		}
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM modules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) ListItems(ctx context.Context, moduleID string) ([]ModuleItem, error) {
	const q = `
		SELECT id, module_id, title, url, position
		FROM module_items
		WHERE module_id = $1
		ORDER BY position ASC`

	rows, err := r.db.QueryContext(ctx, q, moduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ModuleItem, 0)
	for rows.Next() {
		var it ModuleItem
		if err := rows.Scan(&it.ID, &it.ModuleID, &it.Title, &it.URL, &it.Position); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetItem(ctx context.Context, id string) (ModuleItem, error) {
	const q = `
		SELECT id, module_id, title, url, position
		FROM module_items
		WHERE id = $1`

	var it ModuleItem
	err := r.db.QueryRowContext(ctx, q, id).Scan(&it.ID, &it.ModuleID, &it.Title, &it.URL, &it.Position)
	if errors.Is(err, sql.ErrNoRows) {
		return ModuleItem{}, ErrNotFound
	}
	if err != nil {
		return ModuleItem{}, err
	}
	return it, nil
}

func (r *PostgresRepo) CreateItem(ctx context.Context, it ModuleItem) error {
	const q = `
		INSERT INTO module_items (id, module_id, title, url, position)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, q, it.ID, it.ModuleID, it.Title, it.URL, it.Position)
	if isUniqueViolation(err) {
		return ErrPositionTaken
	}
	return err
}

func (r *PostgresRepo) UpdateItem(ctx context.Context, it ModuleItem) error {
	return utils.WithTx(ctx, r.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		const q = `
			UPDATE module_items
			SET title = $2, url = $3, position = $4
			WHERE id = $1`

		res, err := tx.ExecContext(ctx, q, it.ID, it.Title, it.URL, it.Position)
		if isUniqueViolation(err) {
			return ErrPositionTaken
		}
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *PostgresRepo) DeleteItem(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM module_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) MarkComplete(ctx context.Context, c Completion) error {
	const q = `
		INSERT INTO completions (user_email, module_id, completed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_email, module_id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, q, c.UserEmail, c.ModuleID, c.CompletedAt)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
