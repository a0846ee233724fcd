package content

import (
	"context"
	"database/sql"
	"errors"
)

// badgeCatalog is the static badge set. Badges are part of the product
// definition, not user data, so they live in code.
var badgeCatalog = []Badge{
	{Code: "CURATOR", Label: "Curator", Description: "Hosts and maintains a court"},
	{Code: "WEEKLY_WINNER", Label: "Weekly Winner", Description: "Top court this week"},
}

// PostgresRepo stores content in Postgres via database/sql (pgx stdlib).
//
// Schema expectations:
// - courts(id, name, slug, summary, category, created_at)
// - court_weekly_winners(court_id, name, week_start, week_end, reason),
//   most recent week first
// - learn_items(id, title, description, link, media_type, media_url)
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) ListCourts(ctx context.Context) ([]Court, error) {
	const q = `
		SELECT id, name, slug, COALESCE(summary, ''), COALESCE(category, ''), created_at
		FROM courts
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Court, 0)
	for rows.Next() {
		var c Court
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Summary, &c.Category, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) WeeklyWinner(ctx context.Context) (WeeklyWinner, bool, error) {
	const q = `
		SELECT court_id, name, week_start, week_end, COALESCE(reason, '')
		FROM court_weekly_winners
		ORDER BY week_start DESC
		LIMIT 1`

	var w WeeklyWinner
	err := r.db.QueryRowContext(ctx, q).Scan(&w.CourtID, &w.Name, &w.WeekStart, &w.WeekEnd, &w.Reason)
	if errors.Is(err, sql.ErrNoRows) {
		return WeeklyWinner{}, false, nil
	}
	if err != nil {
		return WeeklyWinner{}, false, err
	}
	return w, true, nil
}

func (r *PostgresRepo) ListBadges(ctx context.Context) ([]Badge, error) {
	_ = ctx
	out := make([]Badge, len(badgeCatalog))
	copy(out, badgeCatalog)
	return out, nil
}

func (r *PostgresRepo) ListLearnItems(ctx context.Context) ([]LearnItem, error) {
	const q = `
		SELECT title, COALESCE(description, ''), COALESCE(link, ''),
		       COALESCE(media_type, ''), COALESCE(media_url, '')
		FROM learn_items
		ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LearnItem, 0)
	for rows.Next() {
		var it LearnItem
		if err := rows.Scan(&it.Title, &it.Description, &it.Link, &it.MediaType, &it.MediaURL); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) CreateCourt(ctx context.Context, c Court) error {
	const q = `
		INSERT INTO courts (id, name, slug, summary, category, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6)`

	_, err := r.db.ExecContext(ctx, q, c.ID, c.Name, c.Slug, c.Summary, c.Category, c.CreatedAt)
	return err
}
