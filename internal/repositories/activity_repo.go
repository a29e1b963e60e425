package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ActivityRepo struct {
	pool *pgxpool.Pool
}

func NewActivityRepo(pool *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{pool: pool}
}

// Append writes one audit entry. The table is append-only; nothing in the
// codebase updates or deletes activity_log rows.
func (r *ActivityRepo) Append(ctx context.Context, e *models.ActivityLog) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO activity_log (actor_name, action_type, description, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, e.ActorName, e.ActionType, e.Description, e.Metadata).Scan(&e.ID, &e.CreatedAt)
	return mapPgError(err)
}

type ActivityFilter struct {
	From        *time.Time // inclusive instant bound on created_at
	To          *time.Time // inclusive instant bound on created_at
	ActionType  string
	SettingVerb string // add/edit/delete, only with ActionType setting_convention
	ActorName   string
	Limit       int
}

// activityQuery builds the filtered list query. Kept separate from the
// pool call so the clause construction stays testable.
func activityQuery(f ActivityFilter) (string, []any) {
	query := `SELECT id, actor_name, action_type, description, metadata, created_at FROM activity_log`
	args := []any{}
	where := []string{}

	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if f.ActionType != "" {
		args = append(args, f.ActionType)
		where = append(where, fmt.Sprintf("action_type = $%d", len(args)))
	}
	if f.SettingVerb != "" {
		args = append(args, f.SettingVerb+" %")
		where = append(where, fmt.Sprintf("description LIKE $%d", len(args)))
	}
	if f.ActorName != "" {
		args = append(args, f.ActorName)
		where = append(where, fmt.Sprintf("actor_name = $%d", len(args)))
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	return query, args
}

func (r *ActivityRepo) List(ctx context.Context, f ActivityFilter) ([]models.ActivityLog, error) {
	query, args := activityQuery(f)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var entries []models.ActivityLog
	for rows.Next() {
		var e models.ActivityLog
		if err := rows.Scan(&e.ID, &e.ActorName, &e.ActionType, &e.Description, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
