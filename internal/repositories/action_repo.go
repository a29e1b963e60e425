package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ActionRepo struct {
	pool *pgxpool.Pool
}

func NewActionRepo(pool *pgxpool.Pool) *ActionRepo {
	return &ActionRepo{pool: pool}
}

const actionColumns = "id, topic_id, label, value, sort_order, created_at, updated_at"

// List returns actions grouped by their topic's position in the topic
// ordering, then by the action's own sort_order.
func (r *ActionRepo) List(ctx context.Context) ([]models.ActionRule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.topic_id, a.label, a.value, a.sort_order, a.created_at, a.updated_at
		FROM action_rules a
		JOIN topic_convention_option t ON t.id = a.topic_id
		ORDER BY t.sort_order, t.id, a.sort_order
	`)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var actions []models.ActionRule
	for rows.Next() {
		var a models.ActionRule
		if err := rows.Scan(&a.ID, &a.TopicID, &a.Label, &a.Value, &a.SortOrder, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

func (r *ActionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ActionRule, error) {
	var a models.ActionRule
	err := r.pool.QueryRow(ctx, `SELECT `+actionColumns+` FROM action_rules WHERE id = $1`, id).
		Scan(&a.ID, &a.TopicID, &a.Label, &a.Value, &a.SortOrder, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &a, nil
}

func (r *ActionRepo) Create(ctx context.Context, a *models.ActionRule) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO action_rules (topic_id, label, value, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, a.TopicID, a.Label, a.Value, a.SortOrder).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return mapPgError(err)
}

// ActionPatch carries label and the value re-derived from it together; the
// service never updates one without the other.
type ActionPatch struct {
	TopicID   *uuid.UUID
	Label     *string
	Value     *string
	SortOrder *int
}

func (r *ActionRepo) Update(ctx context.Context, id uuid.UUID, p ActionPatch) (*models.ActionRule, error) {
	set := []string{}
	args := []any{}
	argIdx := 1

	if p.TopicID != nil {
		set = append(set, fmt.Sprintf("topic_id = $%d", argIdx))
		args = append(args, *p.TopicID)
		argIdx++
	}
	if p.Label != nil {
		set = append(set, fmt.Sprintf("label = $%d", argIdx))
		args = append(args, *p.Label)
		argIdx++
	}
	if p.Value != nil {
		set = append(set, fmt.Sprintf("value = $%d", argIdx))
		args = append(args, *p.Value)
		argIdx++
	}
	if p.SortOrder != nil {
		set = append(set, fmt.Sprintf("sort_order = $%d", argIdx))
		args = append(args, *p.SortOrder)
		argIdx++
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	query := "UPDATE action_rules SET " + strings.Join(set, ", ") +
		fmt.Sprintf(", updated_at = now() WHERE id = $%d RETURNING ", argIdx) + actionColumns
	args = append(args, id)

	var a models.ActionRule
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&a.ID, &a.TopicID, &a.Label, &a.Value, &a.SortOrder, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &a, nil
}

func (r *ActionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM action_rules WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// CountLogs counts convention logs still referencing the action.
func (r *ActionRepo) CountLogs(ctx context.Context, actionID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM convention_logs WHERE action_rule_id = $1`, actionID).Scan(&n)
	return n, mapPgError(err)
}
