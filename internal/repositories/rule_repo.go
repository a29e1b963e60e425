package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RuleRepo struct {
	pool *pgxpool.Pool
}

func NewRuleRepo(pool *pgxpool.Pool) *RuleRepo {
	return &RuleRepo{pool: pool}
}

const ruleColumns = "r.id, r.topic_id, r.rule_text, r.sort_order, r.created_at, r.updated_at"

// List returns rules grouped by their topic's position in the topic
// ordering, then by the rule's own sort_order. The grouped-table rendering
// depends on this order staying stable.
func (r *RuleRepo) List(ctx context.Context) ([]models.ConventionRule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+ruleColumns+`
		FROM convention_rules r
		JOIN topic_convention_option t ON t.id = r.topic_id
		ORDER BY t.sort_order, t.id, r.sort_order
	`)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var rules []models.ConventionRule
	for rows.Next() {
		var cr models.ConventionRule
		if err := rows.Scan(&cr.ID, &cr.TopicID, &cr.RuleText, &cr.SortOrder, &cr.CreatedAt, &cr.UpdatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, cr)
	}
	return rules, rows.Err()
}

func (r *RuleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ConventionRule, error) {
	var cr models.ConventionRule
	err := r.pool.QueryRow(ctx, `
		SELECT id, topic_id, rule_text, sort_order, created_at, updated_at
		FROM convention_rules WHERE id = $1
	`, id).Scan(&cr.ID, &cr.TopicID, &cr.RuleText, &cr.SortOrder, &cr.CreatedAt, &cr.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &cr, nil
}

func (r *RuleRepo) Create(ctx context.Context, cr *models.ConventionRule) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO convention_rules (topic_id, rule_text, sort_order)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, cr.TopicID, cr.RuleText, cr.SortOrder).Scan(&cr.ID, &cr.CreatedAt, &cr.UpdatedAt)
	return mapPgError(err)
}

type RulePatch struct {
	TopicID   *uuid.UUID
	RuleText  *string
	SortOrder *int
}

func (r *RuleRepo) Update(ctx context.Context, id uuid.UUID, p RulePatch) (*models.ConventionRule, error) {
	set := []string{}
	args := []any{}
	argIdx := 1

	if p.TopicID != nil {
		set = append(set, fmt.Sprintf("topic_id = $%d", argIdx))
		args = append(args, *p.TopicID)
		argIdx++
	}
	if p.RuleText != nil {
		set = append(set, fmt.Sprintf("rule_text = $%d", argIdx))
		args = append(args, *p.RuleText)
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

	query := "UPDATE convention_rules SET " + strings.Join(set, ", ") +
		fmt.Sprintf(", updated_at = now() WHERE id = $%d RETURNING id, topic_id, rule_text, sort_order, created_at, updated_at", argIdx)
	args = append(args, id)

	var cr models.ConventionRule
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&cr.ID, &cr.TopicID, &cr.RuleText, &cr.SortOrder, &cr.CreatedAt, &cr.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &cr, nil
}

func (r *RuleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM convention_rules WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
