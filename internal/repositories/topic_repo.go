package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TopicRepo struct {
	pool *pgxpool.Pool
}

func NewTopicRepo(pool *pgxpool.Pool) *TopicRepo {
	return &TopicRepo{pool: pool}
}

// List returns topics with their joined type value, ordered by sort_order.
func (r *TopicRepo) List(ctx context.Context) ([]models.Topic, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.title, t.type_id, t.sort_order, t.created_at, t.updated_at, ct.value
		FROM topic_convention_option t
		JOIN convention_type ct ON ct.id = t.type_id
		ORDER BY t.sort_order, t.id
	`)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var topics []models.Topic
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Title, &t.TypeID, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt, &t.TypeValue); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (r *TopicRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Topic, error) {
	var t models.Topic
	err := r.pool.QueryRow(ctx, `
		SELECT t.id, t.title, t.type_id, t.sort_order, t.created_at, t.updated_at, ct.value
		FROM topic_convention_option t
		JOIN convention_type ct ON ct.id = t.type_id
		WHERE t.id = $1
	`, id).Scan(&t.ID, &t.Title, &t.TypeID, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt, &t.TypeValue)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &t, nil
}

func (r *TopicRepo) Create(ctx context.Context, t *models.Topic) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO topic_convention_option (title, type_id, sort_order)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, t.Title, t.TypeID, t.SortOrder).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return mapPgError(err)
}

type TopicPatch struct {
	Title     *string
	TypeID    *uuid.UUID
	SortOrder *int
}

func (r *TopicRepo) Update(ctx context.Context, id uuid.UUID, p TopicPatch) (*models.Topic, error) {
	set := []string{}
	args := []any{}
	argIdx := 1

	if p.Title != nil {
		set = append(set, fmt.Sprintf("title = $%d", argIdx))
		args = append(args, *p.Title)
		argIdx++
	}
	if p.TypeID != nil {
		set = append(set, fmt.Sprintf("type_id = $%d", argIdx))
		args = append(args, *p.TypeID)
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

	query := "UPDATE topic_convention_option SET " + strings.Join(set, ", ") +
		fmt.Sprintf(", updated_at = now() WHERE id = $%d", argIdx)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *TopicRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM topic_convention_option WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// CountDependents counts rules, actions and logs still referencing the
// topic. Deletion is blocked while any exist.
func (r *TopicRepo) CountDependents(ctx context.Context, topicID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT (SELECT count(*) FROM convention_rules WHERE topic_id = $1)
		     + (SELECT count(*) FROM action_rules WHERE topic_id = $1)
		     + (SELECT count(*) FROM convention_logs WHERE topic_id = $1)
	`, topicID).Scan(&n)
	return n, mapPgError(err)
}
