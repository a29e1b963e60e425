package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TypeRepo struct {
	pool *pgxpool.Pool
}

func NewTypeRepo(pool *pgxpool.Pool) *TypeRepo {
	return &TypeRepo{pool: pool}
}

const typeColumns = "id, value, label, sort_order, created_at, updated_at"

func (r *TypeRepo) List(ctx context.Context) ([]models.ConventionType, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+typeColumns+` FROM convention_type ORDER BY sort_order, value`)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var types []models.ConventionType
	for rows.Next() {
		var t models.ConventionType
		if err := rows.Scan(&t.ID, &t.Value, &t.Label, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *TypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ConventionType, error) {
	var t models.ConventionType
	err := r.pool.QueryRow(ctx, `SELECT `+typeColumns+` FROM convention_type WHERE id = $1`, id).
		Scan(&t.ID, &t.Value, &t.Label, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &t, nil
}

func (r *TypeRepo) Create(ctx context.Context, t *models.ConventionType) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO convention_type (value, label, sort_order)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, t.Value, t.Label, t.SortOrder).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return mapPgError(err)
}

type TypePatch struct {
	Value     *string
	Label     *string
	SortOrder *int
}

func (r *TypeRepo) Update(ctx context.Context, id uuid.UUID, p TypePatch) (*models.ConventionType, error) {
	set := []string{}
	args := []any{}
	argIdx := 1

	if p.Value != nil {
		set = append(set, fmt.Sprintf("value = $%d", argIdx))
		args = append(args, *p.Value)
		argIdx++
	}
	if p.Label != nil {
		set = append(set, fmt.Sprintf("label = $%d", argIdx))
		args = append(args, *p.Label)
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

	query := "UPDATE convention_type SET " + strings.Join(set, ", ") +
		fmt.Sprintf(", updated_at = now() WHERE id = $%d RETURNING ", argIdx) + typeColumns
	args = append(args, id)

	var t models.ConventionType
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&t.ID, &t.Value, &t.Label, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &t, nil
}

func (r *TypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM convention_type WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// CountTopics counts topics still referencing the type; deletion is blocked
// while it is non-zero.
func (r *TypeRepo) CountTopics(ctx context.Context, typeID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM topic_convention_option WHERE type_id = $1`, typeID).Scan(&n)
	return n, mapPgError(err)
}
