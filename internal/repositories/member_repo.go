package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MemberRepo struct {
	pool *pgxpool.Pool
}

func NewMemberRepo(pool *pgxpool.Pool) *MemberRepo {
	return &MemberRepo{pool: pool}
}

const memberColumns = "id, name, email, is_active, created_at, updated_at"

func (r *MemberRepo) ListActive(ctx context.Context) ([]models.Member, error) {
	return r.list(ctx, `SELECT `+memberColumns+` FROM frontend_member WHERE is_active ORDER BY name`)
}

func (r *MemberRepo) List(ctx context.Context) ([]models.Member, error) {
	return r.list(ctx, `SELECT `+memberColumns+` FROM frontend_member ORDER BY name`)
}

func (r *MemberRepo) list(ctx context.Context, query string) ([]models.Member, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *MemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	var m models.Member
	err := r.pool.QueryRow(ctx, `SELECT `+memberColumns+` FROM frontend_member WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.Email, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &m, nil
}

func (r *MemberRepo) GetByName(ctx context.Context, name string) (*models.Member, error) {
	var m models.Member
	err := r.pool.QueryRow(ctx, `SELECT `+memberColumns+` FROM frontend_member WHERE name = $1`, name).
		Scan(&m.ID, &m.Name, &m.Email, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &m, nil
}

func (r *MemberRepo) Create(ctx context.Context, m *models.Member) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO frontend_member (name, email, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, m.Name, m.Email, m.IsActive).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	return mapPgError(err)
}

type MemberPatch struct {
	Name     *string
	Email    *string
	IsActive *bool
}

func (r *MemberRepo) Update(ctx context.Context, id uuid.UUID, p MemberPatch) (*models.Member, error) {
	set := []string{}
	args := []any{}
	argIdx := 1

	if p.Name != nil {
		set = append(set, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *p.Name)
		argIdx++
	}
	if p.Email != nil {
		set = append(set, fmt.Sprintf("email = $%d", argIdx))
		args = append(args, *p.Email)
		argIdx++
	}
	if p.IsActive != nil {
		set = append(set, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *p.IsActive)
		argIdx++
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	query := "UPDATE frontend_member SET " + strings.Join(set, ", ") + fmt.Sprintf(", updated_at = now() WHERE id = $%d RETURNING ", argIdx) + memberColumns
	args = append(args, id)

	var m models.Member
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&m.ID, &m.Name, &m.Email, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &m, nil
}
