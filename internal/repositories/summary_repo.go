package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SummaryRepo struct {
	pool *pgxpool.Pool
}

func NewSummaryRepo(pool *pgxpool.Pool) *SummaryRepo {
	return &SummaryRepo{pool: pool}
}

// Adjust moves a member's persisted violation counter by delta, creating
// the row on first use. The counter never goes below zero even if a crash
// between a log delete and this call left it stale.
func (r *SummaryRepo) Adjust(ctx context.Context, memberID uuid.UUID, delta int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO member_convention_summary (member_id, violation_count)
		VALUES ($1, GREATEST($2, 0))
		ON CONFLICT (member_id) DO UPDATE SET
			violation_count = GREATEST(member_convention_summary.violation_count + $2, 0),
			updated_at = now()
	`, memberID, delta)
	return mapPgError(err)
}

// Counts returns the raw counter rows keyed by member id. Members with no
// row simply have no logs yet.
func (r *SummaryRepo) Counts(ctx context.Context) (map[uuid.UUID]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT member_id, violation_count FROM member_convention_summary`)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
