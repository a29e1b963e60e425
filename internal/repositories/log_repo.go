package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LogRepo struct {
	pool *pgxpool.Pool
}

func NewLogRepo(pool *pgxpool.Pool) *LogRepo {
	return &LogRepo{pool: pool}
}

func (r *LogRepo) Create(ctx context.Context, l *models.ConventionLog) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO convention_logs (log_date, member_id, type, topic_id, action_rule_id, sprint, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, l.LogDate, l.MemberID, l.Type, l.TopicID, l.ActionRuleID, l.Sprint, l.Notes, l.CreatedBy).
		Scan(&l.ID, &l.CreatedAt)
	return mapPgError(err)
}

func (r *LogRepo) Update(ctx context.Context, l *models.ConventionLog) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE convention_logs
		SET log_date = $1, member_id = $2, type = $3, topic_id = $4, action_rule_id = $5, sprint = $6, notes = $7
		WHERE id = $8
	`, l.LogDate, l.MemberID, l.Type, l.TopicID, l.ActionRuleID, l.Sprint, l.Notes, l.ID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *LogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM convention_logs WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *LogRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ConventionLog, error) {
	var l models.ConventionLog
	err := r.pool.QueryRow(ctx, `
		SELECT id, log_date, member_id, type, topic_id, action_rule_id, sprint, notes, created_by, created_at
		FROM convention_logs WHERE id = $1
	`, id).Scan(&l.ID, &l.LogDate, &l.MemberID, &l.Type, &l.TopicID, &l.ActionRuleID, &l.Sprint, &l.Notes, &l.CreatedBy, &l.CreatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &l, nil
}

const logDetailSelect = `
	SELECT l.id, l.log_date, l.member_id, l.type, l.topic_id, l.action_rule_id,
	       l.sprint, l.notes, l.created_by, l.created_at,
	       m.name, t.title, a.label
	FROM convention_logs l
	LEFT JOIN frontend_member m ON m.id = l.member_id
	LEFT JOIN topic_convention_option t ON t.id = l.topic_id
	LEFT JOIN action_rules a ON a.id = l.action_rule_id
`

func (r *LogRepo) GetDetails(ctx context.Context, id uuid.UUID) (*models.ConventionLogWithDetails, error) {
	var d models.ConventionLogWithDetails
	err := r.pool.QueryRow(ctx, logDetailSelect+` WHERE l.id = $1`, id).Scan(
		&d.ID, &d.LogDate, &d.MemberID, &d.Type, &d.TopicID, &d.ActionRuleID,
		&d.Sprint, &d.Notes, &d.CreatedBy, &d.CreatedAt,
		&d.MemberName, &d.TopicTitle, &d.ActionLabel,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &d, nil
}

// Latest returns the n most recently created logs, newest first, each with
// denormalized display names.
func (r *LogRepo) Latest(ctx context.Context, n int) ([]models.ConventionLogWithDetails, error) {
	if n <= 0 {
		n = 10
	}
	rows, err := r.pool.Query(ctx, logDetailSelect+` ORDER BY l.created_at DESC LIMIT $1`, n)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()
	return scanLogDetails(rows)
}

type LogFilter struct {
	Start    time.Time // inclusive, on log_date
	End      time.Time // inclusive, on log_date
	MemberID *uuid.UUID
}

// dateRangeQuery builds the WHERE tail for ByDateRange. Both bounds are
// inclusive on log_date, which is a calendar date rather than an instant.
func dateRangeQuery(f LogFilter) (string, []any) {
	where := "WHERE l.log_date >= $1 AND l.log_date <= $2"
	args := []any{f.Start, f.End}
	if f.MemberID != nil {
		where += fmt.Sprintf(" AND l.member_id = $%d", len(args)+1)
		args = append(args, *f.MemberID)
	}
	return where + " ORDER BY l.log_date DESC, l.created_at DESC", args
}

func (r *LogRepo) ByDateRange(ctx context.Context, f LogFilter) ([]models.ConventionLogWithDetails, error) {
	tail, args := dateRangeQuery(f)
	rows, err := r.pool.Query(ctx, logDetailSelect+tail, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()
	return scanLogDetails(rows)
}

// CountByMember is the Summary Aggregator's ground truth; the persisted
// counter must agree with it after every completed mutation sequence.
func (r *LogRepo) CountByMember(ctx context.Context, memberID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM convention_logs WHERE member_id = $1`, memberID).Scan(&n)
	return n, mapPgError(err)
}

func scanLogDetails(rows pgx.Rows) ([]models.ConventionLogWithDetails, error) {
	var logs []models.ConventionLogWithDetails
	for rows.Next() {
		var d models.ConventionLogWithDetails
		if err := rows.Scan(
			&d.ID, &d.LogDate, &d.MemberID, &d.Type, &d.TopicID, &d.ActionRuleID,
			&d.Sprint, &d.Notes, &d.CreatedBy, &d.CreatedAt,
			&d.MemberName, &d.TopicTitle, &d.ActionLabel,
		); err != nil {
			return nil, err
		}
		logs = append(logs, d)
	}
	return logs, rows.Err()
}
