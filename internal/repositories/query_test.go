package repositories

import (
	"strings"
	"testing"
	"time"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/google/uuid"
)

func TestDateRangeQuery(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("range only", func(t *testing.T) {
		tail, args := dateRangeQuery(LogFilter{Start: start, End: end})
		if !strings.Contains(tail, "l.log_date >= $1") || !strings.Contains(tail, "l.log_date <= $2") {
			t.Errorf("both bounds should be inclusive, got %q", tail)
		}
		if strings.Contains(tail, "member_id") {
			t.Errorf("no member clause expected, got %q", tail)
		}
		if len(args) != 2 {
			t.Errorf("args = %d, want 2", len(args))
		}
		if !strings.Contains(tail, "ORDER BY l.log_date DESC, l.created_at DESC") {
			t.Errorf("missing stable ordering, got %q", tail)
		}
	})

	t.Run("member filter appended", func(t *testing.T) {
		id := uuid.New()
		tail, args := dateRangeQuery(LogFilter{Start: start, End: end, MemberID: &id})
		if !strings.Contains(tail, "l.member_id = $3") {
			t.Errorf("member clause should bind $3, got %q", tail)
		}
		if len(args) != 3 {
			t.Fatalf("args = %d, want 3", len(args))
		}
		if args[2] != id {
			t.Errorf("args[2] = %v, want member id", args[2])
		}
	})
}

func TestActivityQuery(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

	t.Run("no filters", func(t *testing.T) {
		query, args := activityQuery(ActivityFilter{})
		if strings.Contains(query, "WHERE") {
			t.Errorf("no WHERE expected, got %q", query)
		}
		if !strings.Contains(query, "ORDER BY created_at DESC LIMIT $1") {
			t.Errorf("missing ordering/limit, got %q", query)
		}
		if len(args) != 1 || args[0] != 20 {
			t.Errorf("default limit arg = %v, want [20]", args)
		}
	})

	t.Run("all filters bind in order", func(t *testing.T) {
		query, args := activityQuery(ActivityFilter{
			From:        &from,
			To:          &to,
			ActionType:  models.ActionSettingConvention,
			SettingVerb: models.SettingVerbEdit,
			ActorName:   "somchai",
			Limit:       50,
		})
		for _, clause := range []string{
			"created_at >= $1",
			"created_at <= $2",
			"action_type = $3",
			"description LIKE $4",
			"actor_name = $5",
			"LIMIT $6",
		} {
			if !strings.Contains(query, clause) {
				t.Errorf("query missing %q: %q", clause, query)
			}
		}
		if len(args) != 6 {
			t.Fatalf("args = %d, want 6", len(args))
		}
		// The verb matches as a word prefix on the description.
		if args[3] != "edit %" {
			t.Errorf("verb pattern = %v, want \"edit %%\"", args[3])
		}
	})

	t.Run("verb matches only its own word", func(t *testing.T) {
		_, args := activityQuery(ActivityFilter{SettingVerb: models.SettingVerbAdd})
		if args[0] != "add %" {
			t.Errorf("pattern = %v; a bare prefix would also match \"addendum\"", args[0])
		}
	})
}
