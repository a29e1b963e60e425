package services

import (
	"context"
	"testing"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/google/uuid"
)

func TestGetSummariesZeroFillsMembers(t *testing.T) {
	withLogs := &models.Member{ID: uuid.New(), Name: "somchai", IsActive: true}
	without := &models.Member{ID: uuid.New(), Name: "pipat", IsActive: true}
	inactive := &models.Member{ID: uuid.New(), Name: "gone", IsActive: false}

	summary := newFakeSummary()
	ctx := context.Background()
	_ = summary.Adjust(ctx, withLogs.ID, 3)
	_ = summary.Adjust(ctx, inactive.ID, 7)

	svc := NewSummaryService(newFakeMembers(withLogs, without, inactive), summary)
	items, err := svc.GetSummaries(ctx)
	if err != nil {
		t.Fatalf("GetSummaries() error = %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("got %d rows, want 2 (inactive members excluded)", len(items))
	}

	byID := make(map[uuid.UUID]models.MemberSummary)
	for _, it := range items {
		byID[it.MemberID] = it
	}
	if got := byID[withLogs.ID].ViolationCount; got != 3 {
		t.Errorf("count for member with logs = %d, want 3", got)
	}
	if got := byID[without.ID].ViolationCount; got != 0 {
		t.Errorf("count for member without logs = %d, want 0", got)
	}
}

func TestSummaryCounterNeverGoesNegative(t *testing.T) {
	summary := newFakeSummary()
	ctx := context.Background()
	id := uuid.New()

	_ = summary.Adjust(ctx, id, 1)
	_ = summary.Adjust(ctx, id, -1)
	_ = summary.Adjust(ctx, id, -1)

	counts, _ := summary.Counts(ctx)
	if counts[id] != 0 {
		t.Errorf("count = %d after over-decrement, want 0", counts[id])
	}
}
