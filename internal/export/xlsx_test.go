package export

import (
	"testing"
	"time"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/google/uuid"
)

func strptr(s string) *string { return &s }

func detailRow(name string) models.ConventionLogWithDetails {
	return models.ConventionLogWithDetails{
		ConventionLog: models.ConventionLog{
			ID:        uuid.New(),
			MemberID:  uuid.New(),
			LogDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			Type:      "frontend",
			CreatedAt: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		},
		MemberName: strptr(name),
	}
}

func TestCountByMember(t *testing.T) {
	logs := []models.ConventionLogWithDetails{
		detailRow("somchai"),
		detailRow("pipat"),
		detailRow("somchai"),
		detailRow("somchai"),
	}

	counts := CountByMember(logs)
	if len(counts) != 2 {
		t.Fatalf("got %d groups, want 2", len(counts))
	}
	// Alphabetical by name.
	if counts[0].Name != "pipat" || counts[0].Count != 1 {
		t.Errorf("counts[0] = %+v, want pipat/1", counts[0])
	}
	if counts[1].Name != "somchai" || counts[1].Count != 3 {
		t.Errorf("counts[1] = %+v, want somchai/3", counts[1])
	}
}

func TestCountByMemberUnresolvedFallsBackToID(t *testing.T) {
	orphan := models.ConventionLogWithDetails{
		ConventionLog: models.ConventionLog{ID: uuid.New(), MemberID: uuid.New()},
	}
	counts := CountByMember([]models.ConventionLogWithDetails{orphan})
	if len(counts) != 1 {
		t.Fatalf("got %d groups, want 1", len(counts))
	}
	if counts[0].Name != orphan.MemberID.String() {
		t.Errorf("name = %q, want the member id", counts[0].Name)
	}
}

func TestCountByMemberEmpty(t *testing.T) {
	if counts := CountByMember(nil); len(counts) != 0 {
		t.Errorf("got %d groups for no logs, want 0", len(counts))
	}
}

func TestActivityFilename(t *testing.T) {
	tests := []struct {
		name       string
		from, to   string
		actionType string
		want       string
	}{
		{"full filters", "2026-03-01", "2026-03-31", models.ActionSettingConvention, "activity-log_2026-03-01_2026-03-31_Setting-Convention.xlsx"},
		{"no dates", "", "", "", "activity-log_start_end_all.xlsx"},
		{"unknown type falls back to all", "2026-03-01", "2026-03-31", "bogus", "activity-log_2026-03-01_2026-03-31_all.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ActivityFilename(tt.from, tt.to, tt.actionType)
			if got != tt.want {
				t.Errorf("ActivityFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActivityWorkbook(t *testing.T) {
	entries := []models.ActivityLog{
		{
			ActorName:   "somchai",
			ActionType:  models.ActionAddConventionLog,
			Description: "somchai | 10/03/2026 | frontend",
			CreatedAt:   time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		},
	}

	f, err := ActivityWorkbook(entries)
	if err != nil {
		t.Fatalf("ActivityWorkbook() error = %v", err)
	}

	rows, err := f.GetRows("Activity Log")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	if rows[1][0] != "10/03/2026 09:30:00" {
		t.Errorf("timestamp cell = %q", rows[1][0])
	}
	if rows[1][1] != "somchai" {
		t.Errorf("actor cell = %q", rows[1][1])
	}
	// Action type renders as its Thai label.
	if rows[1][2] != models.ActivityActionLabels[models.ActionAddConventionLog] {
		t.Errorf("label cell = %q", rows[1][2])
	}
}

func TestLogWorkbookHasSummarySheet(t *testing.T) {
	logs := []models.ConventionLogWithDetails{
		detailRow("somchai"),
		detailRow("somchai"),
		detailRow("pipat"),
	}

	f, err := LogWorkbook(logs)
	if err != nil {
		t.Fatalf("LogWorkbook() error = %v", err)
	}

	raw, err := f.GetRows("Convention Logs")
	if err != nil {
		t.Fatalf("GetRows(raw) error = %v", err)
	}
	if len(raw) != 4 {
		t.Errorf("raw sheet has %d rows, want header + 3", len(raw))
	}

	summary, err := f.GetRows("Summary")
	if err != nil {
		t.Fatalf("GetRows(summary) error = %v", err)
	}
	if len(summary) != 3 {
		t.Fatalf("summary sheet has %d rows, want header + 2", len(summary))
	}
	if summary[1][0] != "pipat" || summary[1][1] != "1" {
		t.Errorf("summary[1] = %v, want pipat/1", summary[1])
	}
	if summary[2][0] != "somchai" || summary[2][1] != "2" {
		t.Errorf("summary[2] = %v, want somchai/2", summary[2])
	}
}
