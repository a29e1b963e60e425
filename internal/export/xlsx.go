// Package export builds the spreadsheet downloads for the activity log
// and the convention log report. The per-member aggregation is a pure
// function separate from workbook assembly.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/xuri/excelize/v2"
)

const timestampLayout = "02/01/2006 15:04:05"

type MemberCount struct {
	Name  string
	Count int
}

// CountByMember groups exported logs per member and counts them,
// alphabetical by member name. Rows whose member no longer resolves fall
// back to the member id so they are not silently dropped.
func CountByMember(logs []models.ConventionLogWithDetails) []MemberCount {
	counts := make(map[string]int)
	for _, l := range logs {
		name := l.MemberID.String()
		if l.MemberName != nil {
			name = *l.MemberName
		}
		counts[name]++
	}

	out := make([]MemberCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, MemberCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ActivityFilename mirrors the dashboard's download naming:
// activity-log_<from>_<to>_<type label with whitespace dashed>.xlsx.
func ActivityFilename(fromDate, toDate, actionType string) string {
	if fromDate == "" {
		fromDate = "start"
	}
	if toDate == "" {
		toDate = "end"
	}
	label := "all"
	if l, ok := models.ActivityActionLabels[actionType]; ok {
		label = strings.Join(strings.Fields(l), "-")
	}
	return fmt.Sprintf("activity-log_%s_%s_%s.xlsx", fromDate, toDate, label)
}

func LogFilename(startDate, endDate string) string {
	return fmt.Sprintf("convention-logs_%s_%s.xlsx", startDate, endDate)
}

// ActivityWorkbook renders activity entries on one sheet.
func ActivityWorkbook(entries []models.ActivityLog) (*excelize.File, error) {
	const sheet = "Activity Log"
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := []any{"วันที่/เวลา", "ผู้ทำ", "ประเภท", "รายละเอียด"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, e := range entries {
		label := e.ActionType
		if l, ok := models.ActivityActionLabels[e.ActionType]; ok {
			label = l
		}
		row := []any{e.CreatedAt.Format(timestampLayout), e.ActorName, label, e.Description}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// LogWorkbook renders the raw filtered rows on one sheet plus the
// per-member count aggregation on a second.
func LogWorkbook(logs []models.ConventionLogWithDetails) (*excelize.File, error) {
	const rawSheet = "Convention Logs"
	const summarySheet = "Summary"

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", rawSheet); err != nil {
		return nil, err
	}

	header := []any{"วันที่", "สมาชิก", "ประเภท", "หัวข้อ", "Action", "Sprint", "หมายเหตุ", "บันทึกเมื่อ"}
	if err := f.SetSheetRow(rawSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, l := range logs {
		row := []any{
			l.LogDate.Format("02/01/2006"),
			deref(l.MemberName, l.MemberID.String()),
			l.Type,
			deref(l.TopicTitle, l.TopicID.String()),
			deref(l.ActionLabel, l.ActionRuleID.String()),
			derefOr(l.Sprint, "—"),
			derefOr(l.Notes, "—"),
			l.CreatedAt.Format(timestampLayout),
		}
		if err := f.SetSheetRow(rawSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	summaryHeader := []any{"สมาชิก", "จำนวนครั้ง"}
	if err := f.SetSheetRow(summarySheet, "A1", &summaryHeader); err != nil {
		return nil, err
	}
	for i, c := range CountByMember(logs) {
		row := []any{c.Name, c.Count}
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func deref(s *string, fallback string) string {
	if s != nil {
		return *s
	}
	return fallback
}

func derefOr(s *string, empty string) string {
	if s != nil && *s != "" {
		return *s
	}
	return empty
}
