package services

import (
	"context"
	"fmt"
	"time"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/frontend-dashboard/backend/internal/repositories"
)

type activityLister interface {
	List(ctx context.Context, f repositories.ActivityFilter) ([]models.ActivityLog, error)
}

// ActivityParams are the read filters as they arrive from the API: dates
// as calendar-date strings, converted here to instant bounds at the day
// boundaries of the reporting time zone.
type ActivityParams struct {
	FromDate    string // YYYY-MM-DD, inclusive
	ToDate      string // YYYY-MM-DD, inclusive
	ActionType  string
	SettingVerb string
	ActorName   string
	Limit       int
	ForExport   bool
}

type ActivityService struct {
	activity     activityLister
	loc          *time.Location
	defaultLimit int
	exportLimit  int
}

func NewActivityService(activity activityLister, loc *time.Location, defaultLimit, exportLimit int) *ActivityService {
	if loc == nil {
		loc = time.UTC
	}
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	if exportLimit <= 0 {
		exportLimit = 5000
	}
	return &ActivityService{activity: activity, loc: loc, defaultLimit: defaultLimit, exportLimit: exportLimit}
}

const dateLayout = "2006-01-02"

// DayBounds converts an inclusive calendar-date pair into instant bounds:
// start of the from-day through the last moment of the to-day, in loc.
func DayBounds(fromDate, toDate string, loc *time.Location) (from, to *time.Time, err error) {
	if fromDate != "" {
		d, perr := time.ParseInLocation(dateLayout, fromDate, loc)
		if perr != nil {
			return nil, nil, fmt.Errorf("%w: invalid from date %q", models.ErrValidation, fromDate)
		}
		from = &d
	}
	if toDate != "" {
		d, perr := time.ParseInLocation(dateLayout, toDate, loc)
		if perr != nil {
			return nil, nil, fmt.Errorf("%w: invalid to date %q", models.ErrValidation, toDate)
		}
		end := d.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}

func (s *ActivityService) List(ctx context.Context, p ActivityParams) ([]models.ActivityLog, error) {
	if p.ActionType != "" && !models.IsValidActivityActionType(p.ActionType) {
		return nil, fmt.Errorf("%w: unknown action type %q", models.ErrValidation, p.ActionType)
	}
	if p.SettingVerb != "" {
		if p.ActionType != models.ActionSettingConvention {
			return nil, fmt.Errorf("%w: setting verb filter requires action type %q", models.ErrValidation, models.ActionSettingConvention)
		}
		if !models.IsValidSettingVerb(p.SettingVerb) {
			return nil, fmt.Errorf("%w: unknown setting verb %q", models.ErrValidation, p.SettingVerb)
		}
	}

	from, to, err := DayBounds(p.FromDate, p.ToDate, s.loc)
	if err != nil {
		return nil, err
	}

	limit := p.Limit
	maxLimit := s.defaultLimit
	if p.ForExport {
		maxLimit = s.exportLimit
	}
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	return s.activity.List(ctx, repositories.ActivityFilter{
		From:        from,
		To:          to,
		ActionType:  p.ActionType,
		SettingVerb: p.SettingVerb,
		ActorName:   p.ActorName,
		Limit:       limit,
	})
}
