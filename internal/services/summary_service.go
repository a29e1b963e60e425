package services

import (
	"context"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/google/uuid"
)

type memberLister interface {
	ListActive(ctx context.Context) ([]models.Member, error)
}

type summaryReader interface {
	Counts(ctx context.Context) (map[uuid.UUID]int, error)
}

// SummaryService merges the persisted counters with the active member
// list, so members without any logged violation still show up with zero.
type SummaryService struct {
	members memberLister
	summary summaryReader
}

func NewSummaryService(members memberLister, summary summaryReader) *SummaryService {
	return &SummaryService{members: members, summary: summary}
}

// GetSummaries returns one row per active member, in member name order.
func (s *SummaryService) GetSummaries(ctx context.Context) ([]models.MemberSummary, error) {
	members, err := s.members.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.summary.Counts(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.MemberSummary, 0, len(members))
	for _, m := range members {
		items = append(items, models.MemberSummary{
			MemberID:       m.ID,
			Name:           m.Name,
			ViolationCount: counts[m.ID],
		})
	}
	return items, nil
}
