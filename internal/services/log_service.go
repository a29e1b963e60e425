package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/frontend-dashboard/backend/internal/events"
	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/frontend-dashboard/backend/internal/options"
	"github.com/frontend-dashboard/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type logStore interface {
	Create(ctx context.Context, l *models.ConventionLog) error
	Update(ctx context.Context, l *models.ConventionLog) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ConventionLog, error)
	GetDetails(ctx context.Context, id uuid.UUID) (*models.ConventionLogWithDetails, error)
	Latest(ctx context.Context, n int) ([]models.ConventionLogWithDetails, error)
	ByDateRange(ctx context.Context, f repositories.LogFilter) ([]models.ConventionLogWithDetails, error)
}

type summaryCounter interface {
	Adjust(ctx context.Context, memberID uuid.UUID, delta int) error
}

type memberGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
}

type topicLister interface {
	List(ctx context.Context) ([]models.Topic, error)
}

type actionLister interface {
	List(ctx context.Context) ([]models.ActionRule, error)
}

type LogParams struct {
	LogDate      time.Time
	MemberID     uuid.UUID
	Type         string
	TopicID      uuid.UUID
	ActionRuleID uuid.UUID
	Sprint       *string
	Notes        *string
}

// LogService is the write path for convention logs. Each successful
// mutation runs a fixed sequence: log row, summary counter, activity
// entry, change event. The steps are independent calls, not one
// transaction; a failure mid-sequence leaves earlier steps committed.
type LogService struct {
	logs      logStore
	summary   summaryCounter
	members   memberGetter
	topics    topicLister
	actions   actionLister
	audit     auditStore
	publisher events.Publisher
	log       *zap.Logger
}

func NewLogService(
	logs logStore,
	summary summaryCounter,
	members memberGetter,
	topics topicLister,
	actions actionLister,
	audit auditStore,
	publisher events.Publisher,
	log *zap.Logger,
) *LogService {
	return &LogService{
		logs:      logs,
		summary:   summary,
		members:   members,
		topics:    topics,
		actions:   actions,
		audit:     audit,
		publisher: publisher,
		log:       log,
	}
}

func (s *LogService) validate(ctx context.Context, p LogParams) error {
	if p.LogDate.IsZero() {
		return fmt.Errorf("%w: log_date is required", models.ErrValidation)
	}
	if p.MemberID == uuid.Nil {
		return fmt.Errorf("%w: member_id is required", models.ErrValidation)
	}
	if p.Type == "" {
		return fmt.Errorf("%w: type is required", models.ErrValidation)
	}
	if p.TopicID == uuid.Nil {
		return fmt.Errorf("%w: topic_id is required", models.ErrValidation)
	}
	if p.ActionRuleID == uuid.Nil {
		return fmt.Errorf("%w: action_rule_id is required", models.ErrValidation)
	}

	if _, err := s.members.GetByID(ctx, p.MemberID); err != nil {
		return fmt.Errorf("%w: member %s does not exist", models.ErrInvalidReference, p.MemberID)
	}

	// Re-check the type/topic/action triple against the current taxonomy.
	// The cascading form enforces it client-side, but the write path must
	// not trust that.
	topics, err := s.topics.List(ctx)
	if err != nil {
		return err
	}
	actions, err := s.actions.List(ctx)
	if err != nil {
		return err
	}
	snap := options.Snapshot{Topics: topics, Actions: actions}
	return options.ValidateLogRefs(snap, p.Type, p.TopicID, p.ActionRuleID)
}

func (s *LogService) Create(ctx context.Context, actor string, p LogParams) (*models.ConventionLogWithDetails, error) {
	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}

	entry := &models.ConventionLog{
		LogDate:      p.LogDate,
		MemberID:     p.MemberID,
		Type:         p.Type,
		TopicID:      p.TopicID,
		ActionRuleID: p.ActionRuleID,
		Sprint:       p.Sprint,
		Notes:        p.Notes,
		CreatedBy:    &actor,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.summary.Adjust(ctx, p.MemberID, 1); err != nil {
		s.log.Error("summary increment failed", zap.String("member_id", p.MemberID.String()), zap.Error(err))
	}

	details, err := s.logs.GetDetails(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventConventionLogCreated, entry.ID)
	return details, s.appendLogAudit(ctx, actor, models.ActionAddConventionLog, details)
}

func (s *LogService) Update(ctx context.Context, actor string, id uuid.UUID, p LogParams) (*models.ConventionLogWithDetails, error) {
	existing, err := s.logs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}

	entry := &models.ConventionLog{
		ID:           id,
		LogDate:      p.LogDate,
		MemberID:     p.MemberID,
		Type:         p.Type,
		TopicID:      p.TopicID,
		ActionRuleID: p.ActionRuleID,
		Sprint:       p.Sprint,
		Notes:        p.Notes,
	}
	if err := s.logs.Update(ctx, entry); err != nil {
		return nil, err
	}

	// Moving the log between members moves the count with it.
	if existing.MemberID != p.MemberID {
		if err := s.summary.Adjust(ctx, existing.MemberID, -1); err != nil {
			s.log.Error("summary decrement failed", zap.String("member_id", existing.MemberID.String()), zap.Error(err))
		}
		if err := s.summary.Adjust(ctx, p.MemberID, 1); err != nil {
			s.log.Error("summary increment failed", zap.String("member_id", p.MemberID.String()), zap.Error(err))
		}
	}

	details, err := s.logs.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventConventionLogUpdated, id)
	return details, s.appendLogAudit(ctx, actor, models.ActionEditConventionLog, details)
}

func (s *LogService) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	details, err := s.logs.GetDetails(ctx, id)
	if err != nil {
		return err
	}
	if err := s.logs.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.summary.Adjust(ctx, details.MemberID, -1); err != nil {
		s.log.Error("summary decrement failed", zap.String("member_id", details.MemberID.String()), zap.Error(err))
	}

	s.publish(ctx, events.EventConventionLogDeleted, id)
	return s.appendLogAudit(ctx, actor, models.ActionDeleteConventionLog, details)
}

func (s *LogService) Latest(ctx context.Context, n int) ([]models.ConventionLogWithDetails, error) {
	return s.logs.Latest(ctx, n)
}

// ByDateRange returns logs with log_date in [start, end], both inclusive.
func (s *LogService) ByDateRange(ctx context.Context, start, end time.Time, memberID *uuid.UUID) ([]models.ConventionLogWithDetails, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", models.ErrValidation)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date is before start date", models.ErrValidation)
	}
	return s.logs.ByDateRange(ctx, repositories.LogFilter{Start: start, End: end, MemberID: memberID})
}

func (s *LogService) publish(ctx context.Context, eventType string, id uuid.UUID) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, events.StreamConvention, events.Event{
		Type:    eventType,
		Payload: map[string]any{"log_id": id.String()},
	})
	if err != nil {
		s.log.Warn("log event publish failed", zap.Error(err))
	}
}

// appendLogAudit records who did what with a human-readable field summary.
// The primary mutation has already committed; an append failure is still
// returned so the caller does not see a silent half-success.
func (s *LogService) appendLogAudit(ctx context.Context, actor, actionType string, d *models.ConventionLogWithDetails) error {
	err := s.audit.Append(ctx, &models.ActivityLog{
		ActorName:   actor,
		ActionType:  actionType,
		Description: logDescription(d),
		Metadata: map[string]any{
			"log_id":    d.ID.String(),
			"member_id": d.MemberID.String(),
			"log_date":  d.LogDate.Format("2006-01-02"),
		},
	})
	if err != nil {
		return fmt.Errorf("log saved but activity log append failed: %w", err)
	}
	return nil
}

// logDescription summarizes the affected fields: member, type, topic,
// action, then sprint and notes when present.
func logDescription(d *models.ConventionLogWithDetails) string {
	member := d.MemberID.String()
	if d.MemberName != nil {
		member = *d.MemberName
	}
	topic := d.TopicID.String()
	if d.TopicTitle != nil {
		topic = *d.TopicTitle
	}
	action := d.ActionRuleID.String()
	if d.ActionLabel != nil {
		action = *d.ActionLabel
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s | %s | %s | %s | %s", member, d.LogDate.Format("02/01/2006"), d.Type, topic, action)
	if d.Sprint != nil && *d.Sprint != "" {
		fmt.Fprintf(&b, " | sprint %s", *d.Sprint)
	}
	if d.Notes != nil && *d.Notes != "" {
		fmt.Fprintf(&b, " | %s", *d.Notes)
	}
	return b.String()
}
