package services

import (
	"context"
	"fmt"

	"github.com/frontend-dashboard/backend/internal/events"
	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/frontend-dashboard/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type typeStore interface {
	List(ctx context.Context) ([]models.ConventionType, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ConventionType, error)
	Create(ctx context.Context, t *models.ConventionType) error
	Update(ctx context.Context, id uuid.UUID, p repositories.TypePatch) (*models.ConventionType, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountTopics(ctx context.Context, typeID uuid.UUID) (int, error)
}

type topicStore interface {
	List(ctx context.Context) ([]models.Topic, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Topic, error)
	Create(ctx context.Context, t *models.Topic) error
	Update(ctx context.Context, id uuid.UUID, p repositories.TopicPatch) (*models.Topic, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountDependents(ctx context.Context, topicID uuid.UUID) (int, error)
}

type ruleStore interface {
	List(ctx context.Context) ([]models.ConventionRule, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ConventionRule, error)
	Create(ctx context.Context, r *models.ConventionRule) error
	Update(ctx context.Context, id uuid.UUID, p repositories.RulePatch) (*models.ConventionRule, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type actionStore interface {
	List(ctx context.Context) ([]models.ActionRule, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ActionRule, error)
	Create(ctx context.Context, a *models.ActionRule) error
	Update(ctx context.Context, id uuid.UUID, p repositories.ActionPatch) (*models.ActionRule, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountLogs(ctx context.Context, actionID uuid.UUID) (int, error)
}

type auditStore interface {
	Append(ctx context.Context, e *models.ActivityLog) error
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// TaxonomyService owns the Types → Topics → Rules/Actions tree. Every
// mutation appends a setting_convention audit entry whose description
// starts with the verb (add/edit/delete) and invalidates the form-options
// cache.
type TaxonomyService struct {
	types     typeStore
	topics    topicStore
	rules     ruleStore
	actions   actionStore
	audit     auditStore
	cache     cacheInvalidator
	publisher events.Publisher
	log       *zap.Logger
}

func NewTaxonomyService(
	types typeStore,
	topics topicStore,
	rules ruleStore,
	actions actionStore,
	audit auditStore,
	cache cacheInvalidator,
	publisher events.Publisher,
	log *zap.Logger,
) *TaxonomyService {
	return &TaxonomyService{
		types:     types,
		topics:    topics,
		rules:     rules,
		actions:   actions,
		audit:     audit,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// afterMutation runs the shared write-path side effects: audit append,
// cache invalidation, change event. The primary mutation has already
// committed; an audit failure is still returned so the caller sees it.
func (s *TaxonomyService) afterMutation(ctx context.Context, actor, verb, description string, metadata map[string]any) error {
	s.cache.Invalidate(ctx)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.StreamConvention, events.Event{
			Type:    events.EventTaxonomyChanged,
			Payload: map[string]any{"verb": verb},
		}); err != nil {
			s.log.Warn("taxonomy event publish failed", zap.Error(err))
		}
	}

	err := s.audit.Append(ctx, &models.ActivityLog{
		ActorName:   actor,
		ActionType:  models.ActionSettingConvention,
		Description: description,
		Metadata:    metadata,
	})
	if err != nil {
		return fmt.Errorf("change saved but activity log append failed: %w", err)
	}
	return nil
}

// Types

func (s *TaxonomyService) ListTypes(ctx context.Context) ([]models.ConventionType, error) {
	return s.types.List(ctx)
}

func (s *TaxonomyService) CreateType(ctx context.Context, actor, value, label string, sortOrder int) (*models.ConventionType, error) {
	if value == "" {
		return nil, fmt.Errorf("%w: value is required", models.ErrValidation)
	}
	if label == "" {
		return nil, fmt.Errorf("%w: label is required", models.ErrValidation)
	}

	t := &models.ConventionType{Value: value, Label: label, SortOrder: sortOrder}
	if err := s.types.Create(ctx, t); err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("%s type %q (%s)", models.SettingVerbAdd, t.Label, t.Value)
	return t, s.afterMutation(ctx, actor, models.SettingVerbAdd, desc, map[string]any{"type_id": t.ID})
}

func (s *TaxonomyService) UpdateType(ctx context.Context, actor string, id uuid.UUID, p repositories.TypePatch) (*models.ConventionType, error) {
	t, err := s.types.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("%s type %q (%s)", models.SettingVerbEdit, t.Label, t.Value)
	return t, s.afterMutation(ctx, actor, models.SettingVerbEdit, desc, map[string]any{"type_id": t.ID})
}

func (s *TaxonomyService) DeleteType(ctx context.Context, actor string, id uuid.UUID) error {
	t, err := s.types.GetByID(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.types.CountTopics(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d topic(s) still use type %q", models.ErrInUse, n, t.Value)
	}
	if err := s.types.Delete(ctx, id); err != nil {
		return err
	}

	desc := fmt.Sprintf("%s type %q (%s)", models.SettingVerbDelete, t.Label, t.Value)
	return s.afterMutation(ctx, actor, models.SettingVerbDelete, desc, map[string]any{"type_id": t.ID})
}

// Topics

func (s *TaxonomyService) ListTopics(ctx context.Context) ([]models.Topic, error) {
	return s.topics.List(ctx)
}

func (s *TaxonomyService) CreateTopic(ctx context.Context, actor, title string, typeID uuid.UUID, sortOrder int) (*models.Topic, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrValidation)
	}
	if typeID == uuid.Nil {
		return nil, fmt.Errorf("%w: type_id is required", models.ErrValidation)
	}
	if _, err := s.types.GetByID(ctx, typeID); err != nil {
		return nil, fmt.Errorf("%w: type %s does not exist", models.ErrInvalidReference, typeID)
	}

	t := &models.Topic{Title: title, TypeID: typeID, SortOrder: sortOrder}
	if err := s.topics.Create(ctx, t); err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("%s topic %q", models.SettingVerbAdd, t.Title)
	return t, s.afterMutation(ctx, actor, models.SettingVerbAdd, desc, map[string]any{"topic_id": t.ID})
}

func (s *TaxonomyService) UpdateTopic(ctx context.Context, actor string, id uuid.UUID, p repositories.TopicPatch) (*models.Topic, error) {
	if p.TypeID != nil {
		if _, err := s.types.GetByID(ctx, *p.TypeID); err != nil {
			return nil, fmt.Errorf("%w: type %s does not exist", models.ErrInvalidReference, *p.TypeID)
		}
	}

	t, err := s.topics.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("%s topic %q", models.SettingVerbEdit, t.Title)
	return t, s.afterMutation(ctx, actor, models.SettingVerbEdit, desc, map[string]any{"topic_id": t.ID})
}

// DeleteTopic blocks while any rule, action or convention log references
// the topic, mirroring the type-deletion policy.
func (s *TaxonomyService) DeleteTopic(ctx context.Context, actor string, id uuid.UUID) error {
	t, err := s.topics.GetByID(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.topics.CountDependents(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d dependent row(s) still reference topic %q", models.ErrInUse, n, t.Title)
	}
	if err := s.topics.Delete(ctx, id); err != nil {
		return err
	}

	desc := fmt.Sprintf("%s topic %q", models.SettingVerbDelete, t.Title)
	return s.afterMutation(ctx, actor, models.SettingVerbDelete, desc, map[string]any{"topic_id": t.ID})
}

// Rules

func (s *TaxonomyService) ListRules(ctx context.Context) ([]models.ConventionRule, error) {
	return s.rules.List(ctx)
}

func (s *TaxonomyService) CreateRule(ctx context.Context, actor string, topicID uuid.UUID, ruleText string, sortOrder int) (*models.ConventionRule, error) {
	if ruleText == "" {
		return nil, fmt.Errorf("%w: rule_text is required", models.ErrValidation)
	}
	if topicID == uuid.Nil {
		return nil, fmt.Errorf("%w: topic_id is required", models.ErrValidation)
	}
	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("%w: topic %s does not exist", models.ErrInvalidReference, topicID)
	}

	r := &models.ConventionRule{TopicID: topicID, RuleText: ruleText, SortOrder: sortOrder}
	if err := s.rules.Create(ctx, r); err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("%s rule under topic %q", models.SettingVerbAdd, topic.Title)
	return r, s.afterMutation(ctx, actor, models.SettingVerbAdd, desc, map[string]any{"rule_id": r.ID})
}

func (s *TaxonomyService) UpdateRule(ctx context.Context, actor string, id uuid.UUID, p repositories.RulePatch) (*models.ConventionRule, error) {
	if p.TopicID != nil {
		if _, err := s.topics.GetByID(ctx, *p.TopicID); err != nil {
			return nil, fmt.Errorf("%w: topic %s does not exist", models.ErrInvalidReference, *p.TopicID)
		}
	}

	r, err := s.rules.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("%s rule %s", models.SettingVerbEdit, r.ID)
	return r, s.afterMutation(ctx, actor, models.SettingVerbEdit, desc, map[string]any{"rule_id": r.ID})
}

func (s *TaxonomyService) DeleteRule(ctx context.Context, actor string, id uuid.UUID) error {
	r, err := s.rules.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.rules.Delete(ctx, id); err != nil {
		return err
	}

	desc := fmt.Sprintf("%s rule %s", models.SettingVerbDelete, r.ID)
	return s.afterMutation(ctx, actor, models.SettingVerbDelete, desc, map[string]any{"rule_id": r.ID})
}

// Actions

func (s *TaxonomyService) ListActions(ctx context.Context) ([]models.ActionRule, error) {
	return s.actions.List(ctx)
}

// CreateAction derives the stored value from the label; callers cannot
// supply one.
func (s *TaxonomyService) CreateAction(ctx context.Context, actor string, topicID uuid.UUID, label string, sortOrder int) (*models.ActionRule, error) {
	if label == "" {
		return nil, fmt.Errorf("%w: label is required", models.ErrValidation)
	}
	if topicID == uuid.Nil {
		return nil, fmt.Errorf("%w: topic_id is required", models.ErrValidation)
	}
	if _, err := s.topics.GetByID(ctx, topicID); err != nil {
		return nil, fmt.Errorf("%w: topic %s does not exist", models.ErrInvalidReference, topicID)
	}

	a := &models.ActionRule{
		TopicID:   topicID,
		Label:     label,
		Value:     models.LabelToSlug(label),
		SortOrder: sortOrder,
	}
	if err := s.actions.Create(ctx, a); err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("%s action %q", models.SettingVerbAdd, a.Label)
	return a, s.afterMutation(ctx, actor, models.SettingVerbAdd, desc, map[string]any{"action_id": a.ID})
}

func (s *TaxonomyService) UpdateAction(ctx context.Context, actor string, id uuid.UUID, p repositories.ActionPatch) (*models.ActionRule, error) {
	if p.TopicID != nil {
		if _, err := s.topics.GetByID(ctx, *p.TopicID); err != nil {
			return nil, fmt.Errorf("%w: topic %s does not exist", models.ErrInvalidReference, *p.TopicID)
		}
	}
	// Value follows the label, always.
	if p.Label != nil {
		v := models.LabelToSlug(*p.Label)
		p.Value = &v
	} else {
		p.Value = nil
	}

	a, err := s.actions.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("%s action %q", models.SettingVerbEdit, a.Label)
	return a, s.afterMutation(ctx, actor, models.SettingVerbEdit, desc, map[string]any{"action_id": a.ID})
}

func (s *TaxonomyService) DeleteAction(ctx context.Context, actor string, id uuid.UUID) error {
	a, err := s.actions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.actions.CountLogs(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d convention log(s) still reference action %q", models.ErrInUse, n, a.Label)
	}
	if err := s.actions.Delete(ctx, id); err != nil {
		return err
	}

	desc := fmt.Sprintf("%s action %q", models.SettingVerbDelete, a.Label)
	return s.afterMutation(ctx, actor, models.SettingVerbDelete, desc, map[string]any{"action_id": a.ID})
}
