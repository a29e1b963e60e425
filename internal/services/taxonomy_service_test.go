package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/frontend-dashboard/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeTypeStore struct {
	types      map[uuid.UUID]*models.ConventionType
	topicCount map[uuid.UUID]int
}

func newFakeTypeStore() *fakeTypeStore {
	return &fakeTypeStore{
		types:      make(map[uuid.UUID]*models.ConventionType),
		topicCount: make(map[uuid.UUID]int),
	}
}

func (f *fakeTypeStore) List(_ context.Context) ([]models.ConventionType, error) {
	out := []models.ConventionType{}
	for _, t := range f.types {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTypeStore) GetByID(_ context.Context, id uuid.UUID) (*models.ConventionType, error) {
	t, ok := f.types[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return t, nil
}

func (f *fakeTypeStore) Create(_ context.Context, t *models.ConventionType) error {
	for _, ex := range f.types {
		if ex.Value == t.Value {
			return models.ErrDuplicateValue
		}
	}
	t.ID = uuid.New()
	cp := *t
	f.types[t.ID] = &cp
	return nil
}

func (f *fakeTypeStore) Update(_ context.Context, id uuid.UUID, p repositories.TypePatch) (*models.ConventionType, error) {
	t, ok := f.types[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if p.Value != nil {
		t.Value = *p.Value
	}
	if p.Label != nil {
		t.Label = *p.Label
	}
	if p.SortOrder != nil {
		t.SortOrder = *p.SortOrder
	}
	return t, nil
}

func (f *fakeTypeStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.types[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.types, id)
	return nil
}

func (f *fakeTypeStore) CountTopics(_ context.Context, typeID uuid.UUID) (int, error) {
	return f.topicCount[typeID], nil
}

type fakeTopicStore struct {
	topics     map[uuid.UUID]*models.Topic
	dependents map[uuid.UUID]int
}

func newFakeTopicStore() *fakeTopicStore {
	return &fakeTopicStore{
		topics:     make(map[uuid.UUID]*models.Topic),
		dependents: make(map[uuid.UUID]int),
	}
}

func (f *fakeTopicStore) List(_ context.Context) ([]models.Topic, error) {
	out := []models.Topic{}
	for _, t := range f.topics {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTopicStore) GetByID(_ context.Context, id uuid.UUID) (*models.Topic, error) {
	t, ok := f.topics[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return t, nil
}

func (f *fakeTopicStore) Create(_ context.Context, t *models.Topic) error {
	t.ID = uuid.New()
	cp := *t
	f.topics[t.ID] = &cp
	return nil
}

func (f *fakeTopicStore) Update(_ context.Context, id uuid.UUID, p repositories.TopicPatch) (*models.Topic, error) {
	t, ok := f.topics[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.TypeID != nil {
		t.TypeID = *p.TypeID
	}
	if p.SortOrder != nil {
		t.SortOrder = *p.SortOrder
	}
	return t, nil
}

func (f *fakeTopicStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.topics[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.topics, id)
	return nil
}

func (f *fakeTopicStore) CountDependents(_ context.Context, topicID uuid.UUID) (int, error) {
	return f.dependents[topicID], nil
}

type fakeRuleStore struct {
	rules map[uuid.UUID]*models.ConventionRule
}

func newFakeRuleStore() *fakeRuleStore {
	return &fakeRuleStore{rules: make(map[uuid.UUID]*models.ConventionRule)}
}

func (f *fakeRuleStore) List(_ context.Context) ([]models.ConventionRule, error) {
	out := []models.ConventionRule{}
	for _, r := range f.rules {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRuleStore) GetByID(_ context.Context, id uuid.UUID) (*models.ConventionRule, error) {
	r, ok := f.rules[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return r, nil
}

func (f *fakeRuleStore) Create(_ context.Context, r *models.ConventionRule) error {
	r.ID = uuid.New()
	cp := *r
	f.rules[r.ID] = &cp
	return nil
}

func (f *fakeRuleStore) Update(_ context.Context, id uuid.UUID, p repositories.RulePatch) (*models.ConventionRule, error) {
	r, ok := f.rules[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if p.TopicID != nil {
		r.TopicID = *p.TopicID
	}
	if p.RuleText != nil {
		r.RuleText = *p.RuleText
	}
	if p.SortOrder != nil {
		r.SortOrder = *p.SortOrder
	}
	return r, nil
}

func (f *fakeRuleStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.rules[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.rules, id)
	return nil
}

type fakeActionStore struct {
	actions  map[uuid.UUID]*models.ActionRule
	logCount map[uuid.UUID]int
}

func newFakeActionStore() *fakeActionStore {
	return &fakeActionStore{
		actions:  make(map[uuid.UUID]*models.ActionRule),
		logCount: make(map[uuid.UUID]int),
	}
}

func (f *fakeActionStore) List(_ context.Context) ([]models.ActionRule, error) {
	out := []models.ActionRule{}
	for _, a := range f.actions {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeActionStore) GetByID(_ context.Context, id uuid.UUID) (*models.ActionRule, error) {
	a, ok := f.actions[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return a, nil
}

func (f *fakeActionStore) Create(_ context.Context, a *models.ActionRule) error {
	a.ID = uuid.New()
	cp := *a
	f.actions[a.ID] = &cp
	return nil
}

func (f *fakeActionStore) Update(_ context.Context, id uuid.UUID, p repositories.ActionPatch) (*models.ActionRule, error) {
	a, ok := f.actions[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if p.TopicID != nil {
		a.TopicID = *p.TopicID
	}
	if p.Label != nil {
		a.Label = *p.Label
	}
	if p.Value != nil {
		a.Value = *p.Value
	}
	if p.SortOrder != nil {
		a.SortOrder = *p.SortOrder
	}
	return a, nil
}

func (f *fakeActionStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.actions[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.actions, id)
	return nil
}

func (f *fakeActionStore) CountLogs(_ context.Context, actionID uuid.UUID) (int, error) {
	return f.logCount[actionID], nil
}

type taxonomyFixture struct {
	svc     *TaxonomyService
	types   *fakeTypeStore
	topics  *fakeTopicStore
	rules   *fakeRuleStore
	actions *fakeActionStore
	audit   *fakeAudit
	cache   *fakeCache
}

func newTaxonomyFixture(t *testing.T) *taxonomyFixture {
	t.Helper()
	f := &taxonomyFixture{
		types:   newFakeTypeStore(),
		topics:  newFakeTopicStore(),
		rules:   newFakeRuleStore(),
		actions: newFakeActionStore(),
		audit:   &fakeAudit{},
		cache:   &fakeCache{},
	}
	f.svc = NewTaxonomyService(f.types, f.topics, f.rules, f.actions, f.audit, f.cache, &fakePublisher{}, zap.NewNop())
	return f
}

func (f *taxonomyFixture) lastAudit(t *testing.T) models.ActivityLog {
	t.Helper()
	if len(f.audit.entries) == 0 {
		t.Fatal("no audit entries recorded")
	}
	return f.audit.entries[len(f.audit.entries)-1]
}

func TestCreateTypeAuditsWithAddVerb(t *testing.T) {
	f := newTaxonomyFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateType(ctx, "somchai", "frontend", "Frontend", 1)
	if err != nil {
		t.Fatalf("CreateType() error = %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("created type has no id")
	}

	e := f.lastAudit(t)
	if e.ActionType != models.ActionSettingConvention {
		t.Errorf("audit action = %q, want %q", e.ActionType, models.ActionSettingConvention)
	}
	if !models.MatchesSettingVerb(e.Description, models.SettingVerbAdd) {
		t.Errorf("description %q should start with the add verb", e.Description)
	}
	if f.cache.invalidations != 1 {
		t.Errorf("cache invalidations = %d, want 1", f.cache.invalidations)
	}
}

func TestCreateTypeValidation(t *testing.T) {
	f := newTaxonomyFixture(t)
	ctx := context.Background()

	if _, err := f.svc.CreateType(ctx, "somchai", "", "Frontend", 0); !errors.Is(err, models.ErrValidation) {
		t.Errorf("empty value: error = %v, want ErrValidation", err)
	}
	if _, err := f.svc.CreateType(ctx, "somchai", "frontend", "", 0); !errors.Is(err, models.ErrValidation) {
		t.Errorf("empty label: error = %v, want ErrValidation", err)
	}

	if _, err := f.svc.CreateType(ctx, "somchai", "frontend", "Frontend", 0); err != nil {
		t.Fatalf("CreateType() error = %v", err)
	}
	if _, err := f.svc.CreateType(ctx, "somchai", "frontend", "Frontend Again", 0); !errors.Is(err, models.ErrDuplicateValue) {
		t.Errorf("duplicate value: error = %v, want ErrDuplicateValue", err)
	}
}

func TestDeleteTypeBlockedWhileInUse(t *testing.T) {
	f := newTaxonomyFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateType(ctx, "somchai", "frontend", "Frontend", 0)
	if err != nil {
		t.Fatalf("CreateType() error = %v", err)
	}

	f.types.topicCount[created.ID] = 2
	if err := f.svc.DeleteType(ctx, "somchai", created.ID); !errors.Is(err, models.ErrInUse) {
		t.Fatalf("DeleteType() with topics error = %v, want ErrInUse", err)
	}
	if _, ok := f.types.types[created.ID]; !ok {
		t.Fatal("blocked delete removed the type")
	}

	f.types.topicCount[created.ID] = 0
	if err := f.svc.DeleteType(ctx, "somchai", created.ID); err != nil {
		t.Fatalf("DeleteType() error = %v", err)
	}

	e := f.lastAudit(t)
	if !models.MatchesSettingVerb(e.Description, models.SettingVerbDelete) {
		t.Errorf("description %q should start with the delete verb", e.Description)
	}
}

func TestCreateTopicRequiresExistingType(t *testing.T) {
	f := newTaxonomyFixture(t)
	ctx := context.Background()

	if _, err := f.svc.CreateTopic(ctx, "somchai", "Naming", uuid.New(), 0); !errors.Is(err, models.ErrInvalidReference) {
		t.Errorf("unknown type: error = %v, want ErrInvalidReference", err)
	}

	typ, err := f.svc.CreateType(ctx, "somchai", "frontend", "Frontend", 0)
	if err != nil {
		t.Fatalf("CreateType() error = %v", err)
	}
	topic, err := f.svc.CreateTopic(ctx, "somchai", "Naming", typ.ID, 0)
	if err != nil {
		t.Fatalf("CreateTopic() error = %v", err)
	}
	if topic.TypeID != typ.ID {
		t.Errorf("topic type = %s, want %s", topic.TypeID, typ.ID)
	}
}

func TestDeleteTopicBlockedWhileInUse(t *testing.T) {
	f := newTaxonomyFixture(t)
	ctx := context.Background()

	typ, _ := f.svc.CreateType(ctx, "somchai", "frontend", "Frontend", 0)
	topic, err := f.svc.CreateTopic(ctx, "somchai", "Naming", typ.ID, 0)
	if err != nil {
		t.Fatalf("CreateTopic() error = %v", err)
	}

	f.topics.dependents[topic.ID] = 1
	if err := f.svc.DeleteTopic(ctx, "somchai", topic.ID); !errors.Is(err, models.ErrInUse) {
		t.Errorf("DeleteTopic() with dependents error = %v, want ErrInUse", err)
	}

	f.topics.dependents[topic.ID] = 0
	if err := f.svc.DeleteTopic(ctx, "somchai", topic.ID); err != nil {
		t.Errorf("DeleteTopic() error = %v", err)
	}
}

func TestCreateActionDerivesValueFromLabel(t *testing.T) {
	f := newTaxonomyFixture(t)
	ctx := context.Background()

	typ, _ := f.svc.CreateType(ctx, "somchai", "frontend", "Frontend", 0)
	topic, _ := f.svc.CreateTopic(ctx, "somchai", "Naming", typ.ID, 0)

	a, err := f.svc.CreateAction(ctx, "somchai", topic.ID, "Use Kebab Case!", 0)
	if err != nil {
		t.Fatalf("CreateAction() error = %v", err)
	}
	if a.Value != "use_kebab_case" {
		t.Errorf("derived value = %q, want use_kebab_case", a.Value)
	}

	// Editing the label re-derives the value.
	label := "Prefer CamelCase"
	updated, err := f.svc.UpdateAction(ctx, "somchai", a.ID, repositories.ActionPatch{Label: &label})
	if err != nil {
		t.Fatalf("UpdateAction() error = %v", err)
	}
	if updated.Value != "prefer_camelcase" {
		t.Errorf("re-derived value = %q, want prefer_camelcase", updated.Value)
	}
}

func TestDeleteActionBlockedWhileLogsReferenceIt(t *testing.T) {
	f := newTaxonomyFixture(t)
	ctx := context.Background()

	typ, _ := f.svc.CreateType(ctx, "somchai", "frontend", "Frontend", 0)
	topic, _ := f.svc.CreateTopic(ctx, "somchai", "Naming", typ.ID, 0)
	a, _ := f.svc.CreateAction(ctx, "somchai", topic.ID, "Use kebab case", 0)

	f.actions.logCount[a.ID] = 3
	err := f.svc.DeleteAction(ctx, "somchai", a.ID)
	if !errors.Is(err, models.ErrInUse) {
		t.Fatalf("DeleteAction() error = %v, want ErrInUse", err)
	}
	if !strings.Contains(err.Error(), "3") {
		t.Errorf("error %q should mention the referencing log count", err.Error())
	}
}

func TestRuleLifecycle(t *testing.T) {
	f := newTaxonomyFixture(t)
	ctx := context.Background()

	typ, _ := f.svc.CreateType(ctx, "somchai", "frontend", "Frontend", 0)
	topic, _ := f.svc.CreateTopic(ctx, "somchai", "Naming", typ.ID, 0)

	if _, err := f.svc.CreateRule(ctx, "somchai", topic.ID, "", 0); !errors.Is(err, models.ErrValidation) {
		t.Errorf("empty text: error = %v, want ErrValidation", err)
	}
	if _, err := f.svc.CreateRule(ctx, "somchai", uuid.New(), "Components use kebab-case files", 0); !errors.Is(err, models.ErrInvalidReference) {
		t.Errorf("unknown topic: error = %v, want ErrInvalidReference", err)
	}

	r, err := f.svc.CreateRule(ctx, "somchai", topic.ID, "Components use kebab-case files", 0)
	if err != nil {
		t.Fatalf("CreateRule() error = %v", err)
	}
	if err := f.svc.DeleteRule(ctx, "somchai", r.ID); err != nil {
		t.Fatalf("DeleteRule() error = %v", err)
	}
	if len(f.rules.rules) != 0 {
		t.Errorf("rule store has %d rows after delete, want 0", len(f.rules.rules))
	}
}

func TestMutationAuditFailureSurfaced(t *testing.T) {
	f := newTaxonomyFixture(t)
	f.audit.appendErr = errors.New("audit table unavailable")
	ctx := context.Background()

	created, err := f.svc.CreateType(ctx, "somchai", "frontend", "Frontend", 0)
	if err == nil {
		t.Fatal("CreateType() should surface the audit append failure")
	}
	// The taxonomy row itself was committed before the append failed.
	if created == nil || created.ID == uuid.Nil {
		t.Fatal("type should still be returned with its id")
	}
	if _, ok := f.types.types[created.ID]; !ok {
		t.Error("type row should remain after audit failure")
	}
}
