package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/frontend-dashboard/backend/internal/events"
	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/frontend-dashboard/backend/internal/repositories"
	"github.com/google/uuid"
)

// In-memory fakes for the narrow store interfaces the services consume.

type fakeLogStore struct {
	logs      map[uuid.UUID]*models.ConventionLog
	names     map[uuid.UUID]string // member id -> display name
	createErr error
}

func newFakeLogStore() *fakeLogStore {
	return &fakeLogStore{
		logs:  make(map[uuid.UUID]*models.ConventionLog),
		names: make(map[uuid.UUID]string),
	}
}

func (f *fakeLogStore) Create(_ context.Context, l *models.ConventionLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	l.ID = uuid.New()
	cp := *l
	f.logs[l.ID] = &cp
	return nil
}

func (f *fakeLogStore) Update(_ context.Context, l *models.ConventionLog) error {
	if _, ok := f.logs[l.ID]; !ok {
		return models.ErrNotFound
	}
	cp := *l
	f.logs[l.ID] = &cp
	return nil
}

func (f *fakeLogStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.logs[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.logs, id)
	return nil
}

func (f *fakeLogStore) GetByID(_ context.Context, id uuid.UUID) (*models.ConventionLog, error) {
	l, ok := f.logs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLogStore) GetDetails(_ context.Context, id uuid.UUID) (*models.ConventionLogWithDetails, error) {
	l, ok := f.logs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	d := models.ConventionLogWithDetails{ConventionLog: *l}
	if name, ok := f.names[l.MemberID]; ok {
		d.MemberName = &name
	}
	return &d, nil
}

func (f *fakeLogStore) Latest(_ context.Context, n int) ([]models.ConventionLogWithDetails, error) {
	out := []models.ConventionLogWithDetails{}
	for _, l := range f.logs {
		if len(out) == n {
			break
		}
		out = append(out, models.ConventionLogWithDetails{ConventionLog: *l})
	}
	return out, nil
}

func (f *fakeLogStore) ByDateRange(_ context.Context, filter repositories.LogFilter) ([]models.ConventionLogWithDetails, error) {
	out := []models.ConventionLogWithDetails{}
	for _, l := range f.logs {
		if l.LogDate.Before(filter.Start) || l.LogDate.After(filter.End) {
			continue
		}
		if filter.MemberID != nil && l.MemberID != *filter.MemberID {
			continue
		}
		out = append(out, models.ConventionLogWithDetails{ConventionLog: *l})
	}
	return out, nil
}

type fakeSummary struct {
	mu     sync.Mutex
	counts map[uuid.UUID]int
}

func newFakeSummary() *fakeSummary {
	return &fakeSummary{counts: make(map[uuid.UUID]int)}
}

func (f *fakeSummary) Adjust(_ context.Context, memberID uuid.UUID, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.counts[memberID] + delta
	if n < 0 {
		n = 0
	}
	f.counts[memberID] = n
	return nil
}

func (f *fakeSummary) Counts(_ context.Context) (map[uuid.UUID]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[uuid.UUID]int, len(f.counts))
	for k, v := range f.counts {
		out[k] = v
	}
	return out, nil
}

type fakeMembers struct {
	members map[uuid.UUID]*models.Member
}

func newFakeMembers(members ...*models.Member) *fakeMembers {
	f := &fakeMembers{members: make(map[uuid.UUID]*models.Member)}
	for _, m := range members {
		f.members[m.ID] = m
	}
	return f
}

func (f *fakeMembers) GetByID(_ context.Context, id uuid.UUID) (*models.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return m, nil
}

func (f *fakeMembers) GetByName(_ context.Context, name string) (*models.Member, error) {
	for _, m := range f.members {
		if m.Name == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: member %q", models.ErrNotFound, name)
}

func (f *fakeMembers) ListActive(_ context.Context) ([]models.Member, error) {
	out := []models.Member{}
	for _, m := range f.members {
		if m.IsActive {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMembers) List(_ context.Context) ([]models.Member, error) {
	out := []models.Member{}
	for _, m := range f.members {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMembers) Create(_ context.Context, m *models.Member) error {
	m.ID = uuid.New()
	cp := *m
	f.members[m.ID] = &cp
	return nil
}

func (f *fakeMembers) Update(_ context.Context, id uuid.UUID, p repositories.MemberPatch) (*models.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Email != nil {
		m.Email = p.Email
	}
	if p.IsActive != nil {
		m.IsActive = *p.IsActive
	}
	return m, nil
}

type fakeTopicLister struct{ topics []models.Topic }

func (f *fakeTopicLister) List(_ context.Context) ([]models.Topic, error) {
	return f.topics, nil
}

type fakeActionLister struct{ actions []models.ActionRule }

func (f *fakeActionLister) List(_ context.Context) ([]models.ActionRule, error) {
	return f.actions, nil
}

type fakeAudit struct {
	entries   []models.ActivityLog
	appendErr error
}

func (f *fakeAudit) Append(_ context.Context, e *models.ActivityLog) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, *e)
	return nil
}

type fakePublisher struct{ published []events.Event }

func (f *fakePublisher) Publish(_ context.Context, _ string, event events.Event) error {
	f.published = append(f.published, event)
	return nil
}

type fakeCache struct{ invalidations int }

func (f *fakeCache) Invalidate(_ context.Context) { f.invalidations++ }
