package services

import (
	"context"
	"fmt"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/frontend-dashboard/backend/internal/repositories"
	"github.com/google/uuid"
)

type memberStore interface {
	ListActive(ctx context.Context) ([]models.Member, error)
	List(ctx context.Context) ([]models.Member, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
	GetByName(ctx context.Context, name string) (*models.Member, error)
	Create(ctx context.Context, m *models.Member) error
	Update(ctx context.Context, id uuid.UUID, p repositories.MemberPatch) (*models.Member, error)
}

// MemberService manages the team directory. Members are never deleted;
// deactivation hides them from selection while keeping historical logs
// resolvable.
type MemberService struct {
	members memberStore
	audit   auditStore
	cache   cacheInvalidator
}

func NewMemberService(members memberStore, audit auditStore, cache cacheInvalidator) *MemberService {
	return &MemberService{members: members, audit: audit, cache: cache}
}

func (s *MemberService) ListActive(ctx context.Context) ([]models.Member, error) {
	return s.members.ListActive(ctx)
}

func (s *MemberService) List(ctx context.Context) ([]models.Member, error) {
	return s.members.List(ctx)
}

func (s *MemberService) Create(ctx context.Context, actor, name string, email *string) (*models.Member, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrValidation)
	}

	m := &models.Member{Name: name, Email: email, IsActive: true}
	if err := s.members.Create(ctx, m); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	err := s.audit.Append(ctx, &models.ActivityLog{
		ActorName:   actor,
		ActionType:  models.ActionSettingConvention,
		Description: fmt.Sprintf("%s member %q", models.SettingVerbAdd, m.Name),
		Metadata:    map[string]any{"member_id": m.ID},
	})
	if err != nil {
		return nil, fmt.Errorf("member saved but activity log append failed: %w", err)
	}
	return m, nil
}

func (s *MemberService) Update(ctx context.Context, actor string, id uuid.UUID, p repositories.MemberPatch) (*models.Member, error) {
	m, err := s.members.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	err = s.audit.Append(ctx, &models.ActivityLog{
		ActorName:   actor,
		ActionType:  models.ActionSettingConvention,
		Description: fmt.Sprintf("%s member %q", models.SettingVerbEdit, m.Name),
		Metadata:    map[string]any{"member_id": m.ID},
	})
	if err != nil {
		return nil, fmt.Errorf("member saved but activity log append failed: %w", err)
	}
	return m, nil
}

// Login is the name-based sign-in: the name must belong to an active
// member. There is no password; this is identification, not security.
func (s *MemberService) Login(ctx context.Context, name string) (*models.Member, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	m, err := s.members.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return nil, fmt.Errorf("%w: member %q is inactive", models.ErrNotFound, name)
	}
	return m, nil
}
