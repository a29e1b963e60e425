package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/frontend-dashboard/backend/internal/models"
	"github.com/frontend-dashboard/backend/internal/options"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const formOptionsCacheKey = "cache:form_options"

type typeLister interface {
	List(ctx context.Context) ([]models.ConventionType, error)
}

// FormOptionsService assembles the taxonomy snapshot the logging form
// renders its cascading selects from, cached in redis. Mutating services
// call Invalidate so the next read rebuilds.
type FormOptionsService struct {
	members memberLister
	types   typeLister
	topics  topicLister
	actions actionLister
	rdb     *redis.Client
	ttl     time.Duration
	log     *zap.Logger
}

func NewFormOptionsService(
	members memberLister,
	types typeLister,
	topics topicLister,
	actions actionLister,
	rdb *redis.Client,
	ttl time.Duration,
	log *zap.Logger,
) *FormOptionsService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &FormOptionsService{
		members: members,
		types:   types,
		topics:  topics,
		actions: actions,
		rdb:     rdb,
		ttl:     ttl,
		log:     log,
	}
}

// Snapshot returns the cached taxonomy snapshot, rebuilding from the
// stores on a miss. Cache failures degrade to a direct load.
func (s *FormOptionsService) Snapshot(ctx context.Context) (options.Snapshot, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, formOptionsCacheKey).Result()
		if err == nil {
			var snap options.Snapshot
			if jerr := json.Unmarshal([]byte(raw), &snap); jerr == nil {
				return snap, nil
			}
			s.log.Warn("form options cache entry unreadable, rebuilding")
		}
	}

	snap, err := s.load(ctx)
	if err != nil {
		return options.Snapshot{}, err
	}

	if s.rdb != nil {
		if data, jerr := json.Marshal(snap); jerr == nil {
			if err := s.rdb.Set(ctx, formOptionsCacheKey, data, s.ttl).Err(); err != nil {
				s.log.Warn("form options cache write failed", zap.Error(err))
			}
		}
	}
	return snap, nil
}

func (s *FormOptionsService) load(ctx context.Context) (options.Snapshot, error) {
	members, err := s.members.ListActive(ctx)
	if err != nil {
		return options.Snapshot{}, err
	}
	types, err := s.types.List(ctx)
	if err != nil {
		return options.Snapshot{}, err
	}
	topics, err := s.topics.List(ctx)
	if err != nil {
		return options.Snapshot{}, err
	}
	actions, err := s.actions.List(ctx)
	if err != nil {
		return options.Snapshot{}, err
	}
	return options.Snapshot{Members: members, Types: types, Topics: topics, Actions: actions}, nil
}

func (s *FormOptionsService) Invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, formOptionsCacheKey).Err(); err != nil {
		s.log.Warn("form options cache invalidation failed", zap.Error(err))
	}
}
