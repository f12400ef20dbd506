package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/triptrizz/triptrizz-server/internal/config"
	"github.com/triptrizz/triptrizz-server/internal/errs"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"github.com/triptrizz/triptrizz-server/internal/repository"
	"github.com/triptrizz/triptrizz-server/pkg/cache"
	"github.com/triptrizz/triptrizz-server/pkg/logger"
)

// fanoutCap bounds how many follower timelines one event is pushed to.
const fanoutCap = 1000

// ActivityService materializes the activity feed. The worker calls
// RecordEvent; the read path serves from the redis timeline and falls back to
// the store when the timeline is cold.
type ActivityService struct {
	activityRepo *repository.ActivityRepository
	relRepo      *repository.RelationshipRepository
	cache        *cache.RedisClient
	cfg          *config.FeedConfig
	logger       *logger.Logger
}

func NewActivityService(
	activityRepo *repository.ActivityRepository,
	relRepo *repository.RelationshipRepository,
	cache *cache.RedisClient,
	cfg *config.FeedConfig,
	logger *logger.Logger,
) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		relRepo:      relRepo,
		cache:        cache,
		cfg:          cfg,
		logger:       logger,
	}
}

func timelineKey(userID string) string {
	return fmt.Sprintf("timeline:%s", userID)
}

// RecordEvent persists the feed entry and pushes it onto the actor's timeline
// and each follower's timeline. Redis failures are logged, not returned: the
// DB row is the durable copy and the read path can rebuild from it.
func (s *ActivityService) RecordEvent(ctx context.Context, actorID, verb, objectKind, objectID string, occurredAt time.Time) (*models.ActivityEvent, error) {
	event := &models.ActivityEvent{
		ActorID:    actorID,
		Verb:       verb,
		ObjectKind: objectKind,
		ObjectID:   objectID,
		CreatedAt:  occurredAt,
	}
	if err := s.activityRepo.Create(ctx, event); err != nil {
		return nil, errs.Internal(err)
	}

	followerIDs, err := s.relRepo.AcceptedFollowerIDs(ctx, actorID, fanoutCap)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load followers for fanout")
		followerIDs = nil
	}

	targets := append(followerIDs, actorID)
	for _, uid := range targets {
		s.pushToTimeline(ctx, uid, event)
	}

	return event, nil
}

func (s *ActivityService) pushToTimeline(ctx context.Context, userID string, event *models.ActivityEvent) {
	key := timelineKey(userID)
	member := &redis.Z{Score: float64(event.CreatedAt.UnixNano()), Member: event.ID}
	if err := s.cache.ZAdd(ctx, key, member); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to push timeline entry")
		return
	}
	if s.cfg.MaxFeedSize > 0 {
		if err := s.cache.ZRemRangeByRank(ctx, key, 0, int64(-s.cfg.MaxFeedSize-1)); err != nil {
			s.logger.WithError(err).Error("Failed to trim timeline")
		}
	}
	if s.cfg.CacheTTL > 0 {
		if err := s.cache.Expire(ctx, key, s.cfg.CacheTTL); err != nil {
			s.logger.WithError(err).Error("Failed to refresh timeline TTL")
		}
	}
}

// GetFeed reads the viewer's timeline newest-first. A cold timeline falls
// back to a store query over the people the viewer follows.
func (s *ActivityService) GetFeed(ctx context.Context, userID string, offset, limit int) ([]*models.ActivityEvent, error) {
	ids, err := s.cache.ZRevRange(ctx, timelineKey(userID), int64(offset), int64(offset+limit-1))
	if err != nil && err != redis.Nil {
		s.logger.WithError(err).Error("Failed to read timeline from cache")
	}

	if len(ids) > 0 {
		events, err := s.activityRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, errs.Internal(err)
		}
		return events, nil
	}

	following, err := s.relRepo.ListFollowing(ctx, userID, 0, fanoutCap)
	if err != nil {
		return nil, errs.Internal(err)
	}
	actorIDs := make([]string, 0, len(following)+1)
	for _, u := range following {
		actorIDs = append(actorIDs, u.ID)
	}
	actorIDs = append(actorIDs, userID)

	events, err := s.activityRepo.ListByActors(ctx, actorIDs, offset, limit)
	if err != nil {
		return nil, errs.Internal(err)
	}

	// Warm the timeline so the next read is a cache hit.
	for _, e := range events {
		s.pushToTimeline(ctx, userID, e)
	}

	return events, nil
}
