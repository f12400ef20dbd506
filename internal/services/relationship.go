package services

import (
	"context"
	"time"

	"github.com/triptrizz/triptrizz-server/internal/errs"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"github.com/triptrizz/triptrizz-server/internal/repository"
	"github.com/triptrizz/triptrizz-server/pkg/logger"
	"github.com/triptrizz/triptrizz-server/pkg/queue"
	"gorm.io/gorm"
)

// RelationshipService owns the follow request / accept / block lifecycle.
type RelationshipService struct {
	db        *gorm.DB
	relRepo   *repository.RelationshipRepository
	blockRepo *repository.BlockRepository
	userRepo  *repository.UserRepository
	producer  queue.Publisher
	logger    *logger.Logger
}

func NewRelationshipService(
	db *gorm.DB,
	relRepo *repository.RelationshipRepository,
	blockRepo *repository.BlockRepository,
	userRepo *repository.UserRepository,
	producer queue.Publisher,
	logger *logger.Logger,
) *RelationshipService {
	return &RelationshipService{
		db:        db,
		relRepo:   relRepo,
		blockRepo: blockRepo,
		userRepo:  userRepo,
		producer:  producer,
		logger:    logger,
	}
}

func (s *RelationshipService) SendFollowRequest(ctx context.Context, followerID, followingID string) (*models.FollowRelationship, error) {
	if followerID == followingID {
		return nil, errs.InvalidArgument("cannot follow yourself")
	}

	target, err := s.userRepo.GetByID(ctx, followingID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if target == nil || !target.IsActive {
		return nil, errs.NotFound("user not found")
	}

	blocked, err := s.blockRepo.ExistsBetween(ctx, followerID, followingID, models.BlockContextAll)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if blocked {
		return nil, errs.Forbidden("interaction with this user is not allowed")
	}

	existing, err := s.relRepo.Get(ctx, followerID, followingID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if existing != nil {
		return nil, errs.Conflict("follow request already exists")
	}

	rel := &models.FollowRelationship{
		FollowerID:  followerID,
		FollowingID: followingID,
		Status:      models.RelationshipPending,
	}
	if err := s.relRepo.Create(ctx, rel); err != nil {
		return nil, errs.Internal(err)
	}

	s.publish(ctx, followerID, queue.Event{
		Type:      queue.EventFollowRequested,
		Timestamp: time.Now(),
		Data:      queue.FollowEventData{FollowerID: followerID, FollowingID: followingID},
	})

	s.logger.WithFields(map[string]interface{}{
		"follower_id":  followerID,
		"following_id": followingID,
	}).Info("Follow request sent")

	return rel, nil
}

// AcceptFollowRequest flips the pending row and bumps both follower counters
// in one transaction. Only the request's target may accept.
func (s *RelationshipService) AcceptFollowRequest(ctx context.Context, actorID, followerID, followingID string) (*models.FollowRelationship, error) {
	if actorID != followingID {
		return nil, errs.Forbidden("only the request's target may accept it")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.relRepo.WithTx(tx).UpdateStatus(ctx, followerID, followingID,
			models.RelationshipPending, models.RelationshipAccepted)
		if err != nil {
			return errs.Internal(err)
		}
		if rows == 0 {
			return errs.NotFound("no pending follow request")
		}
		users := s.userRepo.WithTx(tx)
		if err := users.UpdateFollowerCount(ctx, followingID, 1); err != nil {
			return errs.Internal(err)
		}
		if err := users.UpdateFollowingCount(ctx, followerID, 1); err != nil {
			return errs.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rel, err := s.relRepo.Get(ctx, followerID, followingID)
	if err != nil {
		return nil, errs.Internal(err)
	}

	s.publish(ctx, followerID, queue.Event{
		Type:      queue.EventFollowAccepted,
		Timestamp: time.Now(),
		Data:      queue.FollowEventData{FollowerID: followerID, FollowingID: followingID},
	})

	s.logger.WithFields(map[string]interface{}{
		"follower_id":  followerID,
		"following_id": followingID,
	}).Info("Follow request accepted")

	return rel, nil
}

// RejectFollowRequest deletes the pending row; only the target may reject.
func (s *RelationshipService) RejectFollowRequest(ctx context.Context, actorID, followerID, followingID string) error {
	if actorID != followingID {
		return errs.Forbidden("only the request's target may reject it")
	}
	return s.deletePending(ctx, followerID, followingID)
}

// CancelFollowRequest deletes the pending row; only the sender may cancel.
func (s *RelationshipService) CancelFollowRequest(ctx context.Context, actorID, followerID, followingID string) error {
	if actorID != followerID {
		return errs.Forbidden("only the request's sender may cancel it")
	}
	return s.deletePending(ctx, followerID, followingID)
}

func (s *RelationshipService) deletePending(ctx context.Context, followerID, followingID string) error {
	rel, err := s.relRepo.Get(ctx, followerID, followingID)
	if err != nil {
		return errs.Internal(err)
	}
	if rel == nil || rel.Status != models.RelationshipPending {
		return errs.NotFound("no pending follow request")
	}
	if _, err := s.relRepo.Delete(ctx, followerID, followingID); err != nil {
		return errs.Internal(err)
	}
	return nil
}

// Unfollow deletes an accepted row. A pending request is not a follow; it is
// withdrawn through CancelFollowRequest instead.
func (s *RelationshipService) Unfollow(ctx context.Context, followerID, followingID string) error {
	rel, err := s.relRepo.Get(ctx, followerID, followingID)
	if err != nil {
		return errs.Internal(err)
	}
	if rel == nil || rel.Status != models.RelationshipAccepted {
		return errs.NotFound("not following this user")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.relRepo.WithTx(tx).Delete(ctx, followerID, followingID)
		if err != nil {
			return errs.Internal(err)
		}
		if rows > 0 {
			users := s.userRepo.WithTx(tx)
			if err := users.UpdateFollowerCount(ctx, followingID, -1); err != nil {
				return errs.Internal(err)
			}
			if err := users.UpdateFollowingCount(ctx, followerID, -1); err != nil {
				return errs.Internal(err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, followerID, queue.Event{
		Type:      queue.EventFollowRemoved,
		Timestamp: time.Now(),
		Data:      queue.FollowEventData{FollowerID: followerID, FollowingID: followingID},
	})

	return nil
}

// FollowStatus reads both directional rows and derives the viewer-facing
// status; the derivation itself lives in DeriveFollowStatus.
func (s *RelationshipService) FollowStatus(ctx context.Context, viewerID, targetID string) (FollowStatus, error) {
	if viewerID == targetID {
		return StatusSelf, nil
	}
	outgoing, err := s.relRepo.Get(ctx, viewerID, targetID)
	if err != nil {
		return "", errs.Internal(err)
	}
	incoming, err := s.relRepo.Get(ctx, targetID, viewerID)
	if err != nil {
		return "", errs.Internal(err)
	}
	return DeriveFollowStatus(viewerID, targetID, outgoing, incoming), nil
}

// BlockUser inserts the block row and tears down any follow relationship in
// either direction. The insert is idempotent.
func (s *RelationshipService) BlockUser(ctx context.Context, blockerID, blockedID, blockContext string) error {
	if blockerID == blockedID {
		return errs.InvalidArgument("cannot block yourself")
	}
	if blockContext == "" {
		blockContext = models.BlockContextAll
	}

	target, err := s.userRepo.GetByID(ctx, blockedID)
	if err != nil {
		return errs.Internal(err)
	}
	if target == nil {
		return errs.NotFound("user not found")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewBlockRepository(tx).Create(ctx, blockerID, blockedID, blockContext); err != nil {
			return errs.Internal(err)
		}
		if blockContext != models.BlockContextAll {
			return nil
		}
		rels := s.relRepo.WithTx(tx)
		users := s.userRepo.WithTx(tx)
		for _, pair := range [][2]string{{blockerID, blockedID}, {blockedID, blockerID}} {
			rel, err := rels.Get(ctx, pair[0], pair[1])
			if err != nil {
				return errs.Internal(err)
			}
			if rel == nil {
				continue
			}
			if _, err := rels.Delete(ctx, pair[0], pair[1]); err != nil {
				return errs.Internal(err)
			}
			if rel.Status == models.RelationshipAccepted {
				if err := users.UpdateFollowerCount(ctx, pair[1], -1); err != nil {
					return errs.Internal(err)
				}
				if err := users.UpdateFollowingCount(ctx, pair[0], -1); err != nil {
					return errs.Internal(err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"blocker_id": blockerID,
		"blocked_id": blockedID,
		"context":    blockContext,
	}).Info("User blocked")

	return nil
}

func (s *RelationshipService) UnblockUser(ctx context.Context, blockerID, blockedID, blockContext string) error {
	if blockContext == "" {
		blockContext = models.BlockContextAll
	}
	if err := s.blockRepo.Delete(ctx, blockerID, blockedID, blockContext); err != nil {
		return errs.Internal(err)
	}
	return nil
}

func (s *RelationshipService) ListFollowers(ctx context.Context, userID string, offset, limit int) ([]*models.User, error) {
	users, err := s.relRepo.ListFollowers(ctx, userID, offset, limit)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return users, nil
}

func (s *RelationshipService) ListFollowing(ctx context.Context, userID string, offset, limit int) ([]*models.User, error) {
	users, err := s.relRepo.ListFollowing(ctx, userID, offset, limit)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return users, nil
}

func (s *RelationshipService) ListPendingRequests(ctx context.Context, userID string, offset, limit int) ([]*models.FollowRelationship, error) {
	rels, err := s.relRepo.ListPendingIncoming(ctx, userID, offset, limit)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return rels, nil
}

func (s *RelationshipService) publish(ctx context.Context, key string, event queue.Event) {
	if err := s.producer.Publish(ctx, key, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish relationship event")
	}
}
