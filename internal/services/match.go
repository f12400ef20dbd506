package services

import (
	"context"
	"time"

	"github.com/triptrizz/triptrizz-server/internal/errs"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"github.com/triptrizz/triptrizz-server/internal/repository"
	"github.com/triptrizz/triptrizz-server/pkg/logger"
	"github.com/triptrizz/triptrizz-server/pkg/queue"
)

// MatchService owns the swipe lifecycle: none → pending → accepted/rejected,
// with conversation provisioning on the mutual swipe.
type MatchService struct {
	matchRepo *repository.MatchRepository
	chatRepo  *repository.ChatRepository
	blockRepo *repository.BlockRepository
	userRepo  *repository.UserRepository
	producer  queue.Publisher
	logger    *logger.Logger
}

func NewMatchService(
	matchRepo *repository.MatchRepository,
	chatRepo *repository.ChatRepository,
	blockRepo *repository.BlockRepository,
	userRepo *repository.UserRepository,
	producer queue.Publisher,
	logger *logger.Logger,
) *MatchService {
	return &MatchService{
		matchRepo: matchRepo,
		chatRepo:  chatRepo,
		blockRepo: blockRepo,
		userRepo:  userRepo,
		producer:  producer,
		logger:    logger,
	}
}

type SwipeResult struct {
	Status         string `json:"status"`
	IsNewMatch     bool   `json:"is_new_match"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// Swipe records a right-swipe by actorID on targetID. The result tells the
// caller whether they are waiting or matched. Safe to retry: every branch is
// idempotent, and conversation provisioning is get-or-create.
func (s *MatchService) Swipe(ctx context.Context, actorID, targetID string) (*SwipeResult, error) {
	if actorID == targetID {
		return nil, errs.InvalidArgument("cannot swipe on yourself")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if target == nil || !target.IsActive {
		return nil, errs.NotFound("user not found")
	}

	blocked, err := s.blockRepo.ExistsBetween(ctx, actorID, targetID, models.BlockContextAll)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if blocked {
		return nil, errs.Forbidden("interaction with this user is not allowed")
	}

	userA, userB := models.CanonicalPair(actorID, targetID)

	existing, err := s.matchRepo.GetByPair(ctx, userA, userB)
	if err != nil {
		return nil, errs.Internal(err)
	}

	if existing == nil {
		_, inserted, err := s.matchRepo.CreatePending(ctx, userA, userB, actorID)
		if err != nil {
			return nil, errs.Internal(err)
		}
		if inserted {
			return &SwipeResult{Status: models.MatchPending, IsNewMatch: false}, nil
		}
		// Lost the insert race against the other user's swipe; re-read and
		// fall through to the state-based branches.
		existing, err = s.matchRepo.GetByPair(ctx, userA, userB)
		if err != nil {
			return nil, errs.Internal(err)
		}
		if existing == nil {
			return nil, errs.New(errs.KindInternal, "match row missing after insert conflict")
		}
	}

	switch existing.Status {
	case models.MatchPending:
		if existing.InitiatedBy == actorID {
			// Re-swipe by the initiator never completes the match.
			return &SwipeResult{Status: models.MatchPending, IsNewMatch: false}, nil
		}
		rows, err := s.matchRepo.Accept(ctx, userA, userB, actorID)
		if err != nil {
			return nil, errs.Internal(err)
		}
		if rows == 0 {
			// Another request changed the row first; report its final state.
			return s.echoCurrentState(ctx, userA, userB)
		}
		conv, err := s.chatRepo.GetOrCreateConversation(ctx, userA, userB)
		if err != nil {
			// The match row is committed; the swipe can be retried and the
			// echo branch will provision the conversation then.
			return nil, errs.Wrap(errs.KindInternal, "match accepted but conversation provisioning failed", err)
		}

		s.publish(ctx, userA, queue.Event{
			Type:      queue.EventMatchCreated,
			Timestamp: time.Now(),
			Data:      queue.MatchEventData{UserA: userA, UserB: userB, ConversationID: conv.ID},
		})

		s.logger.WithFields(map[string]interface{}{
			"user_a":          userA,
			"user_b":          userB,
			"conversation_id": conv.ID,
		}).Info("Mutual swipe, match accepted")

		return &SwipeResult{Status: models.MatchAccepted, IsNewMatch: true, ConversationID: conv.ID}, nil

	case models.MatchAccepted:
		conv, err := s.chatRepo.GetOrCreateConversation(ctx, userA, userB)
		if err != nil {
			return nil, errs.Internal(err)
		}
		return &SwipeResult{Status: models.MatchAccepted, IsNewMatch: false, ConversationID: conv.ID}, nil

	default:
		return &SwipeResult{Status: existing.Status, IsNewMatch: false}, nil
	}
}

func (s *MatchService) echoCurrentState(ctx context.Context, userA, userB string) (*SwipeResult, error) {
	match, err := s.matchRepo.GetByPair(ctx, userA, userB)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if match == nil {
		return nil, errs.NotFound("match not found")
	}
	result := &SwipeResult{Status: match.Status, IsNewMatch: false}
	if match.Status == models.MatchAccepted {
		conv, err := s.chatRepo.GetOrCreateConversation(ctx, userA, userB)
		if err != nil {
			return nil, errs.Internal(err)
		}
		result.ConversationID = conv.ID
	}
	return result, nil
}

// RejectMatch marks the pair rejected. A missing row counts as already
// rejected, so the operation always succeeds.
func (s *MatchService) RejectMatch(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return errs.InvalidArgument("cannot reject yourself")
	}
	userA, userB := models.CanonicalPair(actorID, targetID)
	if err := s.matchRepo.Reject(ctx, userA, userB); err != nil {
		return errs.Internal(err)
	}
	return nil
}

func (s *MatchService) ListMatches(ctx context.Context, userID string, offset, limit int) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListAcceptedForUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return matches, nil
}

func (s *MatchService) publish(ctx context.Context, key string, event queue.Event) {
	if err := s.producer.Publish(ctx, key, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish match event")
	}
}
