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

// EngagementService owns like toggling and the forum's vote/comment counters.
// Every counter write shares a transaction with the membership row it is
// derived from; that is the whole consistency story.
type EngagementService struct {
	db        *gorm.DB
	likeRepo  *repository.LikeRepository
	forumRepo *repository.ForumRepository
	userRepo  *repository.UserRepository
	producer  queue.Publisher
	logger    *logger.Logger
}

func NewEngagementService(
	db *gorm.DB,
	likeRepo *repository.LikeRepository,
	forumRepo *repository.ForumRepository,
	userRepo *repository.UserRepository,
	producer queue.Publisher,
	logger *logger.Logger,
) *EngagementService {
	return &EngagementService{
		db:        db,
		likeRepo:  likeRepo,
		forumRepo: forumRepo,
		userRepo:  userRepo,
		producer:  producer,
		logger:    logger,
	}
}

type ToggleResult struct {
	Liked    bool  `json:"liked"`
	NewCount int64 `json:"new_count"`
}

// ToggleLike flips the caller's like on an entity. Like row and counter move
// in one transaction; if the counter update touches zero rows the entity was
// deleted underneath us and the whole toggle rolls back.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, entityKind, entityID string) (*ToggleResult, error) {
	switch entityKind {
	case models.EntityItinerary, models.EntityActivity, models.EntityComment:
	default:
		return nil, errs.InvalidArgument("unknown entity kind")
	}

	var result ToggleResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		likes := s.likeRepo.WithTx(tx)

		existing, err := likes.Get(ctx, userID, entityKind, entityID)
		if err != nil {
			return errs.Internal(err)
		}

		var delta int64
		if existing != nil {
			if _, err := likes.Delete(ctx, userID, entityKind, entityID); err != nil {
				return errs.Internal(err)
			}
			delta = -1
			result.Liked = false
		} else {
			if err := likes.Create(ctx, userID, entityKind, entityID); err != nil {
				return errs.Internal(err)
			}
			delta = 1
			result.Liked = true
		}

		rows, err := likes.UpdateEntityLikeCount(ctx, entityKind, entityID, delta)
		if err != nil {
			return errs.Internal(err)
		}
		if rows == 0 {
			return errs.NotFound("entity not found")
		}

		count, err := likes.GetEntityLikeCount(ctx, entityKind, entityID)
		if err != nil {
			return errs.Internal(err)
		}
		result.NewCount = count
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, userID, queue.Event{
		Type:      queue.EventLikeToggled,
		Timestamp: time.Now(),
		Data: queue.LikeEventData{
			UserID:     userID,
			EntityKind: entityKind,
			EntityID:   entityID,
			Liked:      result.Liked,
		},
	})

	return &result, nil
}

type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=200"`
	Content string `json:"content" binding:"required,min=1,max=10000"`
}

// CreatePost inserts the post and the author's seeding +1 vote atomically.
// A post never exists without its own vote, and vice versa.
func (s *EngagementService) CreatePost(ctx context.Context, authorID string, req *CreatePostRequest) (*models.Post, error) {
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if author == nil {
		return nil, errs.NotFound("user not found")
	}

	post := &models.Post{
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
		Score:    1,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		forum := s.forumRepo.WithTx(tx)
		if err := forum.CreatePost(ctx, post); err != nil {
			return errs.Internal(err)
		}
		vote := &models.Vote{PostID: post.ID, UserID: authorID, Value: 1}
		if err := forum.CreateVote(ctx, vote); err != nil {
			return errs.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, authorID, queue.Event{
		Type:      queue.EventPostCreated,
		Timestamp: time.Now(),
		Data:      queue.PostEventData{PostID: post.ID, AuthorID: authorID, Title: post.Title},
	})

	s.logger.WithFields(map[string]interface{}{
		"post_id":   post.ID,
		"author_id": authorID,
	}).Info("Post created")

	return post, nil
}

type VoteResult struct {
	Value    int   `json:"value"`
	NewScore int64 `json:"new_score"`
}

// VotePost applies toggle/flip semantics: same value removes the vote,
// opposite value flips it. Vote row and score share one transaction.
func (s *EngagementService) VotePost(ctx context.Context, userID, postID string, value int) (*VoteResult, error) {
	if value != 1 && value != -1 {
		return nil, errs.InvalidArgument("vote value must be +1 or -1")
	}

	var result VoteResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		forum := s.forumRepo.WithTx(tx)

		existing, err := forum.GetVote(ctx, postID, userID)
		if err != nil {
			return errs.Internal(err)
		}

		var delta int64
		switch {
		case existing == nil:
			if err := forum.CreateVote(ctx, &models.Vote{PostID: postID, UserID: userID, Value: value}); err != nil {
				return errs.Internal(err)
			}
			delta = int64(value)
			result.Value = value
		case existing.Value == value:
			if err := forum.DeleteVote(ctx, existing.ID); err != nil {
				return errs.Internal(err)
			}
			delta = int64(-value)
			result.Value = 0
		default:
			if err := forum.UpdateVoteValue(ctx, existing.ID, value); err != nil {
				return errs.Internal(err)
			}
			delta = int64(2 * value)
			result.Value = value
		}

		rows, err := forum.UpdatePostScore(ctx, postID, delta)
		if err != nil {
			return errs.Internal(err)
		}
		if rows == 0 {
			return errs.NotFound("post not found")
		}

		post, err := forum.GetPost(ctx, postID)
		if err != nil {
			return errs.Internal(err)
		}
		if post == nil {
			return errs.NotFound("post not found")
		}
		result.NewScore = post.Score
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type CreateCommentRequest struct {
	Content  string  `json:"content" binding:"required,min=1,max=2000"`
	ParentID *string `json:"parent_id"`
}

// CreateComment inserts the comment and bumps the post's comment_count in one
// transaction.
func (s *EngagementService) CreateComment(ctx context.Context, authorID, postID string, req *CreateCommentRequest) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  req.Content,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		forum := s.forumRepo.WithTx(tx)

		if req.ParentID != nil {
			parent, err := forum.GetComment(ctx, *req.ParentID)
			if err != nil {
				return errs.Internal(err)
			}
			if parent == nil {
				return errs.NotFound("parent comment not found")
			}
			if parent.PostID != postID {
				return errs.InvalidArgument("parent comment belongs to a different post")
			}
			comment.ParentID = req.ParentID
		}

		if err := forum.CreateComment(ctx, comment); err != nil {
			return errs.Internal(err)
		}

		rows, err := forum.UpdateCommentCount(ctx, postID, 1)
		if err != nil {
			return errs.Internal(err)
		}
		if rows == 0 {
			return errs.NotFound("post not found")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, authorID, queue.Event{
		Type:      queue.EventCommentCreated,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"comment_id": comment.ID,
			"post_id":    postID,
			"author_id":  authorID,
		},
	})

	return comment, nil
}

func (s *EngagementService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.forumRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if post == nil {
		return nil, errs.NotFound("post not found")
	}
	return post, nil
}

func (s *EngagementService) ListPosts(ctx context.Context, offset, limit int) ([]*models.Post, error) {
	posts, err := s.forumRepo.ListPosts(ctx, offset, limit)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return posts, nil
}

func (s *EngagementService) ListComments(ctx context.Context, postID string, offset, limit int) ([]*models.Comment, error) {
	comments, err := s.forumRepo.ListComments(ctx, postID, offset, limit)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return comments, nil
}

func (s *EngagementService) publish(ctx context.Context, key string, event queue.Event) {
	if err := s.producer.Publish(ctx, key, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish engagement event")
	}
}
