package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"gorm.io/gorm"
)

type ForumRepository struct {
	db *gorm.DB
}

func NewForumRepository(db *gorm.DB) *ForumRepository {
	return &ForumRepository{db: db}
}

func (r *ForumRepository) WithTx(tx *gorm.DB) *ForumRepository {
	return &ForumRepository{db: tx}
}

func (r *ForumRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *ForumRepository) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

func (r *ForumRepository) DeletePost(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (r *ForumRepository) ListPosts(ctx context.Context, offset, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order("score DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (r *ForumRepository) CreateVote(ctx context.Context, vote *models.Vote) error {
	if vote.ID == "" {
		vote.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(vote).Error; err != nil {
		return fmt.Errorf("failed to create vote: %w", err)
	}
	return nil
}

func (r *ForumRepository) GetVote(ctx context.Context, postID, userID string) (*models.Vote, error) {
	var vote models.Vote
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&vote).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return &vote, nil
}

func (r *ForumRepository) UpdateVoteValue(ctx context.Context, voteID string, value int) error {
	if err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("id = ?", voteID).
		Update("value", value).Error; err != nil {
		return fmt.Errorf("failed to update vote: %w", err)
	}
	return nil
}

func (r *ForumRepository) DeleteVote(ctx context.Context, voteID string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Vote{}, "id = ?", voteID).Error; err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return nil
}

// UpdatePostScore has no floor: scores may go negative under downvotes.
func (r *ForumRepository) UpdatePostScore(ctx context.Context, postID string, delta int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("score", gorm.Expr("score + ?", delta))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update post score: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *ForumRepository) UpdateCommentCount(ctx context.Context, postID string, delta int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("comment_count", gorm.Expr("CASE WHEN comment_count + ? < 0 THEN 0 ELSE comment_count + ? END", delta, delta))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update comment count: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *ForumRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *ForumRepository) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

func (r *ForumRepository) ListComments(ctx context.Context, postID string, offset, limit int) ([]*models.Comment, error) {
	var comments []*models.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
