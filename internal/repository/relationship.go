package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"gorm.io/gorm"
)

type RelationshipRepository struct {
	db *gorm.DB
}

func NewRelationshipRepository(db *gorm.DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

func (r *RelationshipRepository) WithTx(tx *gorm.DB) *RelationshipRepository {
	return &RelationshipRepository{db: tx}
}

func (r *RelationshipRepository) Create(ctx context.Context, rel *models.FollowRelationship) error {
	if rel.ID == "" {
		rel.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(rel).Error; err != nil {
		return fmt.Errorf("failed to create follow relationship: %w", err)
	}
	return nil
}

func (r *RelationshipRepository) Get(ctx context.Context, followerID, followingID string) (*models.FollowRelationship, error) {
	var rel models.FollowRelationship
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&rel).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get follow relationship: %w", err)
	}
	return &rel, nil
}

// UpdateStatus flips a pending row; returns rows affected so callers can tell
// a lost race from success.
func (r *RelationshipRepository) UpdateStatus(ctx context.Context, followerID, followingID, from, to string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.FollowRelationship{}).
		Where("follower_id = ? AND following_id = ? AND status = ?", followerID, followingID, from).
		Update("status", to)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update follow status: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *RelationshipRepository) Delete(ctx context.Context, followerID, followingID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.FollowRelationship{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete follow relationship: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *RelationshipRepository) ListFollowers(ctx context.Context, userID string, offset, limit int) ([]*models.User, error) {
	var users []*models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follow_relationships ON follow_relationships.follower_id = users.id").
		Where("follow_relationships.following_id = ? AND follow_relationships.status = ?", userID, models.RelationshipAccepted).
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return users, nil
}

func (r *RelationshipRepository) ListFollowing(ctx context.Context, userID string, offset, limit int) ([]*models.User, error) {
	var users []*models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follow_relationships ON follow_relationships.following_id = users.id").
		Where("follow_relationships.follower_id = ? AND follow_relationships.status = ?", userID, models.RelationshipAccepted).
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return users, nil
}

func (r *RelationshipRepository) ListPendingIncoming(ctx context.Context, userID string, offset, limit int) ([]*models.FollowRelationship, error) {
	var rels []*models.FollowRelationship
	if err := r.db.WithContext(ctx).
		Preload("Follower").
		Where("following_id = ? AND status = ?", userID, models.RelationshipPending).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rels).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return rels, nil
}

// AcceptedFollowerIDs feeds the activity fanout; capped by the caller.
func (r *RelationshipRepository) AcceptedFollowerIDs(ctx context.Context, userID string, limit int) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.FollowRelationship{}).
		Where("following_id = ? AND status = ?", userID, models.RelationshipAccepted).
		Limit(limit).
		Pluck("follower_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list follower ids: %w", err)
	}
	return ids, nil
}
