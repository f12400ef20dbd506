package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

// Create is idempotent: re-blocking the same pair in the same context is a
// no-op rather than an error.
func (r *BlockRepository) Create(ctx context.Context, blockerID, blockedID, blockContext string) error {
	block := &models.Block{
		ID:        uuid.New().String(),
		BlockerID: blockerID,
		BlockedID: blockedID,
		Context:   blockContext,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(block).Error; err != nil {
		return fmt.Errorf("failed to create block: %w", err)
	}
	return nil
}

func (r *BlockRepository) Delete(ctx context.Context, blockerID, blockedID, blockContext string) error {
	if err := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ? AND context = ?", blockerID, blockedID, blockContext).
		Delete(&models.Block{}).Error; err != nil {
		return fmt.Errorf("failed to delete block: %w", err)
	}
	return nil
}

// ExistsBetween reports whether either user blocks the other in the given
// context or in the catch-all context. Interaction checks fail closed on it.
func (r *BlockRepository) ExistsBetween(ctx context.Context, userA, userB, blockContext string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Block{}).
		Where("((blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)) AND context IN ?",
			userA, userB, userB, userA, []string{blockContext, models.BlockContextAll}).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check block: %w", err)
	}
	return count > 0, nil
}

func (r *BlockRepository) ListByBlocker(ctx context.Context, blockerID string, offset, limit int) ([]*models.Block, error) {
	var blocks []*models.Block
	if err := r.db.WithContext(ctx).
		Where("blocker_id = ?", blockerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&blocks).Error; err != nil {
		return nil, fmt.Errorf("failed to list blocks: %w", err)
	}
	return blocks, nil
}
