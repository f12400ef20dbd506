package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) WithTx(tx *gorm.DB) *MatchRepository {
	return &MatchRepository{db: tx}
}

// CreatePending inserts a pending match for the canonical pair. The unique
// pair index turns a concurrent opposite-order swipe into a conflict, which
// the service resolves by re-reading.
func (r *MatchRepository) CreatePending(ctx context.Context, userA, userB, initiatedBy string) (*models.Match, bool, error) {
	match := &models.Match{
		ID:          uuid.New().String(),
		UserA:       userA,
		UserB:       userB,
		Status:      models.MatchPending,
		InitiatedBy: initiatedBy,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(match)
	if res.Error != nil {
		return nil, false, fmt.Errorf("failed to create match: %w", res.Error)
	}
	return match, res.RowsAffected > 0, nil
}

func (r *MatchRepository) GetByPair(ctx context.Context, userA, userB string) (*models.Match, error) {
	var match models.Match
	if err := r.db.WithContext(ctx).
		Where("user_a = ? AND user_b = ?", userA, userB).
		First(&match).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return &match, nil
}

// Accept flips pending → accepted only when the pending row was initiated by
// the other party; a self re-swipe must not complete a match.
func (r *MatchRepository) Accept(ctx context.Context, userA, userB, accepterID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Match{}).
		Where("user_a = ? AND user_b = ? AND status = ? AND initiated_by <> ?",
			userA, userB, models.MatchPending, accepterID).
		Update("status", models.MatchAccepted)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to accept match: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *MatchRepository) Reject(ctx context.Context, userA, userB string) error {
	if err := r.db.WithContext(ctx).Model(&models.Match{}).
		Where("user_a = ? AND user_b = ? AND status = ?", userA, userB, models.MatchPending).
		Update("status", models.MatchRejected).Error; err != nil {
		return fmt.Errorf("failed to reject match: %w", err)
	}
	return nil
}

func (r *MatchRepository) ListAcceptedForUser(ctx context.Context, userID string, offset, limit int) ([]*models.Match, error) {
	var matches []*models.Match
	if err := r.db.WithContext(ctx).
		Where("(user_a = ? OR user_b = ?) AND status = ?", userID, userID, models.MatchAccepted).
		Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&matches).Error; err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}
