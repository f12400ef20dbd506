package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) WithTx(tx *gorm.DB) *LikeRepository {
	return &LikeRepository{db: tx}
}

func (r *LikeRepository) Get(ctx context.Context, userID, entityKind, entityID string) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND entity_kind = ? AND entity_id = ?", userID, entityKind, entityID).
		First(&like).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get like: %w", err)
	}
	return &like, nil
}

func (r *LikeRepository) Create(ctx context.Context, userID, entityKind, entityID string) error {
	like := &models.Like{
		ID:         uuid.New().String(),
		UserID:     userID,
		EntityKind: entityKind,
		EntityID:   entityID,
	}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

func (r *LikeRepository) Delete(ctx context.Context, userID, entityKind, entityID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND entity_kind = ? AND entity_id = ?", userID, entityKind, entityID).
		Delete(&models.Like{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete like: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *LikeRepository) CountForEntity(ctx context.Context, entityKind, entityID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("entity_kind = ? AND entity_id = ?", entityKind, entityID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

func entityModel(entityKind string) (interface{}, bool) {
	switch entityKind {
	case models.EntityItinerary:
		return &models.Itinerary{}, true
	case models.EntityActivity:
		return &models.ActivityEvent{}, true
	case models.EntityComment:
		return &models.Comment{}, true
	default:
		return nil, false
	}
}

// UpdateEntityLikeCount applies delta to the entity's denormalized counter,
// flooring at zero. Zero rows affected means the entity is gone; the caller
// must abort its transaction.
func (r *LikeRepository) UpdateEntityLikeCount(ctx context.Context, entityKind, entityID string, delta int64) (int64, error) {
	model, ok := entityModel(entityKind)
	if !ok {
		return 0, fmt.Errorf("unknown entity kind %q", entityKind)
	}
	res := r.db.WithContext(ctx).Model(model).
		Where("id = ?", entityID).
		UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count + ? < 0 THEN 0 ELSE like_count + ? END", delta, delta))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update like count: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *LikeRepository) GetEntityLikeCount(ctx context.Context, entityKind, entityID string) (int64, error) {
	model, ok := entityModel(entityKind)
	if !ok {
		return 0, fmt.Errorf("unknown entity kind %q", entityKind)
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(model).
		Where("id = ?", entityID).
		Pluck("like_count", &count).Error; err != nil {
		return 0, fmt.Errorf("failed to read like count: %w", err)
	}
	return count, nil
}
