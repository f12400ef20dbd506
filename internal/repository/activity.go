package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, event *models.ActivityEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create activity event: %w", err)
	}
	return nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*models.ActivityEvent, error) {
	var event models.ActivityEvent
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get activity event: %w", err)
	}
	return &event, nil
}

func (r *ActivityRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.ActivityEvent, error) {
	var events []*models.ActivityEvent
	if err := r.db.WithContext(ctx).
		Preload("Actor").
		Where("id IN ?", ids).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to get activity events: %w", err)
	}
	return events, nil
}

// ListByActors is the DB fallback when the redis timeline is cold.
func (r *ActivityRepository) ListByActors(ctx context.Context, actorIDs []string, offset, limit int) ([]*models.ActivityEvent, error) {
	if len(actorIDs) == 0 {
		return nil, nil
	}
	var events []*models.ActivityEvent
	if err := r.db.WithContext(ctx).
		Preload("Actor").
		Where("actor_id IN ?", actorIDs).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list activity events: %w", err)
	}
	return events, nil
}
