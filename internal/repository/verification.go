package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"gorm.io/gorm"
)

type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) Create(ctx context.Context, req *models.VerificationRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create verification request: %w", err)
	}
	return nil
}

func (r *VerificationRepository) GetByID(ctx context.Context, id string) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	if err := r.db.WithContext(ctx).Preload("User").First(&req, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get verification request: %w", err)
	}
	return &req, nil
}

func (r *VerificationRepository) GetPendingForUser(ctx context.Context, userID string) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.VerificationPending).
		First(&req).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pending verification: %w", err)
	}
	return &req, nil
}

func (r *VerificationRepository) Update(ctx context.Context, req *models.VerificationRequest) error {
	if err := r.db.WithContext(ctx).Save(req).Error; err != nil {
		return fmt.Errorf("failed to update verification request: %w", err)
	}
	return nil
}

func (r *VerificationRepository) ListByStatus(ctx context.Context, status string, offset, limit int) ([]*models.VerificationRequest, error) {
	var reqs []*models.VerificationRequest
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", status).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list verification requests: %w", err)
	}
	return reqs, nil
}
