package repository

import (
	"context"
	"fmt"

	"github.com/triptrizz/triptrizz-server/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("is_active", active).Error; err != nil {
		return fmt.Errorf("failed to set user active flag: %w", err)
	}
	return nil
}

func (r *UserRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("is_verified", verified).Error; err != nil {
		return fmt.Errorf("failed to set user verified flag: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateFollowerCount(ctx context.Context, id string, delta int64) error {
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("followers", gorm.Expr("CASE WHEN followers + ? < 0 THEN 0 ELSE followers + ? END", delta, delta)).Error; err != nil {
		return fmt.Errorf("failed to update follower count: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateFollowingCount(ctx context.Context, id string, delta int64) error {
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("following", gorm.Expr("CASE WHEN following + ? < 0 THEN 0 ELSE following + ? END", delta, delta)).Error; err != nil {
		return fmt.Errorf("failed to update following count: %w", err)
	}
	return nil
}

// ListCandidates returns active users the viewer has not matched, blocked or
// been blocked by, for the discovery/swipe deck.
func (r *UserRepository) ListCandidates(ctx context.Context, viewerID string, offset, limit int) ([]*models.User, error) {
	var users []*models.User
	if err := r.db.WithContext(ctx).
		Where("id <> ? AND is_active = ?", viewerID, true).
		Where("id NOT IN (?)", r.db.Model(&models.Match{}).
			Select("CASE WHEN user_a = ? THEN user_b ELSE user_a END", viewerID).
			Where("user_a = ? OR user_b = ?", viewerID, viewerID)).
		Where("id NOT IN (?)", r.db.Model(&models.Block{}).
			Select("blocked_id").Where("blocker_id = ?", viewerID)).
		Where("id NOT IN (?)", r.db.Model(&models.Block{}).
			Select("blocker_id").Where("blocked_id = ?", viewerID)).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Search(ctx context.Context, query string, offset, limit int) ([]*models.User, error) {
	var users []*models.User
	db := r.db.WithContext(ctx).Where("is_active = ?", true)
	if query != "" {
		db = db.Where("username LIKE ? OR display_name LIKE ?", "%"+query+"%", "%"+query+"%")
	}
	if err := db.Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}
