package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// GetOrCreateConversation provisions the channel for a canonical pair. The
// unique pair index makes concurrent provisioning converge on one row.
func (r *ChatRepository) GetOrCreateConversation(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	conv := &models.Conversation{
		ID:    uuid.New().String(),
		UserA: userA,
		UserB: userB,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(conv).Error; err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	var existing models.Conversation
	if err := r.db.WithContext(ctx).
		Where("user_a = ? AND user_b = ?", userA, userB).
		First(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return &existing, nil
}

func (r *ChatRepository) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.db.WithContext(ctx).First(&conv, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &conv, nil
}

func (r *ChatRepository) ListConversationsForUser(ctx context.Context, userID string, offset, limit int) ([]*models.Conversation, error) {
	var convs []*models.Conversation
	if err := r.db.WithContext(ctx).
		Where("user_a = ? OR user_b = ?", userID, userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&convs).Error; err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return convs, nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *ChatRepository) ListMessages(ctx context.Context, conversationID string, offset, limit int) ([]*models.Message, error) {
	var msgs []*models.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

func (r *ChatRepository) DeleteMessage(ctx context.Context, messageID, senderID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND sender_id = ?", messageID, senderID).
		Delete(&models.Message{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete message: %w", res.Error)
	}
	return res.RowsAffected, nil
}
