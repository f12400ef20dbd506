package services

import (
	"context"
	"strings"
	"time"

	"github.com/triptrizz/triptrizz-server/internal/errs"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"github.com/triptrizz/triptrizz-server/internal/repository"
	"github.com/triptrizz/triptrizz-server/pkg/logger"
	"github.com/triptrizz/triptrizz-server/pkg/queue"
)

// ChatService handles messaging inside conversations provisioned by matches.
type ChatService struct {
	chatRepo  *repository.ChatRepository
	blockRepo *repository.BlockRepository
	producer  queue.Publisher
	logger    *logger.Logger
}

func NewChatService(
	chatRepo *repository.ChatRepository,
	blockRepo *repository.BlockRepository,
	producer queue.Publisher,
	logger *logger.Logger,
) *ChatService {
	return &ChatService{
		chatRepo:  chatRepo,
		blockRepo: blockRepo,
		producer:  producer,
		logger:    logger,
	}
}

func conversationMember(conv *models.Conversation, userID string) bool {
	return conv.UserA == userID || conv.UserB == userID
}

func otherMember(conv *models.Conversation, userID string) string {
	if conv.UserA == userID {
		return conv.UserB
	}
	return conv.UserA
}

func (s *ChatService) SendMessage(ctx context.Context, senderID, conversationID, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errs.InvalidArgument("message body is empty")
	}

	conv, err := s.chatRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if conv == nil {
		return nil, errs.NotFound("conversation not found")
	}
	if !conversationMember(conv, senderID) {
		return nil, errs.Forbidden("not a member of this conversation")
	}

	blocked, err := s.blockRepo.ExistsBetween(ctx, senderID, otherMember(conv, senderID), models.BlockContextDM)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if blocked {
		return nil, errs.Forbidden("messaging with this user is not allowed")
	}

	msg := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
	}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, errs.Internal(err)
	}

	event := queue.Event{
		Type:      queue.EventMessageSent,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"message_id":      msg.ID,
			"conversation_id": conversationID,
			"sender_id":       senderID,
		},
	}
	if err := s.producer.Publish(ctx, conversationID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish message sent event")
	}

	return msg, nil
}

func (s *ChatService) ListMessages(ctx context.Context, userID, conversationID string, offset, limit int) ([]*models.Message, error) {
	conv, err := s.chatRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if conv == nil {
		return nil, errs.NotFound("conversation not found")
	}
	if !conversationMember(conv, userID) {
		return nil, errs.Forbidden("not a member of this conversation")
	}

	msgs, err := s.chatRepo.ListMessages(ctx, conversationID, offset, limit)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return msgs, nil
}

func (s *ChatService) ListConversations(ctx context.Context, userID string, offset, limit int) ([]*models.Conversation, error) {
	convs, err := s.chatRepo.ListConversationsForUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return convs, nil
}

func (s *ChatService) DeleteMessage(ctx context.Context, userID, messageID string) error {
	rows, err := s.chatRepo.DeleteMessage(ctx, messageID, userID)
	if err != nil {
		return errs.Internal(err)
	}
	if rows == 0 {
		return errs.NotFound("message not found")
	}
	return nil
}
