package services

import (
	"context"

	"github.com/triptrizz/triptrizz-server/internal/errs"
	"github.com/triptrizz/triptrizz-server/internal/repository"
	"github.com/triptrizz/triptrizz-server/pkg/logger"
)

// ModerationService backs the admin dashboard actions.
type ModerationService struct {
	userRepo  *repository.UserRepository
	forumRepo *repository.ForumRepository
	logger    *logger.Logger
}

func NewModerationService(userRepo *repository.UserRepository, forumRepo *repository.ForumRepository, logger *logger.Logger) *ModerationService {
	return &ModerationService{
		userRepo:  userRepo,
		forumRepo: forumRepo,
		logger:    logger,
	}
}

func (s *ModerationService) SetUserActive(ctx context.Context, adminID, userID string, active bool) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return errs.Internal(err)
	}
	if user == nil {
		return errs.NotFound("user not found")
	}
	if user.IsAdmin {
		return errs.Forbidden("cannot moderate an admin account")
	}

	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		return errs.Internal(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"admin_id": adminID,
		"user_id":  userID,
		"active":   active,
	}).Info("User active flag changed by moderator")

	return nil
}

func (s *ModerationService) RemovePost(ctx context.Context, adminID, postID string) error {
	post, err := s.forumRepo.GetPost(ctx, postID)
	if err != nil {
		return errs.Internal(err)
	}
	if post == nil {
		return errs.NotFound("post not found")
	}

	if err := s.forumRepo.DeletePost(ctx, postID); err != nil {
		return errs.Internal(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"admin_id": adminID,
		"post_id":  postID,
	}).Info("Post removed by moderator")

	return nil
}
