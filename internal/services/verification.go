package services

import (
	"context"

	"github.com/triptrizz/triptrizz-server/internal/errs"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"github.com/triptrizz/triptrizz-server/internal/repository"
	"github.com/triptrizz/triptrizz-server/pkg/logger"
)

// VerificationService runs the identity verification workflow: users submit a
// document reference, admins review it.
type VerificationService struct {
	verRepo  *repository.VerificationRepository
	userRepo *repository.UserRepository
	logger   *logger.Logger
}

func NewVerificationService(verRepo *repository.VerificationRepository, userRepo *repository.UserRepository, logger *logger.Logger) *VerificationService {
	return &VerificationService{
		verRepo:  verRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *VerificationService) Submit(ctx context.Context, userID, documentURL string) (*models.VerificationRequest, error) {
	if documentURL == "" {
		return nil, errs.InvalidArgument("document URL is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if user == nil {
		return nil, errs.NotFound("user not found")
	}
	if user.IsVerified {
		return nil, errs.Conflict("user is already verified")
	}

	pending, err := s.verRepo.GetPendingForUser(ctx, userID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if pending != nil {
		return nil, errs.Conflict("a verification request is already pending")
	}

	req := &models.VerificationRequest{
		UserID:      userID,
		DocumentURL: documentURL,
		Status:      models.VerificationPending,
	}
	if err := s.verRepo.Create(ctx, req); err != nil {
		return nil, errs.Internal(err)
	}

	s.logger.WithField("user_id", userID).Info("Verification request submitted")
	return req, nil
}

func (s *VerificationService) ListPending(ctx context.Context, offset, limit int) ([]*models.VerificationRequest, error) {
	reqs, err := s.verRepo.ListByStatus(ctx, models.VerificationPending, offset, limit)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return reqs, nil
}

// Review resolves a pending request. Approval flips the user's verified flag.
func (s *VerificationService) Review(ctx context.Context, reviewerID, requestID string, approve bool, note string) (*models.VerificationRequest, error) {
	req, err := s.verRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if req == nil {
		return nil, errs.NotFound("verification request not found")
	}
	if req.Status != models.VerificationPending {
		return nil, errs.Conflict("verification request already reviewed")
	}

	if approve {
		req.Status = models.VerificationApproved
	} else {
		req.Status = models.VerificationRejected
	}
	req.ReviewedBy = &reviewerID
	req.ReviewNote = note

	if err := s.verRepo.Update(ctx, req); err != nil {
		return nil, errs.Internal(err)
	}

	if approve {
		if err := s.userRepo.SetVerified(ctx, req.UserID, true); err != nil {
			return nil, errs.Internal(err)
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"request_id":  requestID,
		"reviewer_id": reviewerID,
		"approved":    approve,
	}).Info("Verification request reviewed")

	return req, nil
}
