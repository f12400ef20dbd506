package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/triptrizz/triptrizz-server/internal/errs"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"github.com/triptrizz/triptrizz-server/internal/repository"
	"github.com/triptrizz/triptrizz-server/pkg/logger"
	"github.com/triptrizz/triptrizz-server/pkg/queue"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo *repository.UserRepository
	producer queue.Publisher
	logger   *logger.Logger
}

func NewUserService(userRepo *repository.UserRepository, producer queue.Publisher, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		producer: producer,
		logger:   logger,
	}
}

type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=30"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6,max=50"`
	DisplayName string `json:"display_name" binding:"max=50"`
	HomeCity    string `json:"home_city" binding:"max=80"`
	TravelStyle string `json:"travel_style" binding:"max=40"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	DisplayName *string `json:"display_name"`
	Avatar      *string `json:"avatar"`
	Bio         *string `json:"bio"`
	HomeCity    *string `json:"home_city"`
	TravelStyle *string `json:"travel_style"`
}

func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if existing != nil {
		return nil, errs.Conflict("username already exists")
	}

	existing, err = s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if existing != nil {
		return nil, errs.Conflict("email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Internal(err)
	}

	user := &models.User{
		ID:          uuid.New().String(),
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hashed),
		DisplayName: req.DisplayName,
		HomeCity:    req.HomeCity,
		TravelStyle: req.TravelStyle,
		IsActive:    true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, errs.Internal(err)
	}

	event := queue.Event{
		Type:      queue.EventUserRegistered,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"user_id":  user.ID,
			"username": user.Username,
		},
	}
	if err := s.producer.Publish(ctx, user.ID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish user registered event")
	}

	s.logger.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if user == nil {
		return nil, errs.Unauthorized("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errs.Unauthorized("invalid username or password")
	}

	if !user.IsActive {
		return nil, errs.Forbidden("account is deactivated")
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if user == nil {
		return nil, errs.NotFound("user not found")
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, userID string, req *UpdateUserRequest) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.HomeCity != nil {
		user.HomeCity = *req.HomeCity
	}
	if req.TravelStyle != nil {
		user.TravelStyle = *req.TravelStyle
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, errs.Internal(err)
	}
	return user, nil
}

// Discover returns swipe candidates for the viewer, excluding anyone already
// matched, blocked or blocking.
func (s *UserService) Discover(ctx context.Context, viewerID string, offset, limit int) ([]*models.User, error) {
	users, err := s.userRepo.ListCandidates(ctx, viewerID, offset, limit)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return users, nil
}

func (s *UserService) Search(ctx context.Context, query string, offset, limit int) ([]*models.User, error) {
	users, err := s.userRepo.Search(ctx, query, offset, limit)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return users, nil
}
