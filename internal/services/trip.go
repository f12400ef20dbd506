package services

import (
	"context"
	"time"

	"github.com/triptrizz/triptrizz-server/internal/errs"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"github.com/triptrizz/triptrizz-server/internal/repository"
	"github.com/triptrizz/triptrizz-server/pkg/logger"
	"github.com/triptrizz/triptrizz-server/pkg/queue"
)

type TripService struct {
	tripRepo *repository.TripRepository
	producer queue.Publisher
	logger   *logger.Logger
}

func NewTripService(tripRepo *repository.TripRepository, producer queue.Publisher, logger *logger.Logger) *TripService {
	return &TripService{
		tripRepo: tripRepo,
		producer: producer,
		logger:   logger,
	}
}

type CreateTripRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=120"`
	Destination string    `json:"destination" binding:"required,min=1,max=120"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Visibility  string    `json:"visibility"`
}

type AddItineraryRequest struct {
	Day   int    `json:"day" binding:"required,min=1"`
	Title string `json:"title" binding:"required,min=1,max=120"`
	Notes string `json:"notes" binding:"max=5000"`
}

func (s *TripService) CreateTrip(ctx context.Context, ownerID string, req *CreateTripRequest) (*models.Trip, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, errs.InvalidArgument("end date is before start date")
	}
	visibility := req.Visibility
	if visibility == "" {
		visibility = models.TripPublic
	}
	if visibility != models.TripPublic && visibility != models.TripPrivate {
		return nil, errs.InvalidArgument("unknown visibility")
	}

	trip := &models.Trip{
		OwnerID:     ownerID,
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Visibility:  visibility,
	}
	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, errs.Internal(err)
	}

	event := queue.Event{
		Type:      queue.EventTripCreated,
		Timestamp: time.Now(),
		Data:      queue.TripEventData{TripID: trip.ID, OwnerID: ownerID, Destination: trip.Destination},
	}
	if err := s.producer.Publish(ctx, ownerID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish trip created event")
	}

	return trip, nil
}

func (s *TripService) GetTrip(ctx context.Context, viewerID, tripID string) (*models.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if trip == nil {
		return nil, errs.NotFound("trip not found")
	}
	if trip.Visibility == models.TripPrivate && trip.OwnerID != viewerID {
		return nil, errs.Forbidden("trip is private")
	}
	return trip, nil
}

func (s *TripService) DeleteTrip(ctx context.Context, actorID, tripID string) error {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return errs.Internal(err)
	}
	if trip == nil {
		return errs.NotFound("trip not found")
	}
	if trip.OwnerID != actorID {
		return errs.Forbidden("only the owner may delete a trip")
	}
	if err := s.tripRepo.Delete(ctx, tripID); err != nil {
		return errs.Internal(err)
	}
	return nil
}

func (s *TripService) ListMyTrips(ctx context.Context, ownerID string, offset, limit int) ([]*models.Trip, error) {
	trips, err := s.tripRepo.ListByOwner(ctx, ownerID, offset, limit)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return trips, nil
}

func (s *TripService) ListPublicTrips(ctx context.Context, destination string, offset, limit int) ([]*models.Trip, error) {
	trips, err := s.tripRepo.ListPublic(ctx, destination, offset, limit)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return trips, nil
}

func (s *TripService) AddItinerary(ctx context.Context, actorID, tripID string, req *AddItineraryRequest) (*models.Itinerary, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if trip == nil {
		return nil, errs.NotFound("trip not found")
	}
	if trip.OwnerID != actorID {
		return nil, errs.Forbidden("only the owner may edit the itinerary")
	}

	it := &models.Itinerary{
		TripID: tripID,
		Day:    req.Day,
		Title:  req.Title,
		Notes:  req.Notes,
	}
	if err := s.tripRepo.CreateItinerary(ctx, it); err != nil {
		return nil, errs.Internal(err)
	}
	return it, nil
}

func (s *TripService) ListItineraries(ctx context.Context, viewerID, tripID string) ([]*models.Itinerary, error) {
	if _, err := s.GetTrip(ctx, viewerID, tripID); err != nil {
		return nil, err
	}
	items, err := s.tripRepo.ListItineraries(ctx, tripID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return items, nil
}

func (s *TripService) DeleteItinerary(ctx context.Context, actorID, itineraryID string) error {
	it, err := s.tripRepo.GetItinerary(ctx, itineraryID)
	if err != nil {
		return errs.Internal(err)
	}
	if it == nil {
		return errs.NotFound("itinerary not found")
	}
	trip, err := s.tripRepo.GetByID(ctx, it.TripID)
	if err != nil {
		return errs.Internal(err)
	}
	if trip == nil || trip.OwnerID != actorID {
		return errs.Forbidden("only the owner may edit the itinerary")
	}
	if err := s.tripRepo.DeleteItinerary(ctx, itineraryID); err != nil {
		return errs.Internal(err)
	}
	return nil
}
