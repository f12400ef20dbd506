package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"gorm.io/gorm"
)

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

func (r *TripRepository) Create(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(trip).Error; err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

func (r *TripRepository) GetByID(ctx context.Context, id string) (*models.Trip, error) {
	var trip models.Trip
	if err := r.db.WithContext(ctx).Preload("Owner").First(&trip, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return &trip, nil
}

func (r *TripRepository) Update(ctx context.Context, trip *models.Trip) error {
	if err := r.db.WithContext(ctx).Save(trip).Error; err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	return nil
}

func (r *TripRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Trip{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return nil
}

func (r *TripRepository) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*models.Trip, error) {
	var trips []*models.Trip
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("start_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&trips).Error; err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	return trips, nil
}

func (r *TripRepository) ListPublic(ctx context.Context, destination string, offset, limit int) ([]*models.Trip, error) {
	var trips []*models.Trip
	db := r.db.WithContext(ctx).Preload("Owner").Where("visibility = ?", models.TripPublic)
	if destination != "" {
		db = db.Where("destination LIKE ?", "%"+destination+"%")
	}
	if err := db.Order("start_date DESC").Offset(offset).Limit(limit).Find(&trips).Error; err != nil {
		return nil, fmt.Errorf("failed to list public trips: %w", err)
	}
	return trips, nil
}

func (r *TripRepository) CreateItinerary(ctx context.Context, it *models.Itinerary) error {
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(it).Error; err != nil {
		return fmt.Errorf("failed to create itinerary: %w", err)
	}
	return nil
}

func (r *TripRepository) GetItinerary(ctx context.Context, id string) (*models.Itinerary, error) {
	var it models.Itinerary
	if err := r.db.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}
	return &it, nil
}

func (r *TripRepository) ListItineraries(ctx context.Context, tripID string) ([]*models.Itinerary, error) {
	var items []*models.Itinerary
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("day ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list itineraries: %w", err)
	}
	return items, nil
}

func (r *TripRepository) DeleteItinerary(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Itinerary{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	return nil
}
