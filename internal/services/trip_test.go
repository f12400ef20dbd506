package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triptrizz/triptrizz-server/internal/errs"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"github.com/triptrizz/triptrizz-server/internal/repository"
	"github.com/triptrizz/triptrizz-server/pkg/logger"
	"gorm.io/gorm"
)

func newTripService(t *testing.T, db *gorm.DB) *TripService {
	t.Helper()
	return NewTripService(repository.NewTripRepository(db), &stubPublisher{}, logger.NewLogger())
}

func tripRequest(visibility string) *CreateTripRequest {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return &CreateTripRequest{
		Title:       "Autumn in Kyoto",
		Destination: "Kyoto",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 7),
		Visibility:  visibility,
	}
}

func TestCreateTrip_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := newTripService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")

	req := tripRequest("")
	trip, err := svc.CreateTrip(ctx, "alice", req)
	require.NoError(t, err)
	assert.Equal(t, models.TripPublic, trip.Visibility)

	req = tripRequest("friends")
	_, err = svc.CreateTrip(ctx, "alice", req)
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))

	req = tripRequest(models.TripPublic)
	req.EndDate = req.StartDate.AddDate(0, 0, -1)
	_, err = svc.CreateTrip(ctx, "alice", req)
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}

func TestGetTrip_Visibility(t *testing.T) {
	db := newTestDB(t)
	svc := newTripService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")

	trip, err := svc.CreateTrip(ctx, "alice", tripRequest(models.TripPrivate))
	require.NoError(t, err)

	_, err = svc.GetTrip(ctx, "alice", trip.ID)
	require.NoError(t, err)

	_, err = svc.GetTrip(ctx, "bob", trip.ID)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))

	_, err = svc.GetTrip(ctx, "alice", "missing")
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestItineraryLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := newTripService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")

	trip, err := svc.CreateTrip(ctx, "alice", tripRequest(models.TripPublic))
	require.NoError(t, err)

	_, err = svc.AddItinerary(ctx, "bob", trip.ID, &AddItineraryRequest{Day: 1, Title: "Arrival"})
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))

	for day, title := range map[int]string{2: "Fushimi Inari", 1: "Arrival"} {
		_, err = svc.AddItinerary(ctx, "alice", trip.ID, &AddItineraryRequest{Day: day, Title: title})
		require.NoError(t, err)
	}

	items, err := svc.ListItineraries(ctx, "bob", trip.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Day)
	assert.Equal(t, 2, items[1].Day)

	err = svc.DeleteItinerary(ctx, "bob", items[0].ID)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))

	require.NoError(t, svc.DeleteItinerary(ctx, "alice", items[0].ID))

	items, err = svc.ListItineraries(ctx, "alice", trip.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestListTrips(t *testing.T) {
	db := newTestDB(t)
	svc := newTripService(t, db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	_, err := svc.CreateTrip(ctx, "alice", tripRequest(models.TripPublic))
	require.NoError(t, err)
	_, err = svc.CreateTrip(ctx, "alice", tripRequest(models.TripPrivate))
	require.NoError(t, err)

	lisbon := tripRequest(models.TripPublic)
	lisbon.Destination = "Lisbon"
	_, err = svc.CreateTrip(ctx, "bob", lisbon)
	require.NoError(t, err)

	mine, err := svc.ListMyTrips(ctx, "alice", 0, 20)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	public, err := svc.ListPublicTrips(ctx, "", 0, 20)
	require.NoError(t, err)
	assert.Len(t, public, 2)

	public, err = svc.ListPublicTrips(ctx, "Lisbon", 0, 20)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "bob", public[0].OwnerID)
}
