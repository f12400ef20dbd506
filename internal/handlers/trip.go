package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/triptrizz/triptrizz-server/internal/middleware"
	"github.com/triptrizz/triptrizz-server/internal/services"
)

type TripHandler struct {
	tripService       *services.TripService
	engagementService *services.EngagementService
}

func NewTripHandler(tripService *services.TripService, engagementService *services.EngagementService) *TripHandler {
	return &TripHandler{
		tripService:       tripService,
		engagementService: engagementService,
	}
}

func (h *TripHandler) CreateTrip(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var req services.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Trip created",
		"trip":    trip,
	})
}

func (h *TripHandler) GetTrip(c *gin.Context) {
	viewerID := middleware.GetUserID(c)
	tripID := c.Param("id")

	trip, err := h.tripService.GetTrip(c.Request.Context(), viewerID, tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

func (h *TripHandler) DeleteTrip(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	tripID := c.Param("id")

	if err := h.tripService.DeleteTrip(c.Request.Context(), actorID, tripID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted"})
}

func (h *TripHandler) ListMyTrips(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	offset, limit := pagination(c)

	trips, err := h.tripService.ListMyTrips(c.Request.Context(), ownerID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trips":  trips,
		"offset": offset,
		"limit":  limit,
	})
}

func (h *TripHandler) ListPublicTrips(c *gin.Context) {
	destination := c.Query("destination")
	offset, limit := pagination(c)

	trips, err := h.tripService.ListPublicTrips(c.Request.Context(), destination, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trips":       trips,
		"destination": destination,
		"offset":      offset,
		"limit":       limit,
	})
}

func (h *TripHandler) AddItinerary(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	tripID := c.Param("id")

	var req services.AddItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	it, err := h.tripService.AddItinerary(c.Request.Context(), actorID, tripID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Itinerary added",
		"itinerary": it,
	})
}

func (h *TripHandler) ListItineraries(c *gin.Context) {
	viewerID := middleware.GetUserID(c)
	tripID := c.Param("id")

	items, err := h.tripService.ListItineraries(c.Request.Context(), viewerID, tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"itineraries": items})
}

func (h *TripHandler) DeleteItinerary(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	itineraryID := c.Param("id")

	if err := h.tripService.DeleteItinerary(c.Request.Context(), actorID, itineraryID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Itinerary deleted"})
}
