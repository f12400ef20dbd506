package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/triptrizz/triptrizz-server/internal/middleware"
	"github.com/triptrizz/triptrizz-server/internal/services"
)

type FeedHandler struct {
	activityService *services.ActivityService
}

func NewFeedHandler(activityService *services.ActivityService) *FeedHandler {
	return &FeedHandler{activityService: activityService}
}

func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID := middleware.GetUserID(c)
	offset, limit := pagination(c)

	events, err := h.activityService.GetFeed(c.Request.Context(), userID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"offset": offset,
		"limit":  limit,
	})
}
