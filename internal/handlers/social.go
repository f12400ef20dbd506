package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/triptrizz/triptrizz-server/internal/middleware"
	"github.com/triptrizz/triptrizz-server/internal/services"
)

// SocialHandler exposes the follow-request lifecycle and blocking.
type SocialHandler struct {
	relationshipService *services.RelationshipService
}

func NewSocialHandler(relationshipService *services.RelationshipService) *SocialHandler {
	return &SocialHandler{relationshipService: relationshipService}
}

type followRequestBody struct {
	UserID string `json:"user_id" binding:"required"`
}

type blockRequestBody struct {
	UserID  string `json:"user_id" binding:"required"`
	Context string `json:"context"`
}

func (h *SocialHandler) SendFollowRequest(c *gin.Context) {
	actorID := middleware.GetUserID(c)

	var req followRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rel, err := h.relationshipService.SendFollowRequest(c.Request.Context(), actorID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Follow request sent",
		"request": rel,
	})
}

func (h *SocialHandler) AcceptFollowRequest(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	followerID := c.Param("id")

	rel, err := h.relationshipService.AcceptFollowRequest(c.Request.Context(), actorID, followerID, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Follow request accepted",
		"relationship": rel,
	})
}

func (h *SocialHandler) RejectFollowRequest(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	followerID := c.Param("id")

	if err := h.relationshipService.RejectFollowRequest(c.Request.Context(), actorID, followerID, actorID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Follow request rejected"})
}

func (h *SocialHandler) CancelFollowRequest(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	followingID := c.Param("id")

	if err := h.relationshipService.CancelFollowRequest(c.Request.Context(), actorID, actorID, followingID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Follow request cancelled"})
}

func (h *SocialHandler) Unfollow(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	followingID := c.Param("id")

	if err := h.relationshipService.Unfollow(c.Request.Context(), actorID, followingID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed successfully"})
}

func (h *SocialHandler) FollowStatus(c *gin.Context) {
	viewerID := middleware.GetUserID(c)
	targetID := c.Param("id")

	status, err := h.relationshipService.FollowStatus(c.Request.Context(), viewerID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h *SocialHandler) Block(c *gin.Context) {
	actorID := middleware.GetUserID(c)

	var req blockRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.relationshipService.BlockUser(c.Request.Context(), actorID, req.UserID, req.Context); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User blocked"})
}

func (h *SocialHandler) Unblock(c *gin.Context) {
	actorID := middleware.GetUserID(c)

	var req blockRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.relationshipService.UnblockUser(c.Request.Context(), actorID, req.UserID, req.Context); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User unblocked"})
}

func (h *SocialHandler) GetFollowers(c *gin.Context) {
	userID := c.Param("id")
	offset, limit := pagination(c)

	followers, err := h.relationshipService.ListFollowers(c.Request.Context(), userID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"followers": followers,
		"offset":    offset,
		"limit":     limit,
	})
}

func (h *SocialHandler) GetFollowing(c *gin.Context) {
	userID := c.Param("id")
	offset, limit := pagination(c)

	following, err := h.relationshipService.ListFollowing(c.Request.Context(), userID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"following": following,
		"offset":    offset,
		"limit":     limit,
	})
}

func (h *SocialHandler) PendingRequests(c *gin.Context) {
	userID := middleware.GetUserID(c)
	offset, limit := pagination(c)

	requests, err := h.relationshipService.ListPendingRequests(c.Request.Context(), userID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"offset":   offset,
		"limit":    limit,
	})
}
