package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/triptrizz/triptrizz-server/internal/middleware"
	"github.com/triptrizz/triptrizz-server/internal/services"
)

type MatchHandler struct {
	matchService *services.MatchService
	chatService  *services.ChatService
}

func NewMatchHandler(matchService *services.MatchService, chatService *services.ChatService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		chatService:  chatService,
	}
}

type swipeBody struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *MatchHandler) Swipe(c *gin.Context) {
	actorID := middleware.GetUserID(c)

	var req swipeBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.matchService.Swipe(c.Request.Context(), actorID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *MatchHandler) Reject(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	targetID := c.Param("id")

	if err := h.matchService.RejectMatch(c.Request.Context(), actorID, targetID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Match rejected"})
}

func (h *MatchHandler) ListMatches(c *gin.Context) {
	userID := middleware.GetUserID(c)
	offset, limit := pagination(c)

	matches, err := h.matchService.ListMatches(c.Request.Context(), userID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"offset":  offset,
		"limit":   limit,
	})
}

type sendMessageBody struct {
	Body string `json:"body" binding:"required,min=1,max=5000"`
}

func (h *MatchHandler) SendMessage(c *gin.Context) {
	senderID := middleware.GetUserID(c)
	conversationID := c.Param("id")

	var req sendMessageBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.chatService.SendMessage(c.Request.Context(), senderID, conversationID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

func (h *MatchHandler) ListMessages(c *gin.Context) {
	userID := middleware.GetUserID(c)
	conversationID := c.Param("id")
	offset, limit := pagination(c)

	msgs, err := h.chatService.ListMessages(c.Request.Context(), userID, conversationID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": msgs,
		"offset":   offset,
		"limit":    limit,
	})
}

func (h *MatchHandler) ListConversations(c *gin.Context) {
	userID := middleware.GetUserID(c)
	offset, limit := pagination(c)

	convs, err := h.chatService.ListConversations(c.Request.Context(), userID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversations": convs,
		"offset":        offset,
		"limit":         limit,
	})
}

func (h *MatchHandler) DeleteMessage(c *gin.Context) {
	userID := middleware.GetUserID(c)
	messageID := c.Param("id")

	if err := h.chatService.DeleteMessage(c.Request.Context(), userID, messageID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
