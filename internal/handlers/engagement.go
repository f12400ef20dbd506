package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/triptrizz/triptrizz-server/internal/middleware"
	"github.com/triptrizz/triptrizz-server/internal/services"
)

// EngagementHandler covers likes, forum posts, votes and comments.
type EngagementHandler struct {
	engagementService *services.EngagementService
}

func NewEngagementHandler(engagementService *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

type toggleLikeBody struct {
	EntityKind string `json:"entity_kind" binding:"required"`
	EntityID   string `json:"entity_id" binding:"required"`
}

func (h *EngagementHandler) ToggleLike(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req toggleLikeBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.engagementService.ToggleLike(c.Request.Context(), userID, req.EntityKind, req.EntityID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EngagementHandler) CreatePost(c *gin.Context) {
	authorID := middleware.GetUserID(c)

	var req services.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.engagementService.CreatePost(c.Request.Context(), authorID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created",
		"post":    post,
	})
}

func (h *EngagementHandler) GetPost(c *gin.Context) {
	post, err := h.engagementService.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *EngagementHandler) ListPosts(c *gin.Context) {
	offset, limit := pagination(c)

	posts, err := h.engagementService.ListPosts(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":  posts,
		"offset": offset,
		"limit":  limit,
	})
}

type voteBody struct {
	Value int `json:"value" binding:"required"`
}

func (h *EngagementHandler) VotePost(c *gin.Context) {
	userID := middleware.GetUserID(c)
	postID := c.Param("id")

	var req voteBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.engagementService.VotePost(c.Request.Context(), userID, postID, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EngagementHandler) CreateComment(c *gin.Context) {
	authorID := middleware.GetUserID(c)
	postID := c.Param("id")

	var req services.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.engagementService.CreateComment(c.Request.Context(), authorID, postID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment created",
		"comment": comment,
	})
}

func (h *EngagementHandler) ListComments(c *gin.Context) {
	postID := c.Param("id")
	offset, limit := pagination(c)

	comments, err := h.engagementService.ListComments(c.Request.Context(), postID, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"offset":   offset,
		"limit":    limit,
	})
}
