package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/triptrizz/triptrizz-server/internal/middleware"
	"github.com/triptrizz/triptrizz-server/internal/services"
)

// AdminHandler backs the moderation dashboard. All routes sit behind
// middleware.RequireAdmin.
type AdminHandler struct {
	verificationService *services.VerificationService
	moderationService   *services.ModerationService
}

func NewAdminHandler(verificationService *services.VerificationService, moderationService *services.ModerationService) *AdminHandler {
	return &AdminHandler{
		verificationService: verificationService,
		moderationService:   moderationService,
	}
}

type submitVerificationBody struct {
	DocumentURL string `json:"document_url" binding:"required"`
}

// SubmitVerification is the one user-facing route in this handler; it is
// registered under the regular protected group.
func (h *AdminHandler) SubmitVerification(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req submitVerificationBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.verificationService.Submit(c.Request.Context(), userID, req.DocumentURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Verification request submitted",
		"request": request,
	})
}

func (h *AdminHandler) ListPendingVerifications(c *gin.Context) {
	offset, limit := pagination(c)

	requests, err := h.verificationService.ListPending(c.Request.Context(), offset, limit)
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

type reviewVerificationBody struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note" binding:"max=500"`
}

func (h *AdminHandler) ReviewVerification(c *gin.Context) {
	reviewerID := middleware.GetUserID(c)
	requestID := c.Param("id")

	var req reviewVerificationBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.verificationService.Review(c.Request.Context(), reviewerID, requestID, req.Approve, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Verification request reviewed",
		"request": request,
	})
}

type setActiveBody struct {
	Active bool `json:"active"`
}

func (h *AdminHandler) SetUserActive(c *gin.Context) {
	adminID := middleware.GetUserID(c)
	userID := c.Param("id")

	var req setActiveBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.moderationService.SetUserActive(c.Request.Context(), adminID, userID, req.Active); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}

func (h *AdminHandler) RemovePost(c *gin.Context) {
	adminID := middleware.GetUserID(c)
	postID := c.Param("id")

	if err := h.moderationService.RemovePost(c.Request.Context(), adminID, postID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post removed"})
}
