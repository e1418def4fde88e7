package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/squadhq/squad-backend/internal/models"
	"github.com/squadhq/squad-backend/internal/service"
	"github.com/squadhq/squad-backend/internal/wallet"
)

// InviteHandler exposes HTTP endpoints for the invite lifecycle.
type InviteHandler struct {
	inviteService service.InviteService
}

// CreateInvite handles POST /api/invite
func (h *InviteHandler) CreateInvite(c *gin.Context) {
	var req models.CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields"})
		return
	}

	invite, err := h.inviteService.CreateInvite(
		c.Request.Context(),
		req.SquadName, req.CreatorWallet, req.InviteeWallet, req.ExpiresInDays,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"invite":  toInviteResponse(invite),
	})
}

// AcceptInvite handles POST /api/accept
func (h *InviteHandler) AcceptInvite(c *gin.Context) {
	var req models.AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields"})
		return
	}

	invite, squadStatus, err := h.inviteService.AcceptInvite(c.Request.Context(), req.InviteID, req.InviteeWallet)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"invite":      toInviteResponse(invite),
		"squadStatus": squadStatus,
	})
}

// ListInvites handles GET /api/invites/:walletAddress
func (h *InviteHandler) ListInvites(c *gin.Context) {
	walletAddress := c.Param("walletAddress")
	invites, err := h.inviteService.ListInvitesFor(c.Request.Context(), walletAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"walletAddress": wallet.Normalize(walletAddress),
		"invites":       toInviteResponses(invites),
	})
}
