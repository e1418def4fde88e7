package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/squadhq/squad-backend/internal/api/middleware"
	"github.com/squadhq/squad-backend/internal/models"
	"github.com/squadhq/squad-backend/internal/service"
)

// ProfileHandler exposes the authenticated profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// GetProfile handles GET /api/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	email, ok := middleware.RequireSessionEmail(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": toProfileResponse(profile),
	})
}

// LinkWallet handles POST /api/profile
func (h *ProfileHandler) LinkWallet(c *gin.Context) {
	email, ok := middleware.RequireSessionEmail(c)
	if !ok {
		return
	}

	var req models.LinkWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields"})
		return
	}

	profile, err := h.profileService.LinkWallet(c.Request.Context(), email, req.WalletAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": toProfileResponse(profile),
	})
}
