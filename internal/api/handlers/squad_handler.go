package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/squadhq/squad-backend/internal/service"
	"github.com/squadhq/squad-backend/internal/wallet"
)

// SquadHandler exposes the derived squad views. Squads have no stored
// representation; every response is computed from the invite set.
type SquadHandler struct {
	inviteService service.InviteService
}

// ListSquads handles GET /api/squad/:creatorWallet
func (h *SquadHandler) ListSquads(c *gin.Context) {
	creatorWallet := c.Param("creatorWallet")
	squads, err := h.inviteService.ListSquadsFor(c.Request.Context(), creatorWallet)
	if err != nil {
		respondError(c, err)
		return
	}

	if squads == nil {
		squads = []*service.SquadInfo{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"creatorWallet": wallet.Normalize(creatorWallet),
		"squads":        squads,
	})
}
