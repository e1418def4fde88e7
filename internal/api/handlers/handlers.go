package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/squadhq/squad-backend/internal/apperr"
	"github.com/squadhq/squad-backend/internal/models"
	"github.com/squadhq/squad-backend/internal/repository"
	"github.com/squadhq/squad-backend/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Invite  *InviteHandler
	Squad   *SquadHandler
	Profile *ProfileHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Invite:  &InviteHandler{inviteService: services.Invite},
		Squad:   &SquadHandler{inviteService: services.Invite},
		Profile: &ProfileHandler{profileService: services.Profile},
	}
}

// ============================================
// Response Mappers
// ============================================

func toInviteResponse(inv *repository.SquadInvite) models.InviteResponse {
	return models.InviteResponse{
		ID:            inv.ID,
		SquadName:     inv.SquadName,
		CreatorWallet: inv.CreatorWallet,
		InviteeWallet: inv.InviteeWallet,
		Status:        inv.Status,
		ExpiresAt:     inv.ExpiresAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func toInviteResponses(invites []*repository.SquadInvite) []models.InviteResponse {
	out := make([]models.InviteResponse, len(invites))
	for i, inv := range invites {
		out[i] = toInviteResponse(inv)
	}
	return out
}

func toProfileResponse(p *repository.Profile) models.ProfileResponse {
	resp := models.ProfileResponse{
		ID:            p.ID,
		WalletAddress: p.WalletAddress,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Email != nil {
		resp.Email = *p.Email
	}
	return resp
}

// ============================================
// Error Mapping
// ============================================

// respondError translates a service error into an HTTP status and the
// standard error envelope.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch apperr.CodeOf(err) {
	case apperr.CodeValidation, apperr.CodeInvalidState:
		status = http.StatusBadRequest
		message = apperr.MessageOf(err)
	case apperr.CodeAuthorization:
		status = http.StatusForbidden
		message = apperr.MessageOf(err)
	case apperr.CodeNotFound:
		status = http.StatusNotFound
		message = apperr.MessageOf(err)
	case apperr.CodeConflict:
		status = http.StatusConflict
		message = apperr.MessageOf(err)
	default:
		log.Printf("[HTTP] Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	c.JSON(status, gin.H{"success": false, "error": message})
}
