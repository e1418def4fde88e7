package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/squadhq/squad-backend/internal/apperr"
	"github.com/squadhq/squad-backend/internal/email"
	"github.com/squadhq/squad-backend/internal/repository"
	"github.com/squadhq/squad-backend/internal/socket"
	"github.com/squadhq/squad-backend/internal/types"
	"github.com/squadhq/squad-backend/internal/wallet"
)

// InviteService is the single entry point for the invite lifecycle: creation,
// acceptance, and the two read views. Expiration is reconciled lazily inside
// every operation; there is no background sweep.
type InviteService interface {
	CreateInvite(ctx context.Context, squadName, creatorWallet, inviteeWallet string, expiresInDays int) (*repository.SquadInvite, error)
	AcceptInvite(ctx context.Context, inviteID, actingWallet string) (*repository.SquadInvite, *SquadStatus, error)
	ListInvitesFor(ctx context.Context, walletAddress string) ([]*repository.SquadInvite, error)
	ListSquadsFor(ctx context.Context, creatorWallet string) ([]*SquadInfo, error)
}

type inviteService struct {
	inviteRepo  repository.InviteRepository
	profileRepo repository.ProfileRepository
	emailSvc    *email.Service
	broadcaster *socket.Broadcaster
	frontendURL string
}

func NewInviteService(
	inviteRepo repository.InviteRepository,
	profileRepo repository.ProfileRepository,
	emailSvc *email.Service,
	broadcaster *socket.Broadcaster,
	frontendURL string,
) InviteService {
	return &inviteService{
		inviteRepo:  inviteRepo,
		profileRepo: profileRepo,
		emailSvc:    emailSvc,
		broadcaster: broadcaster,
		frontendURL: frontendURL,
	}
}

func (s *inviteService) CreateInvite(ctx context.Context, squadName, creatorWallet, inviteeWallet string, expiresInDays int) (*repository.SquadInvite, error) {
	if squadName == "" {
		return nil, apperr.Validation("Squad name is required")
	}
	if !wallet.IsValid(creatorWallet) || !wallet.IsValid(inviteeWallet) {
		return nil, apperr.Validation("Invalid wallet address format")
	}
	creatorWallet = wallet.Normalize(creatorWallet)
	inviteeWallet = wallet.Normalize(inviteeWallet)
	if creatorWallet == inviteeWallet {
		return nil, apperr.Validation("Cannot invite yourself")
	}

	if expiresInDays == 0 {
		expiresInDays = types.DefaultExpiresInDays
	}
	if expiresInDays < types.MinExpiresInDays || expiresInDays > types.MaxExpiresInDays {
		return nil, apperr.Validation("expiresInDays must be between %d and %d",
			types.MinExpiresInDays, types.MaxExpiresInDays)
	}

	invite := &repository.SquadInvite{
		SquadName:     squadName,
		CreatorWallet: creatorWallet,
		InviteeWallet: inviteeWallet,
		ExpiresAt:     time.Now().Add(time.Duration(expiresInDays) * 24 * time.Hour),
	}

	err := s.inviteRepo.Create(ctx, invite)
	if errors.Is(err, repository.ErrDuplicateInvite) {
		existing, ferr := s.inviteRepo.FindBySquadAndInvitee(ctx, squadName, inviteeWallet)
		if ferr == nil && existing != nil && existing.Status == types.InviteStatusAccepted {
			return nil, apperr.Conflict("User has already accepted an invite to this squad")
		}
		return nil, apperr.Conflict("Invite already exists and is pending")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	s.notifyInviteCreated(invite)
	return invite, nil
}

func (s *inviteService) AcceptInvite(ctx context.Context, inviteID, actingWallet string) (*repository.SquadInvite, *SquadStatus, error) {
	if inviteID == "" {
		return nil, nil, apperr.Validation("Invite id is required")
	}
	if !wallet.IsValid(actingWallet) {
		return nil, nil, apperr.Validation("Invalid wallet address format")
	}
	actingWallet = wallet.Normalize(actingWallet)

	invite, err := s.inviteRepo.FindByID(ctx, inviteID)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	if invite == nil {
		return nil, nil, apperr.NotFound("Invite not found")
	}

	now := time.Now()
	invite, err = s.reconcile(ctx, invite, now)
	if err != nil {
		return nil, nil, err
	}

	if actingWallet != invite.InviteeWallet {
		return nil, nil, apperr.Authorization("Unauthorized: wallet address mismatch")
	}

	switch invite.Status {
	case types.InviteStatusAccepted:
		return nil, nil, apperr.InvalidState(apperr.ReasonAlreadyAccepted, "Invite has already been accepted")
	case types.InviteStatusExpired:
		return nil, nil, apperr.InvalidState(apperr.ReasonExpired, "Invite has expired")
	}

	updated, err := s.inviteRepo.MarkAccepted(ctx, invite.ID, now)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	if updated == nil {
		// Lost a concurrent transition; re-read to report what happened.
		current, ferr := s.inviteRepo.FindByID(ctx, invite.ID)
		if ferr != nil {
			return nil, nil, apperr.Internal(ferr)
		}
		if current != nil && current.Status == types.InviteStatusAccepted {
			return nil, nil, apperr.InvalidState(apperr.ReasonAlreadyAccepted, "Invite has already been accepted")
		}
		return nil, nil, apperr.InvalidState(apperr.ReasonExpired, "Invite has expired")
	}

	status, err := s.squadStatus(ctx, updated.CreatorWallet, updated.SquadName, now)
	if err != nil {
		return nil, nil, err
	}

	s.notifyInviteAccepted(ctx, updated, status)
	return updated, status, nil
}

func (s *inviteService) ListInvitesFor(ctx context.Context, walletAddress string) ([]*repository.SquadInvite, error) {
	if !wallet.IsValid(walletAddress) {
		return nil, apperr.Validation("Invalid wallet address format")
	}
	walletAddress = wallet.Normalize(walletAddress)

	invites, err := s.inviteRepo.FindByInvitee(ctx, walletAddress)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return s.reconcileAll(ctx, invites, time.Now())
}

func (s *inviteService) ListSquadsFor(ctx context.Context, creatorWallet string) ([]*SquadInfo, error) {
	if !wallet.IsValid(creatorWallet) {
		return nil, apperr.Validation("Invalid wallet address format")
	}
	creatorWallet = wallet.Normalize(creatorWallet)

	invites, err := s.inviteRepo.FindByCreator(ctx, creatorWallet)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	invites, err = s.reconcileAll(ctx, invites, time.Now())
	if err != nil {
		return nil, err
	}
	return BuildSquads(creatorWallet, invites), nil
}

// reconcile lazily expires a stale PENDING invite through a single
// conditional update. A nil result from the repository means a concurrent
// writer already moved the invite on; re-read and use whatever it became.
func (s *inviteService) reconcile(ctx context.Context, invite *repository.SquadInvite, now time.Time) (*repository.SquadInvite, error) {
	if invite.Status != types.InviteStatusPending || !now.After(invite.ExpiresAt) {
		return invite, nil
	}

	updated, err := s.inviteRepo.MarkExpired(ctx, invite.ID, now)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if updated != nil {
		if s.broadcaster != nil {
			s.broadcaster.SendInviteExpired(updated.InviteeWallet, map[string]interface{}{
				"inviteId":  updated.ID,
				"squadName": updated.SquadName,
			})
		}
		return updated, nil
	}

	current, err := s.inviteRepo.FindByID(ctx, invite.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if current == nil {
		return invite, nil
	}
	return current, nil
}

func (s *inviteService) reconcileAll(ctx context.Context, invites []*repository.SquadInvite, now time.Time) ([]*repository.SquadInvite, error) {
	for i, invite := range invites {
		reconciled, err := s.reconcile(ctx, invite, now)
		if err != nil {
			return nil, err
		}
		invites[i] = reconciled
	}
	return invites, nil
}

func (s *inviteService) squadStatus(ctx context.Context, creatorWallet, squadName string, now time.Time) (*SquadStatus, error) {
	invites, err := s.inviteRepo.FindBySquad(ctx, creatorWallet, squadName)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	invites, err = s.reconcileAll(ctx, invites, now)
	if err != nil {
		return nil, err
	}
	status := BuildStatus(invites)
	return &status, nil
}

func (s *inviteService) notifyInviteCreated(invite *repository.SquadInvite) {
	if s.broadcaster != nil {
		s.broadcaster.SendInviteCreated(invite.InviteeWallet, map[string]interface{}{
			"inviteId":      invite.ID,
			"squadName":     invite.SquadName,
			"creatorWallet": invite.CreatorWallet,
			"expiresAt":     invite.ExpiresAt,
		})
	}

	if s.emailSvc == nil {
		return
	}
	go func(invite *repository.SquadInvite) {
		profile, err := s.profileRepo.FindByWallet(context.Background(), invite.InviteeWallet)
		if err != nil || profile == nil || profile.Email == nil {
			return
		}
		inviteURL := fmt.Sprintf("%s/invites/%s", s.frontendURL, invite.InviteeWallet)
		if err := s.emailSvc.SendInviteNotification(
			invite.SquadName, *profile.Email, invite.CreatorWallet,
			inviteURL, invite.ExpiresAt.Format(time.RFC1123),
		); err != nil {
			log.Printf("[Invite] Failed to send invite email for %s: %v", invite.ID, err)
		}
	}(invite)
}

func (s *inviteService) notifyInviteAccepted(ctx context.Context, invite *repository.SquadInvite, status *SquadStatus) {
	if s.broadcaster == nil {
		return
	}

	s.broadcaster.SendInviteAccepted(invite.CreatorWallet, map[string]interface{}{
		"inviteId":      invite.ID,
		"squadName":     invite.SquadName,
		"inviteeWallet": invite.InviteeWallet,
		"isComplete":    status.IsComplete,
	})

	if !status.IsComplete {
		return
	}

	invites, err := s.inviteRepo.FindBySquad(ctx, invite.CreatorWallet, invite.SquadName)
	if err != nil {
		log.Printf("[Invite] Failed to load members for completed squad %s: %v", invite.SquadName, err)
		return
	}
	members := []string{invite.CreatorWallet}
	for _, inv := range invites {
		if inv.Status == types.InviteStatusAccepted {
			members = append(members, inv.InviteeWallet)
		}
	}
	s.broadcaster.SendSquadCompleted(members, map[string]interface{}{
		"squadName":     invite.SquadName,
		"creatorWallet": invite.CreatorWallet,
		"memberWallets": members,
	})
}
