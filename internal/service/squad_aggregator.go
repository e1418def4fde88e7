package service

import (
	"time"

	"github.com/squadhq/squad-backend/internal/repository"
	"github.com/squadhq/squad-backend/internal/types"
)

// SquadStatus is the fully typed aggregate a caller uses to decide whether
// on-chain squad creation is permitted.
type SquadStatus struct {
	TotalInvites    int  `json:"totalInvites"`
	AcceptedInvites int  `json:"acceptedInvites"`
	PendingInvites  int  `json:"pendingInvites"`
	ExpiredInvites  int  `json:"expiredInvites"`
	IsComplete      bool `json:"isComplete"`
}

// SquadInviteView is the per-invite slice of a squad payload. The squad name
// and creator are carried by the enclosing SquadInfo, not repeated here.
type SquadInviteView struct {
	ID            string    `json:"id"`
	InviteeWallet string    `json:"inviteeWallet"`
	Status        string    `json:"status"`
	ExpiresAt     time.Time `json:"expiresAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SquadInfo is the derived view of one squad. It has no stored counterpart;
// it is recomputed from the invite set on every query.
type SquadInfo struct {
	SquadName     string   `json:"squadName"`
	CreatorWallet string   `json:"creatorWallet"`
	MemberWallets []string `json:"memberWallets"`
	SquadStatus
	Invites      []SquadInviteView `json:"invites"`
	CreatedAt    time.Time         `json:"createdAt"`
	LastActivity time.Time         `json:"lastActivity"`
}

// BuildStatus computes the aggregate status of one squad's invites.
func BuildStatus(invites []*repository.SquadInvite) SquadStatus {
	status := SquadStatus{TotalInvites: len(invites)}
	for _, invite := range invites {
		switch invite.Status {
		case types.InviteStatusAccepted:
			status.AcceptedInvites++
		case types.InviteStatusPending:
			status.PendingInvites++
		case types.InviteStatusExpired:
			status.ExpiredInvites++
		}
	}
	status.IsComplete = status.TotalInvites > 0 && status.AcceptedInvites == status.TotalInvites
	return status
}

// BuildSquads groups a creator's invites by squad name and derives each
// squad's view. Invites must already be reconciled and ordered by squad name
// ascending, then creation time ascending; the grouping preserves that order,
// so squads come out sorted by name and members by creation order.
func BuildSquads(creatorWallet string, invites []*repository.SquadInvite) []*SquadInfo {
	var names []string
	groups := make(map[string][]*repository.SquadInvite)

	for _, invite := range invites {
		if _, ok := groups[invite.SquadName]; !ok {
			names = append(names, invite.SquadName)
		}
		groups[invite.SquadName] = append(groups[invite.SquadName], invite)
	}

	var squads []*SquadInfo
	for _, name := range names {
		group := groups[name]

		info := &SquadInfo{
			SquadName:     name,
			CreatorWallet: creatorWallet,
			MemberWallets: []string{creatorWallet},
			SquadStatus:   BuildStatus(group),
			Invites:       make([]SquadInviteView, 0, len(group)),
			CreatedAt:     group[0].CreatedAt,
			LastActivity:  group[0].UpdatedAt,
		}

		for _, invite := range group {
			info.Invites = append(info.Invites, SquadInviteView{
				ID:            invite.ID,
				InviteeWallet: invite.InviteeWallet,
				Status:        invite.Status,
				ExpiresAt:     invite.ExpiresAt,
				CreatedAt:     invite.CreatedAt,
				UpdatedAt:     invite.UpdatedAt,
			})
			if invite.Status == types.InviteStatusAccepted {
				info.MemberWallets = append(info.MemberWallets, invite.InviteeWallet)
			}
			if invite.CreatedAt.Before(info.CreatedAt) {
				info.CreatedAt = invite.CreatedAt
			}
			if invite.UpdatedAt.After(info.LastActivity) {
				info.LastActivity = invite.UpdatedAt
			}
		}

		squads = append(squads, info)
	}
	return squads
}
