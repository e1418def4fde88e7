package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/squadhq/squad-backend/internal/repository"
	"github.com/squadhq/squad-backend/internal/types"
)

const (
	creatorAddr = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	inviteeA    = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	inviteeB    = "0xcccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccc"
	inviteeC    = "0xdddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddd"
)

func mkInvite(squad, invitee, status string, createdAt time.Time) *repository.SquadInvite {
	return &repository.SquadInvite{
		ID:            "inv-" + squad + "-" + invitee[:6],
		SquadName:     squad,
		CreatorWallet: creatorAddr,
		InviteeWallet: invitee,
		Status:        status,
		ExpiresAt:     createdAt.Add(7 * 24 * time.Hour),
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func TestBuildStatus(t *testing.T) {
	base := time.Now()

	t.Run("empty squad is not complete", func(t *testing.T) {
		status := BuildStatus(nil)
		require.Zero(t, status.TotalInvites)
		require.False(t, status.IsComplete)
	})

	t.Run("mixed statuses", func(t *testing.T) {
		status := BuildStatus([]*repository.SquadInvite{
			mkInvite("alpha", inviteeA, types.InviteStatusAccepted, base),
			mkInvite("alpha", inviteeB, types.InviteStatusPending, base),
			mkInvite("alpha", inviteeC, types.InviteStatusExpired, base),
		})
		require.Equal(t, 3, status.TotalInvites)
		require.Equal(t, 1, status.AcceptedInvites)
		require.Equal(t, 1, status.PendingInvites)
		require.Equal(t, 1, status.ExpiredInvites)
		require.False(t, status.IsComplete)
	})

	t.Run("all accepted is complete", func(t *testing.T) {
		status := BuildStatus([]*repository.SquadInvite{
			mkInvite("alpha", inviteeA, types.InviteStatusAccepted, base),
			mkInvite("alpha", inviteeB, types.InviteStatusAccepted, base),
		})
		require.True(t, status.IsComplete)
	})
}

func TestBuildSquads(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Input mirrors the repository ordering: squad name asc, created_at asc.
	invites := []*repository.SquadInvite{
		mkInvite("alpha", inviteeA, types.InviteStatusAccepted, base),
		mkInvite("alpha", inviteeB, types.InviteStatusPending, base.Add(time.Hour)),
		mkInvite("bravo", inviteeB, types.InviteStatusAccepted, base.Add(2*time.Hour)),
		mkInvite("bravo", inviteeC, types.InviteStatusAccepted, base.Add(3*time.Hour)),
	}

	squads := BuildSquads(creatorAddr, invites)
	require.Len(t, squads, 2)

	alpha, bravo := squads[0], squads[1]
	require.Equal(t, "alpha", alpha.SquadName)
	require.Equal(t, "bravo", bravo.SquadName)

	require.Equal(t, []string{creatorAddr, inviteeA}, alpha.MemberWallets)
	require.False(t, alpha.IsComplete)
	require.Equal(t, 2, alpha.TotalInvites)
	require.Equal(t, base, alpha.CreatedAt)

	require.Len(t, alpha.Invites, 2)
	require.Equal(t, inviteeA, alpha.Invites[0].InviteeWallet)
	require.Equal(t, types.InviteStatusAccepted, alpha.Invites[0].Status)
	require.Equal(t, inviteeB, alpha.Invites[1].InviteeWallet)
	require.Equal(t, types.InviteStatusPending, alpha.Invites[1].Status)

	require.Equal(t, []string{creatorAddr, inviteeB, inviteeC}, bravo.MemberWallets)
	require.True(t, bravo.IsComplete)
	require.Equal(t, 2, bravo.AcceptedInvites)
	require.Equal(t, base.Add(3*time.Hour), bravo.LastActivity)
}

func TestBuildSquadsNoInvites(t *testing.T) {
	squads := BuildSquads(creatorAddr, nil)
	require.Empty(t, squads)
}
