package models

import "time"

// ============================================
// Invite DTOs
// ============================================

type CreateInviteRequest struct {
	SquadName     string `json:"squadName" binding:"required"`
	CreatorWallet string `json:"creatorWallet" binding:"required"`
	InviteeWallet string `json:"inviteeWallet" binding:"required"`
	ExpiresInDays int    `json:"expiresInDays,omitempty"`
}

type AcceptInviteRequest struct {
	InviteID      string `json:"inviteId" binding:"required"`
	InviteeWallet string `json:"inviteeWallet" binding:"required"`
}

type InviteResponse struct {
	ID            string    `json:"id"`
	SquadName     string    `json:"squadName"`
	CreatorWallet string    `json:"creatorWallet"`
	InviteeWallet string    `json:"inviteeWallet"`
	Status        string    `json:"status"`
	ExpiresAt     time.Time `json:"expiresAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ============================================
// Profile DTOs
// ============================================

type LinkWalletRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
}

type ProfileResponse struct {
	ID            string    `json:"id"`
	WalletAddress string    `json:"walletAddress"`
	Email         string    `json:"email,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
