package types

// Invite status values
const (
	InviteStatusPending  = "PENDING"
	InviteStatusAccepted = "ACCEPTED"
	InviteStatusExpired  = "EXPIRED"
)

// Invite expiry policy (days)
const (
	DefaultExpiresInDays = 7
	MinExpiresInDays     = 1
	MaxExpiresInDays     = 30
)
