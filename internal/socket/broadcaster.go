package socket

// Broadcaster provides high-level methods for broadcasting squad events
type Broadcaster struct {
	hub *Hub
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// SendInviteCreated notifies an invitee that a new invite is waiting
func (b *Broadcaster) SendInviteCreated(inviteeWallet string, invite map[string]interface{}) {
	b.hub.SendToWallet(inviteeWallet, MessageInviteCreated, invite)
}

// SendInviteAccepted notifies a creator that one of their invites was accepted
func (b *Broadcaster) SendInviteAccepted(creatorWallet string, payload map[string]interface{}) {
	b.hub.SendToWallet(creatorWallet, MessageInviteAccepted, payload)
}

// SendInviteExpired notifies an invitee that a pending invite lapsed
func (b *Broadcaster) SendInviteExpired(inviteeWallet string, payload map[string]interface{}) {
	b.hub.SendToWallet(inviteeWallet, MessageInviteExpired, payload)
}

// SendSquadCompleted notifies every member that the squad is ready for
// on-chain creation
func (b *Broadcaster) SendSquadCompleted(memberWallets []string, payload map[string]interface{}) {
	for _, wallet := range memberWallets {
		b.hub.SendToWallet(wallet, MessageSquadCompleted, payload)
	}
}
