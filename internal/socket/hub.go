// internal/socket/hub.go
package socket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Invite messages
	MessageInviteCreated  MessageType = "invite_created"
	MessageInviteAccepted MessageType = "invite_accepted"
	MessageInviteExpired  MessageType = "invite_expired"

	// Squad messages
	MessageSquadCompleted MessageType = "squad_completed"

	// System messages
	MessagePing MessageType = "ping"
	MessagePong MessageType = "pong"
	MessageAck  MessageType = "ack"
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType            `json:"type"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Client represents a connected WebSocket client, identified by the wallet
// address the signing extension reported.
type Client struct {
	ID       string
	Wallet   string
	Conn     *websocket.Conn
	Hub      *Hub
	Send     chan []byte
	lastPing time.Time
}

// Hub maintains the set of active clients and routes squad events to them.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Clients indexed by wallet address for direct messaging
	walletClients map[string]map[*Client]bool

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Direct message to a specific wallet
	directMessage chan *DirectMessage

	mu sync.RWMutex
}

// DirectMessage represents a message to be sent to a specific wallet
type DirectMessage struct {
	Wallet  string
	Message []byte
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:       make(map[*Client]bool),
		walletClients: make(map[string]map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		directMessage: make(chan *DirectMessage, 256),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	log.Println("[Hub] WebSocket hub started")

	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case dm := <-h.directMessage:
			h.sendToWallet(dm)

		case <-pingTicker.C:
			h.pingClients()
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	if h.walletClients[client.Wallet] == nil {
		h.walletClients[client.Wallet] = make(map[*Client]bool)
	}
	h.walletClients[client.Wallet][client] = true

	log.Printf("[Hub] Client registered: wallet=%s, id=%s, total_clients=%d",
		client.Wallet, client.ID, len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)

		if clients, ok := h.walletClients[client.Wallet]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.walletClients, client.Wallet)
			}
		}

		close(client.Send)
		log.Printf("[Hub] Client disconnected: wallet=%s, id=%s, total_clients=%d",
			client.Wallet, client.ID, len(h.clients))
	}
}

func (h *Hub) sendToWallet(dm *DirectMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.walletClients[dm.Wallet]
	if !ok {
		return
	}

	for client := range clients {
		select {
		case client.Send <- dm.Message:
		default:
			go func(c *Client) {
				h.unregister <- c
			}(client)
		}
	}
}

func (h *Hub) pingClients() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{
		Type:      MessagePing,
		Timestamp: time.Now(),
	}
	data, _ := json.Marshal(msg)

	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			go func(c *Client) {
				h.unregister <- c
			}(client)
		}
	}
}

// SendToWallet sends a message to every connection held by a wallet
func (h *Hub) SendToWallet(walletAddress string, msgType MessageType, payload map[string]interface{}) {
	msg := Message{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[Hub] Error marshaling message: %v", err)
		return
	}

	h.directMessage <- &DirectMessage{
		Wallet:  walletAddress,
		Message: data,
	}
}

// IsWalletConnected checks if a wallet has at least one live connection
func (h *Hub) IsWalletConnected(walletAddress string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.walletClients[walletAddress]
	return ok
}

// GetConnectedClientsCount returns total connected clients
func (h *Hub) GetConnectedClientsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
