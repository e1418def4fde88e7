// internal/socket/handler.go
package socket

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/squadhq/squad-backend/internal/wallet"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// In production, restrict to your domains
		return true
	},
}

// Handler handles WebSocket connections
type Handler struct {
	Hub *Hub
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub) *Handler {
	return &Handler{Hub: hub}
}

// HandleWebSocket handles WebSocket upgrade requests. The wallet extension is
// the address source; the address arrives as a query parameter because the
// browser WebSocket API cannot set custom headers.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	addr := c.Query("wallet")
	if addr == "" {
		log.Println("[WebSocket] No wallet address provided")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Wallet address required"})
		return
	}

	if !wallet.IsValid(addr) {
		log.Printf("[WebSocket] Invalid wallet address: %s", addr)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid wallet address format"})
		return
	}
	addr = wallet.Normalize(addr)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WebSocket] Upgrade error: %v", err)
		return
	}

	log.Printf("[WebSocket] Client connected: wallet=%s", addr)

	client := NewClient(h.Hub, addr, conn)
	h.Hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}

// NewClient creates a new WebSocket client
func NewClient(hub *Hub, walletAddress string, conn *websocket.Conn) *Client {
	return &Client{
		ID:       uuid.New().String(),
		Wallet:   walletAddress,
		Conn:     conn,
		Hub:      hub,
		Send:     make(chan []byte, 256),
		lastPing: time.Now(),
	}
}
