package handler

import (
	"net/http"

	"roomchat/backend/internal/chathub"
	"roomchat/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any domain. Tighten for production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the HTTP connection and registers a new anonymous
// client with the hub. The display name is generated here, once, and never
// changes for the lifetime of the connection.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &chathub.WebSocketClient{
		ID:       uuid.New().String(),
		Username: chathub.GuestName(),
		Hub:      h.Hub,
		Conn:     conn,
		Send:     make(chan models.ServerEvent, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
