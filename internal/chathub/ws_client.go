package chathub

import (
	"encoding/json"
	"log"
	"time"

	"roomchat/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// WebSocketClient implements the Client interface over a gorilla/websocket
// connection.
type WebSocketClient struct {
	ID       string
	Username string
	RoomID   string
	Conn     *websocket.Conn
	Hub      *Hub
	Send     chan models.ServerEvent
}

func (c *WebSocketClient) GetID() string       { return c.ID }
func (c *WebSocketClient) GetUsername() string { return c.Username }
func (c *WebSocketClient) GetRoomID() string   { return c.RoomID }
func (c *WebSocketClient) SetRoomID(id string) { c.RoomID = id }

func (c *WebSocketClient) GetSendChannel() chan<- models.ServerEvent { return c.Send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the Send channel, which stops the write pump. Only the hub
// calls this, after the client has been unregistered.
func (c *WebSocketClient) Close() {
	close(c.Send)
}

// readPump decodes inbound events and forwards them to the hub. A transport
// error or close is observed here and surfaces as an unregister.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading from client %s: %v", c.ID, err)
			}
			break
		}

		var ev models.ClientEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Printf("invalid payload from client %s: %v", c.ID, err)
			c.reply(models.ServerEvent{
				Event: models.EventError,
				Data:  models.ErrorNotice{Message: "invalid payload"},
			})
			continue
		}

		ev.SenderID = c.ID
		c.Hub.EventCh <- ev
	}
}

// reply queues an event for this connection without going through the hub.
// Used only for transport-level validation errors.
func (c *WebSocketClient) reply(ev models.ServerEvent) {
	select {
	case c.Send <- ev:
	default:
		log.Printf("client %s send buffer full, dropping %s", c.ID, ev.Event)
	}
}

// writePump serializes queued events onto the connection and keeps it alive
// with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteJSON(ev); err != nil {
				log.Printf("error writing to client %s: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
