package chathub

import (
	"errors"
	"fmt"
	"log"
	"time"

	"roomchat/backend/internal/models"
	"roomchat/backend/internal/storage"
)

// Hub owns all mutable coordinator state: the client registry (which doubles
// as the session registry, since display name and current room live on the
// Client) and the presence map. Every piece of it is touched only from the
// single Run goroutine, so no locking is needed; everything else talks to the
// hub over its channels.
type Hub struct {
	Clients  map[string]Client
	presence *Presence

	RegisterCh   chan Client
	UnregisterCh chan Client
	EventCh      chan models.ClientEvent
	countsCh     chan countsRequest

	Storage storage.Storage
}

type countsRequest struct {
	reply chan map[string]int
}

func NewHub(s storage.Storage) *Hub {
	return &Hub{
		Clients:      make(map[string]Client),
		presence:     NewPresence(),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		EventCh:      make(chan models.ClientEvent),
		countsCh:     make(chan countsRequest),
		Storage:      s,
	}
}

// Run drains the hub's channels, handling one event to completion before
// taking the next. That is what makes the validate-mutate-persist-broadcast
// sequence inside a handler atomic with respect to other events.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.RegisterCh:
			h.handleConnect(client)

		case client := <-h.UnregisterCh:
			h.handleDisconnect(client)

		case ev := <-h.EventCh:
			h.handleEvent(ev)

		case req := <-h.countsCh:
			req.reply <- h.presenceSnapshot()
		}
	}
}

// PresenceCounts returns a snapshot of live per-room connection counts. The
// request is queued and served by the Run loop like any other event, so the
// snapshot is consistent with in-flight mutations.
func (h *Hub) PresenceCounts() map[string]int {
	req := countsRequest{reply: make(chan map[string]int, 1)}
	h.countsCh <- req
	return <-req.reply
}

func (h *Hub) presenceSnapshot() map[string]int {
	out := make(map[string]int, len(h.presence.rooms))
	for room, set := range h.presence.rooms {
		out[room] = len(set)
	}
	return out
}

func (h *Hub) handleEvent(ev models.ClientEvent) {
	client, ok := h.Clients[ev.SenderID]
	if !ok {
		// Raced with a disconnect; there is nobody to answer.
		return
	}

	switch ev.Type {
	case models.EventJoinRoom:
		h.handleJoinRoom(client, ev.Room)
	case models.EventSendMessage:
		h.handleSendMessage(client, ev.Text)
	case models.EventTyping:
		h.handleTyping(client, ev.IsTyping)
	case models.EventCreateRoom:
		h.handleCreateRoom(client, ev.Room)
	default:
		h.sendError(client, fmt.Sprintf("unknown event type %q", ev.Type))
	}
}

func (h *Hub) handleConnect(client Client) {
	h.Clients[client.GetID()] = client
	log.Printf("client %s connected as %s (%d online)", client.GetID(), client.GetUsername(), len(h.Clients))

	rooms, err := h.roomSummaries()
	if err != nil {
		h.sendError(client, "failed to load rooms")
		return
	}
	h.sendTo(client, models.EventRoomsList, rooms)
}

func (h *Hub) handleDisconnect(client Client) {
	id := client.GetID()
	if _, ok := h.Clients[id]; !ok {
		return
	}
	delete(h.Clients, id)

	if room := client.GetRoomID(); room != "" {
		h.presence.Leave(id, room)
		h.notifyLeft(client, room)
		h.broadcastRoomUpdate(room)
	}

	client.Close()
	log.Printf("client %s disconnected (%d online)", id, len(h.Clients))
}

func (h *Hub) handleJoinRoom(client Client, name string) {
	if name == "" {
		h.sendError(client, "room name is required")
		return
	}

	room, err := h.Storage.GetRoomByName(name)
	if err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			h.sendError(client, fmt.Sprintf("room %q does not exist", name))
		} else {
			h.sendError(client, "failed to join room")
		}
		return
	}

	// Load history before mutating anything so a store failure leaves the
	// caller's state untouched.
	history, err := h.Storage.History(room.Name)
	if err != nil {
		h.sendError(client, "failed to load message history")
		return
	}

	if vacated := h.presence.Join(client.GetID(), room.Name); vacated != "" {
		h.notifyLeft(client, vacated)
		h.broadcastRoomUpdate(vacated)
	}
	client.SetRoomID(room.Name)

	h.sendTo(client, models.EventMessageHistory, history)
	h.sendTo(client, models.EventJoinedRoom, models.JoinedRoom{
		Room:     room.Name,
		Username: client.GetUsername(),
	})
	h.broadcastToRoomExcept(room.Name, client.GetID(), models.EventUserJoined, models.MembershipNotice{
		Username:  client.GetUsername(),
		Message:   fmt.Sprintf("%s joined the room", client.GetUsername()),
		Timestamp: time.Now(),
	})
	h.broadcastRoomUpdate(room.Name)

	log.Printf("%s joined room %q", client.GetUsername(), room.Name)
}

func (h *Hub) handleSendMessage(client Client, text string) {
	room := client.GetRoomID()
	if room == "" {
		h.sendError(client, "join a room before sending messages")
		return
	}
	if text == "" {
		h.sendError(client, "message text is required")
		return
	}

	msg, err := h.Storage.AppendMessage(room, client.GetUsername(), text)
	if err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			h.sendError(client, fmt.Sprintf("room %q does not exist", room))
		} else {
			h.sendError(client, "failed to send message")
		}
		return
	}

	h.broadcastToRoom(room, models.EventNewMessage, models.NewMessage{
		ID:        msg.ID,
		Text:      msg.Text,
		Username:  msg.Username,
		Room:      room,
		Timestamp: msg.CreatedAt,
	})
	h.broadcastRoomUpdate(room)
}

func (h *Hub) handleTyping(client Client, isTyping bool) {
	room := client.GetRoomID()
	if room == "" {
		return
	}
	h.broadcastToRoomExcept(room, client.GetID(), models.EventUserTyping, models.TypingNotice{
		Username: client.GetUsername(),
		IsTyping: isTyping,
	})
}

func (h *Hub) handleCreateRoom(client Client, name string) {
	if name == "" {
		h.sendError(client, "room name is required")
		return
	}

	created, err := h.Storage.CreateRoom(name)
	if err != nil {
		h.sendError(client, "failed to create room")
		return
	}
	if !created {
		h.sendError(client, fmt.Sprintf("room %q already exists", name))
		return
	}

	h.presence.EnsureRoom(name)
	h.broadcastAll(models.EventRoomCreated, models.RoomSummary{Name: name})
	h.sendTo(client, models.EventRoomCreatedSuccess, models.RoomCreatedSuccess{RoomName: name})

	log.Printf("room %q created by %s", name, client.GetUsername())
}

// roomSummaries annotates the persisted catalog with live presence counts and
// persisted message counts.
func (h *Hub) roomSummaries() ([]models.RoomSummary, error) {
	rooms, err := h.Storage.ListRooms()
	if err != nil {
		return nil, err
	}
	counts, err := h.Storage.MessageCounts()
	if err != nil {
		return nil, err
	}

	out := make([]models.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, models.RoomSummary{
			Name:         room.Name,
			UserCount:    h.presence.CountOf(room.Name),
			MessageCount: counts[room.Name],
		})
	}
	return out, nil
}

func (h *Hub) notifyLeft(client Client, room string) {
	h.broadcastToRoomExcept(room, client.GetID(), models.EventUserLeft, models.MembershipNotice{
		Username:  client.GetUsername(),
		Message:   fmt.Sprintf("%s left the room", client.GetUsername()),
		Timestamp: time.Now(),
	})
}

// broadcastRoomUpdate pushes the room's current counts to every connected
// client, whatever room they are in, keeping sidebar counts live everywhere.
func (h *Hub) broadcastRoomUpdate(room string) {
	count, err := h.Storage.MessageCount(room)
	if err != nil {
		log.Printf("ERROR: failed to count messages for room %q: %v", room, err)
		return
	}
	h.broadcastAll(models.EventRoomUpdated, models.RoomSummary{
		Name:         room,
		UserCount:    h.presence.CountOf(room),
		MessageCount: count,
	})
}

func (h *Hub) sendError(client Client, message string) {
	h.sendTo(client, models.EventError, models.ErrorNotice{Message: message})
}

func (h *Hub) sendTo(client Client, event string, data any) {
	select {
	case client.GetSendChannel() <- models.ServerEvent{Event: event, Data: data}:
	default:
		log.Printf("client %s send buffer full, dropping %s", client.GetID(), event)
	}
}

func (h *Hub) broadcastAll(event string, data any) {
	for _, client := range h.Clients {
		h.sendTo(client, event, data)
	}
}

func (h *Hub) broadcastToRoom(room, event string, data any) {
	h.broadcastToRoomExcept(room, "", event, data)
}

func (h *Hub) broadcastToRoomExcept(room, exceptID, event string, data any) {
	for _, id := range h.presence.Occupants(room) {
		if id == exceptID {
			continue
		}
		if client, ok := h.Clients[id]; ok {
			h.sendTo(client, event, data)
		}
	}
}
