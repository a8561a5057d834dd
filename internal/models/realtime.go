package models

import "time"

// Inbound event types (client -> server).
const (
	EventJoinRoom    = "join_room"
	EventSendMessage = "send_message"
	EventTyping      = "typing"
	EventCreateRoom  = "create_room"
)

// Outbound event types (server -> one connection, one room, or everyone).
const (
	EventRoomsList          = "rooms_list"
	EventMessageHistory     = "message_history"
	EventJoinedRoom         = "joined_room"
	EventUserJoined         = "user_joined"
	EventUserLeft           = "user_left"
	EventUserTyping         = "user_typing"
	EventNewMessage         = "new_message"
	EventRoomCreated        = "room_created"
	EventRoomUpdated        = "room_updated"
	EventRoomCreatedSuccess = "room_created_success"
	EventError              = "error"
)

// ClientEvent is the JSON envelope read from a WebSocket connection.
// SenderID is filled in by the read pump, never trusted from the client.
type ClientEvent struct {
	Type     string `json:"type"`
	Room     string `json:"room,omitempty"`
	Text     string `json:"text,omitempty"`
	IsTyping bool   `json:"isTyping,omitempty"`

	SenderID string `json:"-"`
}

// ServerEvent is the envelope written to a WebSocket connection.
type ServerEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// RoomSummary annotates a room with its live connection count and persisted
// message count. Used by rooms_list, room_created and room_updated.
type RoomSummary struct {
	Name         string `json:"name"`
	UserCount    int    `json:"userCount"`
	MessageCount int64  `json:"messageCount"`
}

// JoinedRoom acknowledges a successful join to the caller.
type JoinedRoom struct {
	Room     string `json:"room"`
	Username string `json:"username"`
}

// MembershipNotice tells a room's remaining occupants that somebody joined or
// left. Message is a ready-to-display human notice.
type MembershipNotice struct {
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// TypingNotice is fanned out to the other occupants of the sender's room.
// Nothing is persisted; clients own any debounce or timeout display logic.
type TypingNotice struct {
	Username string `json:"username"`
	IsTyping bool   `json:"isTyping"`
}

// NewMessage carries a freshly persisted message to every occupant of a room,
// sender included.
type NewMessage struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Username  string    `json:"username"`
	Room      string    `json:"room"`
	Timestamp time.Time `json:"timestamp"`
}

// RoomCreatedSuccess is the direct acknowledgment sent to a room's creator.
type RoomCreatedSuccess struct {
	RoomName string `json:"roomName"`
}

// ErrorNotice is the structured error event surfaced only to the connection
// that caused it.
type ErrorNotice struct {
	Message string `json:"message"`
}
