package chathub

import "roomchat/backend/internal/models"

// Client is the interface for one live connection. It abstracts the underlying
// transport, allowing the hub to manage connections uniformly and letting
// tests drive the hub with in-memory doubles.
type Client interface {
	// GetID returns the connection identifier.
	GetID() string
	// GetUsername returns the display name assigned once at connect time.
	GetUsername() string
	// GetRoomID returns the name of the room the connection is currently in,
	// or "" when it has not joined one.
	GetRoomID() string
	// SetRoomID records the connection's current room. Only the hub calls this.
	SetRoomID(string)

	// GetSendChannel returns the channel the hub writes outbound events to.
	// It is a send-only channel.
	GetSendChannel() chan<- models.ServerEvent

	// Run starts the client's read and write pumps.
	Run()
	// Close releases the client's send channel, stopping its write pump.
	Close()
}
