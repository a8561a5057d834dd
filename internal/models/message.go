package models

import "time"

// Message represents a single persisted chat message in a room's log.
// IDs are monotonic per store and act as the tie-breaker when two messages
// carry the same timestamp.
type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// RoomID is the owning room; every message belongs to exactly one room.
	RoomID uint `gorm:"not null;index" json:"-"`
	// Username is the display name the sender carried at send time.
	Username string `gorm:"type:text;not null" json:"username"`
	// Text is the message body.
	Text string `gorm:"type:text;not null" json:"text"`
	// CreatedAt orders the room's history and drives retention.
	CreatedAt time.Time `gorm:"index" json:"timestamp"`
}
