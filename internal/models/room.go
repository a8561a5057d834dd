package models

import "time"

// Room represents a named, persisted chat channel. Rooms are created on demand
// through an idempotent create-if-absent operation and are never deleted during
// normal operation.
type Room struct {
	// ID is the surrogate primary key; rooms list in ID order, which is
	// creation order.
	ID uint `gorm:"primaryKey" json:"id"`
	// Name is the unique, immutable room name clients join by.
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	// CreatedAt is the timestamp when the room was created.
	CreatedAt time.Time `json:"created_at"`

	// Messages are owned by the room; deleting a room cascades to its log.
	Messages []Message `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
