package handler

import (
	"errors"
	"net/http"

	"roomchat/backend/internal/models"
	"roomchat/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// ListRooms returns every room with its live connection count and persisted
// message count. The read-only twin of the rooms_list event.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.Storage.ListRooms()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}

	counts, err := h.Storage.MessageCounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count messages"})
		return
	}

	live := h.Hub.PresenceCounts()

	out := make([]models.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, models.RoomSummary{
			Name:         room.Name,
			UserCount:    live[room.Name],
			MessageCount: counts[room.Name],
		})
	}

	c.JSON(http.StatusOK, out)
}

// RoomHistory returns up to the last 100 messages of the named room, oldest
// first.
func (h *Handler) RoomHistory(c *gin.Context) {
	name := c.Param("name")

	messages, err := h.Storage.History(name)
	if errors.Is(err, storage.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, messages)
}
