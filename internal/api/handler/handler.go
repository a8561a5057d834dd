package handler

import (
	"roomchat/backend/internal/chathub"
	"roomchat/backend/internal/storage"
)

// Handler carries the hub and the storage service into the gin routes.
type Handler struct {
	Hub     *chathub.Hub
	Storage storage.Storage
}

func NewHandler(hub *chathub.Hub, s storage.Storage) *Handler {
	return &Handler{Hub: hub, Storage: s}
}
