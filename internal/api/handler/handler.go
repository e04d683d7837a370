package handler

import "peerlink/backend/internal/chathub"

// Handler holds a reference to the chat hub.
type Handler struct {
	Hub *chathub.ManagerService
}

func NewHandler(hub *chathub.ManagerService) *Handler {
	return &Handler{Hub: hub}
}
