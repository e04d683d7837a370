package chathub

import (
	"encoding/json"
	"fmt"

	"peerlink/backend/internal/models"
)

// Relay forwards negotiation and chat payloads between the two members of a
// room. Payloads are passed through untouched.
type Relay struct {
	rooms  *RoomRegistry
	notify Notifier
}

func NewRelay(rooms *RoomRegistry, n Notifier) *Relay {
	return &Relay{rooms: rooms, notify: n}
}

func isRelayed(eventType string) bool {
	switch eventType {
	case models.EventOffer, models.EventAnswer, models.EventICECandidate, models.EventMessage:
		return true
	}
	return false
}

// Forward delivers payload as eventType to the other member of roomID.
func (r *Relay) Forward(senderID, roomID, eventType string, payload json.RawMessage) error {
	if !isRelayed(eventType) {
		return fmt.Errorf("relay %q: %w", eventType, ErrUnknownEvent)
	}
	peer, err := r.rooms.Peer(roomID, senderID)
	if err != nil {
		return fmt.Errorf("relay %s to room %q: %w", eventType, roomID, err)
	}
	r.notify.Notify(peer, models.Event{Type: eventType, Data: payload})
	return nil
}
