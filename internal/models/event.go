package models

import "encoding/json"

// Event types exchanged over the client connection.
const (
	EventJoinQueue            = "join-queue"
	EventPaired               = "paired"
	EventOffer                = "offer"
	EventAnswer               = "answer"
	EventICECandidate         = "ice-candidate"
	EventMessage              = "message"
	EventNext                 = "next"
	EventLeave                = "leave"
	EventStrangerDisconnected = "stranger-disconnected"
	EventUserCount            = "user-count"
)

// Event is the envelope of every frame on the wire.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewEvent builds an Event, encoding data as its payload. A nil data
// produces an event without payload.
func NewEvent(eventType string, data any) (Event, error) {
	ev := Event{Type: eventType}
	if data == nil {
		return ev, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}
	ev.Data = raw
	return ev, nil
}

// JoinQueuePayload is sent by a client that wants a stranger.
type JoinQueuePayload struct {
	Interests []string `json:"interests"`
}

// PairedPayload tells a client which room it landed in and whether it
// originates the negotiation offer.
type PairedPayload struct {
	RoomID   string `json:"roomId"`
	IsCaller bool   `json:"isCaller"`
}

// SignalPayload covers offer, answer, ice-candidate, message, next and
// leave. Only the field named after the event type is forwarded.
type SignalPayload struct {
	RoomID    string          `json:"roomId"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
	Message   json.RawMessage `json:"message,omitempty"`
}

// Blob returns the opaque part of the payload that belongs to eventType.
func (p SignalPayload) Blob(eventType string) json.RawMessage {
	switch eventType {
	case EventOffer:
		return p.Offer
	case EventAnswer:
		return p.Answer
	case EventICECandidate:
		return p.Candidate
	case EventMessage:
		return p.Message
	}
	return nil
}
