package chathub

import "errors"

var (
	// ErrAlreadyQueuedOrPaired rejects a pairing request from a client that
	// is already waiting or already in a room.
	ErrAlreadyQueuedOrPaired = errors.New("client already queued or paired")
	// ErrNotInRoom drops an event whose room id the sender is not a member of.
	ErrNotInRoom = errors.New("sender is not a member of the room")
	// ErrUnknownEvent is returned for event types the hub does not handle.
	ErrUnknownEvent = errors.New("unknown event type")
	// ErrMalformedPayload is returned when an event's data cannot be decoded.
	ErrMalformedPayload = errors.New("malformed event payload")
	// ErrHubStopped is returned by calls made after Run has returned.
	ErrHubStopped = errors.New("hub stopped")
)
