package chathub

import "peerlink/backend/internal/models"

// Client is the interface for any type of connection to the hub.
// It abstracts the underlying transport so the hub can manage every client
// the same way.
type Client interface {
	// GetClientID returns the unique connection identifier.
	GetClientID() string

	// GetSendChannel returns the channel the hub writes outbound events to.
	// The hub never blocks on it: a full channel gets the client evicted.
	GetSendChannel() chan<- models.Event

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts the connection down. It must be safe to call more than once.
	Close()
}
