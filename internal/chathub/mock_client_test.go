package chathub

import (
	"sync/atomic"

	"peerlink/backend/internal/models"
)

// MockClient is a transport-free Client for tests. Its send channel is
// buffered so the hub never has to wait on it.
type MockClient struct {
	ID     string
	SendCh chan models.Event

	runs   atomic.Int32
	closes atomic.Int32
}

func NewMockClient(id string) *MockClient {
	return NewMockClientWithBuffer(id, 64)
}

func NewMockClientWithBuffer(id string, size int) *MockClient {
	return &MockClient{ID: id, SendCh: make(chan models.Event, size)}
}

func (c *MockClient) GetClientID() string                 { return c.ID }
func (c *MockClient) GetSendChannel() chan<- models.Event { return c.SendCh }
func (c *MockClient) Run()                                { c.runs.Add(1) }
func (c *MockClient) Close()                              { c.closes.Add(1) }

// Closed reports whether the hub has closed the client at least once.
func (c *MockClient) Closed() bool { return c.closes.Load() > 0 }

// Drain returns every event currently buffered for the client.
func (c *MockClient) Drain() []models.Event {
	var events []models.Event
	for {
		select {
		case ev := <-c.SendCh:
			events = append(events, ev)
		default:
			return events
		}
	}
}

// Without drops every event of eventType.
func Without(events []models.Event, eventType string) []models.Event {
	var out []models.Event
	for _, ev := range events {
		if ev.Type != eventType {
			out = append(out, ev)
		}
	}
	return out
}
