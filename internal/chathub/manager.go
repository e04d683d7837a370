package chathub

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"peerlink/backend/internal/models"
)

const presencePublishTimeout = 2 * time.Second

// InboundEvent is an event read from a client, tagged with its sender.
type InboundEvent struct {
	ClientID string
	Event    models.Event
}

// Stats is a point-in-time view of the hub.
type Stats struct {
	Online  int `json:"online"`
	Waiting int `json:"waiting"`
	Rooms   int `json:"rooms"`
}

// PresencePublisher mirrors the online count somewhere outside the process.
type PresencePublisher interface {
	PublishPresence(ctx context.Context, count int) error
}

// ManagerService is the hub. A single goroutine (Run) owns the presence
// counter, the waiting queue, the room registry and all client sessions, and
// handles one event at a time to completion.
type ManagerService struct {
	RegisterCh   chan Client
	UnregisterCh chan Client
	IncomingCh   chan InboundEvent

	statsCh chan chan Stats
	done    chan struct{}

	sessions map[string]*session
	presence *PresenceCounter
	queue    *WaitingQueue
	rooms    *RoomRegistry
	matcher  *MatcherService
	relay    *Relay

	publisher  PresencePublisher
	presenceCh chan int

	// evictions collects clients whose send channel was full; they are
	// disconnected once the current event is done.
	evictions []string
}

// NewManagerService builds a hub. publisher may be nil.
func NewManagerService(publisher PresencePublisher) *ManagerService {
	m := &ManagerService{
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		IncomingCh:   make(chan InboundEvent),
		statsCh:      make(chan chan Stats),
		done:         make(chan struct{}),
		sessions:     make(map[string]*session),
		presence:     &PresenceCounter{},
		queue:        NewWaitingQueue(),
		publisher:    publisher,
		presenceCh:   make(chan int, 1),
	}
	m.rooms = NewRoomRegistry(m)
	m.matcher = NewMatcherService(m.queue, m.rooms)
	m.relay = NewRelay(m.rooms, m)
	return m
}

// Done is closed once Run has returned.
func (m *ManagerService) Done() <-chan struct{} { return m.done }

// Run processes hub events until ctx is cancelled.
func (m *ManagerService) Run(ctx context.Context) {
	defer close(m.done)
	log.Println("Chat hub started.")

	if m.publisher != nil {
		go m.mirrorPresence(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			m.shutdown()
			log.Println("Chat hub stopped.")
			return
		case c := <-m.RegisterCh:
			m.handleRegister(c)
		case c := <-m.UnregisterCh:
			m.handleUnregister(c)
		case in := <-m.IncomingCh:
			m.handleIncoming(in)
		case reply := <-m.statsCh:
			reply <- m.snapshot()
		}
		m.flushEvictions()
	}
}

// Stats asks the hub loop for a snapshot.
func (m *ManagerService) Stats(ctx context.Context) (Stats, error) {
	reply := make(chan Stats, 1)
	select {
	case m.statsCh <- reply:
	case <-m.done:
		return Stats{}, ErrHubStopped
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}
	select {
	case s := <-reply:
		return s, nil
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}
}

func (m *ManagerService) snapshot() Stats {
	return Stats{
		Online:  m.presence.Value(),
		Waiting: m.queue.Len(),
		Rooms:   m.rooms.Len(),
	}
}

// Notify implements Notifier. Delivery never blocks the hub loop.
func (m *ManagerService) Notify(clientID string, ev models.Event) {
	s, ok := m.sessions[clientID]
	if !ok {
		return
	}
	select {
	case s.client.GetSendChannel() <- ev:
	default:
		log.Printf("WARNING: send buffer full for client %s, evicting", clientID)
		m.evictions = append(m.evictions, clientID)
	}
}

func (m *ManagerService) handleRegister(c Client) {
	id := c.GetClientID()
	if _, exists := m.sessions[id]; exists {
		log.Printf("WARNING: client %s registered twice, ignoring", id)
		return
	}
	m.sessions[id] = &session{client: c}
	m.presence.Increment()
	log.Printf("Client connected: %s (online: %d)", id, m.presence.Value())
	m.broadcastPresence()
}

func (m *ManagerService) handleUnregister(c Client) {
	id := c.GetClientID()
	if s, ok := m.sessions[id]; !ok || s.client != c {
		return
	}
	m.disconnect(id)
}

// disconnect tears down everything held for clientID. Calling it for an
// unknown client is a no-op.
func (m *ManagerService) disconnect(clientID string) {
	s, ok := m.sessions[clientID]
	if !ok {
		return
	}

	state := m.stateOf(clientID)
	m.queue.Remove(clientID)
	if roomID := m.rooms.MemberRoom(clientID); roomID != "" {
		m.rooms.DestroyRoom(roomID, clientID, ReasonPeerLeft)
	}

	delete(m.sessions, clientID)
	s.client.Close()

	m.presence.Decrement()
	log.Printf("Client disconnected: %s (was %s, online: %d)", clientID, state, m.presence.Value())
	m.broadcastPresence()
}

func (m *ManagerService) flushEvictions() {
	for len(m.evictions) > 0 {
		id := m.evictions[0]
		m.evictions = m.evictions[1:]
		m.disconnect(id)
	}
}

func (m *ManagerService) shutdown() {
	for id, s := range m.sessions {
		s.client.Close()
		delete(m.sessions, id)
	}
}

func (m *ManagerService) handleIncoming(in InboundEvent) {
	s, ok := m.sessions[in.ClientID]
	if !ok {
		log.Printf("WARNING: event %q from unknown client %s dropped", in.Event.Type, in.ClientID)
		return
	}
	if err := m.dispatch(in.ClientID, s, in.Event); err != nil {
		log.Printf("WARNING: event %q from client %s dropped: %v", in.Event.Type, in.ClientID, err)
	}
}

func (m *ManagerService) dispatch(clientID string, s *session, ev models.Event) error {
	switch ev.Type {
	case models.EventJoinQueue:
		var p models.JoinQueuePayload
		if err := decodePayload(ev.Data, &p); err != nil {
			return err
		}
		if _, err := m.matcher.RequestPairing(clientID, p.Interests); err != nil {
			return err
		}
		s.interests = p.Interests
		return nil

	case models.EventOffer, models.EventAnswer, models.EventICECandidate, models.EventMessage:
		var p models.SignalPayload
		if err := decodePayload(ev.Data, &p); err != nil {
			return err
		}
		return m.relay.Forward(clientID, p.RoomID, ev.Type, p.Blob(ev.Type))

	case models.EventNext:
		var p models.SignalPayload
		if err := decodePayload(ev.Data, &p); err != nil {
			return err
		}
		return m.next(clientID, s, p.RoomID)

	case models.EventLeave:
		var p models.SignalPayload
		if err := decodePayload(ev.Data, &p); err != nil {
			return err
		}
		return m.leave(clientID, p.RoomID)
	}
	return fmt.Errorf("%q: %w", ev.Type, ErrUnknownEvent)
}

// next ends the current room, if any, and searches again with the
// interests from the last join-queue.
func (m *ManagerService) next(clientID string, s *session, roomID string) error {
	switch m.stateOf(clientID) {
	case StateWaiting:
		return nil
	case StatePaired:
		current := m.rooms.MemberRoom(clientID)
		if roomID != "" && roomID != current {
			return fmt.Errorf("next for room %q: %w", roomID, ErrNotInRoom)
		}
		m.rooms.DestroyRoom(current, clientID, ReasonPeerLeft)
	}
	_, err := m.matcher.RequestPairing(clientID, s.interests)
	return err
}

// leave ends the current room, or cancels the wait when the client is queued.
func (m *ManagerService) leave(clientID, roomID string) error {
	switch m.stateOf(clientID) {
	case StateWaiting:
		m.queue.Remove(clientID)
	case StatePaired:
		current := m.rooms.MemberRoom(clientID)
		if roomID != "" && roomID != current {
			return fmt.Errorf("leave for room %q: %w", roomID, ErrNotInRoom)
		}
		m.rooms.DestroyRoom(current, clientID, ReasonPeerLeft)
	}
	return nil
}

func decodePayload(data json.RawMessage, v any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}

func (m *ManagerService) broadcastPresence() {
	count := m.presence.Value()
	ev, err := models.NewEvent(models.EventUserCount, count)
	if err != nil {
		log.Printf("ERROR: encoding user-count: %v", err)
		return
	}
	for id := range m.sessions {
		m.Notify(id, ev)
	}

	if m.publisher == nil {
		return
	}
	// Keep only the latest count for the mirror goroutine.
	select {
	case m.presenceCh <- count:
	default:
		select {
		case <-m.presenceCh:
		default:
		}
		select {
		case m.presenceCh <- count:
		default:
		}
	}
}

func (m *ManagerService) mirrorPresence(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case count := <-m.presenceCh:
			pubCtx, cancel := context.WithTimeout(ctx, presencePublishTimeout)
			if err := m.publisher.PublishPresence(pubCtx, count); err != nil {
				log.Printf("ERROR: mirroring presence count %d: %v", count, err)
			}
			cancel()
		}
	}
}
