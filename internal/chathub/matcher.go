package chathub

import (
	"log"

	"peerlink/backend/internal/models"
)

// MatcherService pairs a requesting client with whoever has waited longest.
type MatcherService struct {
	Queue *WaitingQueue
	Rooms *RoomRegistry
}

func NewMatcherService(q *WaitingQueue, rooms *RoomRegistry) *MatcherService {
	return &MatcherService{Queue: q, Rooms: rooms}
}

// RequestPairing either creates a room for clientID and the head of the
// queue, with clientID as the initiator, or parks clientID in the queue.
// The returned room is nil when the client was queued.
func (m *MatcherService) RequestPairing(clientID string, interests []string) (*models.Room, error) {
	if m.Queue.Contains(clientID) || m.Rooms.MemberRoom(clientID) != "" {
		return nil, ErrAlreadyQueuedOrPaired
	}

	match, ok := m.Queue.DequeueBestMatch(models.WaitingEntry{ClientID: clientID, Interests: interests})
	if !ok {
		if err := m.Queue.Enqueue(clientID, interests); err != nil {
			return nil, err
		}
		log.Printf("Client %s queued (interests: %v, waiting: %d)", clientID, interests, m.Queue.Len())
		return nil, nil
	}

	room, err := m.Rooms.CreateRoom(clientID, match.Entry.ClientID)
	if err != nil {
		// Should not happen: queued clients are never paired. Put the match
		// back so it is not lost.
		log.Printf("ERROR: pairing %s with %s: %v", clientID, match.Entry.ClientID, err)
		m.Queue.pushFront(match.Entry)
		return nil, err
	}

	log.Printf("Match found: %s and %s in room %s (shared interests: %v)",
		clientID, match.Entry.ClientID, room.ID, match.Shared)
	return &room, nil
}
