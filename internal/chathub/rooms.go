package chathub

import (
	"log"
	"time"

	"peerlink/backend/internal/models"

	"github.com/google/uuid"
)

// TeardownReason controls whether the remaining member hears about a
// destroyed room.
type TeardownReason int

const (
	// ReasonPeerLeft notifies the remaining member with stranger-disconnected.
	ReasonPeerLeft TeardownReason = iota
	// ReasonSilent removes the room without notifying anyone.
	ReasonSilent
)

// Notifier delivers an event to a single connected client.
type Notifier interface {
	Notify(clientID string, ev models.Event)
}

// RoomRegistry owns every active room. It is owned by the hub loop and is
// not safe for concurrent use.
type RoomRegistry struct {
	rooms    map[string]*models.Room
	byClient map[string]string

	notify Notifier
	newID  func() string
	now    func() time.Time
}

func NewRoomRegistry(n Notifier) *RoomRegistry {
	return &RoomRegistry{
		rooms:    make(map[string]*models.Room),
		byClient: make(map[string]string),
		notify:   n,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// CreateRoom pairs initiator and responder in a fresh room and tells each of
// them its role. Both clients must be distinct and currently unpaired.
func (r *RoomRegistry) CreateRoom(initiator, responder string) (models.Room, error) {
	if initiator == responder || r.MemberRoom(initiator) != "" || r.MemberRoom(responder) != "" {
		return models.Room{}, ErrAlreadyQueuedOrPaired
	}

	id := r.newID()
	for r.rooms[id] != nil {
		id = r.newID()
	}

	room := &models.Room{
		ID:        id,
		Members:   [2]string{initiator, responder},
		CreatedAt: r.now(),
	}
	r.rooms[id] = room
	r.byClient[initiator] = id
	r.byClient[responder] = id

	r.sendPaired(initiator, id, true)
	r.sendPaired(responder, id, false)

	return *room, nil
}

func (r *RoomRegistry) sendPaired(clientID, roomID string, isCaller bool) {
	ev, err := models.NewEvent(models.EventPaired, models.PairedPayload{RoomID: roomID, IsCaller: isCaller})
	if err != nil {
		log.Printf("ERROR: encoding paired event for %s: %v", clientID, err)
		return
	}
	r.notify.Notify(clientID, ev)
}

// DestroyRoom removes roomID. Unless reason is ReasonSilent, every member
// other than leaverID receives stranger-disconnected. An unknown room id is
// a no-op; the return value reports whether a room was removed.
func (r *RoomRegistry) DestroyRoom(roomID, leaverID string, reason TeardownReason) bool {
	room, ok := r.rooms[roomID]
	if !ok {
		return false
	}

	delete(r.rooms, roomID)
	for _, member := range room.Members {
		if r.byClient[member] == roomID {
			delete(r.byClient, member)
		}
	}

	if reason != ReasonSilent {
		for _, member := range room.Members {
			if member == leaverID {
				continue
			}
			r.notify.Notify(member, models.Event{Type: models.EventStrangerDisconnected})
		}
	}
	return true
}

// MemberRoom returns the room clientID is in, or "".
func (r *RoomRegistry) MemberRoom(clientID string) string {
	return r.byClient[clientID]
}

// Peer returns the other member of roomID, provided clientID is a member.
func (r *RoomRegistry) Peer(roomID, clientID string) (string, error) {
	room, ok := r.rooms[roomID]
	if !ok {
		return "", ErrNotInRoom
	}
	other, ok := room.Other(clientID)
	if !ok {
		return "", ErrNotInRoom
	}
	return other, nil
}

// Room returns a copy of roomID.
func (r *RoomRegistry) Room(roomID string) (models.Room, bool) {
	room, ok := r.rooms[roomID]
	if !ok {
		return models.Room{}, false
	}
	return *room, true
}

func (r *RoomRegistry) Len() int { return len(r.rooms) }
