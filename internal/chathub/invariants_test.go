package chathub

import (
	"fmt"
	"math/rand"
	"testing"

	"peerlink/backend/internal/models"

	"github.com/stretchr/testify/require"
)

// checkInvariants verifies that every client sits in at most one of
// {queue, one room}, that rooms always hold two distinct live members and
// that presence matches the session table.
func checkInvariants(m *ManagerService) error {
	seen := make(map[string]string)

	for _, id := range m.queue.ClientIDs() {
		if where, dup := seen[id]; dup {
			return fmt.Errorf("client %s queued twice (also %s)", id, where)
		}
		seen[id] = "queue"
		if _, ok := m.sessions[id]; !ok {
			return fmt.Errorf("queued client %s is not connected", id)
		}
	}

	for roomID, room := range m.rooms.rooms {
		if room.Members[0] == room.Members[1] || room.Members[0] == "" || room.Members[1] == "" {
			return fmt.Errorf("room %s has bad membership %v", roomID, room.Members)
		}
		for _, member := range room.Members {
			if where, dup := seen[member]; dup {
				return fmt.Errorf("client %s in room %s and %s", member, roomID, where)
			}
			seen[member] = "room " + roomID
			if m.rooms.MemberRoom(member) != roomID {
				return fmt.Errorf("client %s not indexed to room %s", member, roomID)
			}
			if _, ok := m.sessions[member]; !ok {
				return fmt.Errorf("room %s holds disconnected client %s", roomID, member)
			}
		}
	}

	for clientID, roomID := range m.rooms.byClient {
		if _, ok := m.rooms.rooms[roomID]; !ok {
			return fmt.Errorf("client %s points at missing room %s", clientID, roomID)
		}
	}

	if m.presence.Value() != len(m.sessions) {
		return fmt.Errorf("presence %d != sessions %d", m.presence.Value(), len(m.sessions))
	}
	return nil
}

func TestInvariants_RandomEventSequences(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f", "g"}
	tags := [][]string{nil, {"music"}, {"sports"}, {"music", "go"}}

	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		m := NewManagerService(nil)
		clients := make(map[string]*MockClient)

		for step := 0; step < 500; step++ {
			id := ids[rng.Intn(len(ids))]
			c, connected := clients[id]

			switch op := rng.Intn(7); {
			case !connected:
				c = NewMockClient(id)
				clients[id] = c
				m.handleRegister(c)
			case op == 0:
				m.handleUnregister(c)
				delete(clients, id)
			case op == 1, op == 2:
				ev, err := models.NewEvent(models.EventJoinQueue, models.JoinQueuePayload{Interests: tags[rng.Intn(len(tags))]})
				require.NoError(t, err)
				m.handleIncoming(InboundEvent{ClientID: id, Event: ev})
			case op == 3:
				ev, _ := models.NewEvent(models.EventNext, models.SignalPayload{RoomID: m.rooms.MemberRoom(id)})
				m.handleIncoming(InboundEvent{ClientID: id, Event: ev})
			case op == 4:
				m.handleIncoming(InboundEvent{ClientID: id, Event: models.Event{Type: models.EventLeave}})
			default:
				// Relay into some room, possibly not the sender's own.
				target := m.rooms.MemberRoom(ids[rng.Intn(len(ids))])
				ev, _ := models.NewEvent(models.EventMessage, models.SignalPayload{RoomID: target, Message: []byte(`"x"`)})
				m.handleIncoming(InboundEvent{ClientID: id, Event: ev})
			}
			m.flushEvictions()

			for _, cl := range clients {
				cl.Drain()
			}
			require.NoError(t, checkInvariants(m), "seed %d step %d", seed, step)
		}
	}
}

func TestInvariants_RelayNeverLeaks(t *testing.T) {
	m := NewManagerService(nil)
	clients := make(map[string]*MockClient)
	for _, id := range []string{"x", "y", "z"} {
		clients[id] = NewMockClient(id)
		m.handleRegister(clients[id])
	}
	join, _ := models.NewEvent(models.EventJoinQueue, nil)
	m.handleIncoming(InboundEvent{ClientID: "x", Event: join})
	m.handleIncoming(InboundEvent{ClientID: "y", Event: join})
	roomID := m.rooms.MemberRoom("x")
	require.NotEmpty(t, roomID)
	for _, c := range clients {
		c.Drain()
	}

	for _, eventType := range []string{models.EventOffer, models.EventAnswer, models.EventICECandidate, models.EventMessage} {
		ev, _ := models.NewEvent(eventType, map[string]any{"roomId": roomID, "offer": 1, "answer": 1, "candidate": 1, "message": "m"})
		m.handleIncoming(InboundEvent{ClientID: "z", Event: ev})
	}

	for id, c := range clients {
		require.Empty(t, c.Drain(), "client %s received a forged relay", id)
	}
	require.Equal(t, StateIdle, m.stateOf("z"))
	require.Equal(t, StatePaired, m.stateOf("x"))
	require.Equal(t, "paired", m.stateOf("y").String())
}
