package chathub

// ClientState is where a connected client sits in its lifecycle.
type ClientState int

const (
	StateIdle ClientState = iota
	StateWaiting
	StatePaired
)

func (s ClientState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWaiting:
		return "waiting"
	case StatePaired:
		return "paired"
	}
	return "unknown"
}

// session is the hub's record of one connected client. Waiting and paired
// status live in the queue and the room registry; interests are kept so
// "next" can search again with the same tags.
type session struct {
	client    Client
	interests []string
}

// stateOf derives a client's state from the queue and the room registry.
func (m *ManagerService) stateOf(clientID string) ClientState {
	if m.rooms.MemberRoom(clientID) != "" {
		return StatePaired
	}
	if m.queue.Contains(clientID) {
		return StateWaiting
	}
	return StateIdle
}
