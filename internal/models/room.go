package models

import "time"

// Room is a 1-on-1 session between two strangers.
type Room struct {
	// ID is a random token, unrelated to the members' connection ids.
	ID string
	// Members holds the initiator first, the responder second.
	Members [2]string
	// CreatedAt is when the pair was made.
	CreatedAt time.Time
}

// Has reports whether clientID is one of the two members.
func (r Room) Has(clientID string) bool {
	return r.Members[0] == clientID || r.Members[1] == clientID
}

// Other returns the member that is not clientID.
func (r Room) Other(clientID string) (string, bool) {
	switch clientID {
	case r.Members[0]:
		return r.Members[1], true
	case r.Members[1]:
		return r.Members[0], true
	}
	return "", false
}

// WaitingEntry is a client parked in the waiting queue.
type WaitingEntry struct {
	ClientID  string
	Interests []string
	QueuedAt  time.Time
}
