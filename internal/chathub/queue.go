package chathub

import (
	"time"

	"peerlink/backend/internal/models"
)

// WaitingQueue holds unmatched clients in arrival order.
// It is owned by the hub loop and is not safe for concurrent use.
type WaitingQueue struct {
	entries []models.WaitingEntry
	now     func() time.Time
}

func NewWaitingQueue() *WaitingQueue {
	return &WaitingQueue{now: time.Now}
}

// Match is an entry taken off the queue together with the interest tags it
// shares with the requester.
type Match struct {
	Entry  models.WaitingEntry
	Shared []string
}

// Enqueue appends clientID to the back of the queue.
func (q *WaitingQueue) Enqueue(clientID string, interests []string) error {
	if q.Contains(clientID) {
		return ErrAlreadyQueuedOrPaired
	}
	q.entries = append(q.entries, models.WaitingEntry{
		ClientID:  clientID,
		Interests: append([]string(nil), interests...),
		QueuedAt:  q.now(),
	})
	return nil
}

// DequeueBestMatch removes and returns the first waiting entry that is not
// the candidate itself. Shared interests are reported but do not influence
// which entry is chosen.
func (q *WaitingQueue) DequeueBestMatch(candidate models.WaitingEntry) (Match, bool) {
	for i, entry := range q.entries {
		if entry.ClientID == candidate.ClientID {
			continue
		}
		q.entries = append(q.entries[:i], q.entries[i+1:]...)
		return Match{
			Entry:  entry,
			Shared: SharedInterests(candidate.Interests, entry.Interests),
		}, true
	}
	return Match{}, false
}

// pushFront puts an entry back at the head of the queue.
func (q *WaitingQueue) pushFront(entry models.WaitingEntry) {
	q.entries = append([]models.WaitingEntry{entry}, q.entries...)
}

// Remove drops clientID from the queue and reports whether it was there.
func (q *WaitingQueue) Remove(clientID string) bool {
	for i, entry := range q.entries {
		if entry.ClientID == clientID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (q *WaitingQueue) Contains(clientID string) bool {
	for _, entry := range q.entries {
		if entry.ClientID == clientID {
			return true
		}
	}
	return false
}

func (q *WaitingQueue) Len() int { return len(q.entries) }

// ClientIDs lists waiting clients front to back.
func (q *WaitingQueue) ClientIDs() []string {
	ids := make([]string, 0, len(q.entries))
	for _, entry := range q.entries {
		ids = append(ids, entry.ClientID)
	}
	return ids
}

// SharedInterests returns the tags of a that also appear in b, compared
// case-sensitively, in a's order.
func SharedInterests(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(b))
	for _, tag := range b {
		set[tag] = struct{}{}
	}
	var shared []string
	for _, tag := range a {
		if _, ok := set[tag]; ok {
			shared = append(shared, tag)
			delete(set, tag)
		}
	}
	return shared
}
