package chathub_test

import (
	"encoding/json"
	"testing"

	"peerlink/backend/internal/models"

	"github.com/stretchr/testify/require"
)

// recordingNotifier keeps every event per recipient.
type recordingNotifier struct {
	events map[string][]models.Event
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{events: make(map[string][]models.Event)}
}

func (n *recordingNotifier) Notify(clientID string, ev models.Event) {
	n.events[clientID] = append(n.events[clientID], ev)
}

func (n *recordingNotifier) total() int {
	total := 0
	for _, evs := range n.events {
		total += len(evs)
	}
	return total
}

func decodePaired(t *testing.T, ev models.Event) models.PairedPayload {
	t.Helper()
	require.Equal(t, models.EventPaired, ev.Type)
	var p models.PairedPayload
	require.NoError(t, json.Unmarshal(ev.Data, &p))
	return p
}
