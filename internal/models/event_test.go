package models_test

import (
	"encoding/json"
	"testing"

	"peerlink/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_EncodesPayload(t *testing.T) {
	ev, err := models.NewEvent(models.EventPaired, models.PairedPayload{RoomID: "r1", IsCaller: true})
	require.NoError(t, err)

	assert.Equal(t, models.EventPaired, ev.Type)
	assert.JSONEq(t, `{"roomId":"r1","isCaller":true}`, string(ev.Data))
}

func TestNewEvent_NilPayload(t *testing.T) {
	ev, err := models.NewEvent(models.EventStrangerDisconnected, nil)
	require.NoError(t, err)

	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"stranger-disconnected"}`, string(raw))
}

func TestNewEvent_Unencodable(t *testing.T) {
	_, err := models.NewEvent(models.EventMessage, make(chan int))
	assert.Error(t, err)
}

func TestSignalPayload_Blob(t *testing.T) {
	var p models.SignalPayload
	err := json.Unmarshal([]byte(`{
		"roomId": "r1",
		"offer": {"type":"offer","sdp":"v=0"},
		"candidate": {"candidate":"a=1"},
		"message": "hi"
	}`), &p)
	require.NoError(t, err)

	assert.Equal(t, "r1", p.RoomID)
	assert.JSONEq(t, `{"type":"offer","sdp":"v=0"}`, string(p.Blob(models.EventOffer)))
	assert.JSONEq(t, `{"candidate":"a=1"}`, string(p.Blob(models.EventICECandidate)))
	assert.JSONEq(t, `"hi"`, string(p.Blob(models.EventMessage)))
	assert.Nil(t, p.Blob(models.EventAnswer))
	assert.Nil(t, p.Blob(models.EventNext))
}

func TestRoom_Other(t *testing.T) {
	room := models.Room{ID: "r1", Members: [2]string{"a", "b"}}

	other, ok := room.Other("a")
	assert.True(t, ok)
	assert.Equal(t, "b", other)

	other, ok = room.Other("b")
	assert.True(t, ok)
	assert.Equal(t, "a", other)

	_, ok = room.Other("c")
	assert.False(t, ok)
	assert.False(t, room.Has("c"))
	assert.True(t, room.Has("a"))
}
