package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost/models"
)

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "send channel closed")
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestHubService_NotifyLikeReachesClients(t *testing.T) {
	hub := NewHubService(zerolog.Nop())
	defer hub.Close()

	first := models.NewClient(hub.GetHub(), nil, "u1")
	second := models.NewClient(hub.GetHub(), nil, "u2")
	hub.Register(first)
	hub.Register(second)

	hub.NotifyLike("b1", 3)

	for _, c := range []*models.Client{first, second} {
		var msg struct {
			Type string                `json:"type"`
			Data models.BlogLikedEvent `json:"data"`
		}
		require.NoError(t, json.Unmarshal(receive(t, c.Send), &msg))
		assert.Equal(t, models.WSTypeBlogLiked, msg.Type)
		assert.Equal(t, models.BlogLikedEvent{BlogID: "b1", Likes: 3}, msg.Data)
	}
}

func TestHubService_UnregisterClosesSend(t *testing.T) {
	hub := NewHubService(zerolog.Nop())
	defer hub.Close()

	client := models.NewClient(hub.GetHub(), nil, "u1")
	hub.Register(client)
	hub.Unregister(client)

	select {
	case _, ok := <-client.Send:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("send channel was not closed")
	}

	// A second unregister is a no-op.
	hub.Unregister(client)
}

func TestHubService_CloseReleasesClients(t *testing.T) {
	hub := NewHubService(zerolog.Nop())

	client := models.NewClient(hub.GetHub(), nil, "u1")
	hub.Register(client)
	hub.Close()
	hub.Close()

	select {
	case _, ok := <-client.Send:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("send channel was not closed")
	}

	late := models.NewClient(hub.GetHub(), nil, "u2")
	hub.Register(late)
	_, ok := <-late.Send
	assert.False(t, ok)
	hub.Unregister(late)
}

func TestHubService_BroadcastDropsWhenQueueFull(t *testing.T) {
	// No Run loop, so nothing drains the queue.
	hub := &HubService{hub: models.NewHub(), log: zerolog.Nop(), done: make(chan struct{})}

	for i := 0; i < cap(hub.GetHub().Broadcast); i++ {
		require.True(t, hub.Broadcast([]byte("x")))
	}
	assert.False(t, hub.Broadcast([]byte("overflow")))
}
