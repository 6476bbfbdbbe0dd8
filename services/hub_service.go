package services

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"inkpost/models"
)

// HubService owns the websocket client set. All membership changes and
// fan-out happen on the Run goroutine.
type HubService struct {
	hub       *models.Hub
	direct    chan directMessage
	log       zerolog.Logger
	done      chan struct{}
	closeOnce sync.Once
}

type directMessage struct {
	client  *models.Client
	payload []byte
}

func NewHubService(log zerolog.Logger) *HubService {
	service := &HubService{
		hub:    models.NewHub(),
		direct: make(chan directMessage),
		log:    log.With().Str("component", "hub").Logger(),
		done:   make(chan struct{}),
	}

	go service.Run()

	return service
}

func (h *HubService) GetHub() *models.Hub {
	return h.hub
}

func (h *HubService) Run() {
	for {
		select {
		case client := <-h.hub.Register:
			h.hub.Clients[client] = true
			h.log.Debug().Str("client_id", client.ID).Str("user_id", client.UserID).Msg("client registered")

		case client := <-h.hub.Unregister:
			h.unregisterClient(client)

		case message := <-h.hub.Broadcast:
			h.broadcastToAll(message)

		case msg := <-h.direct:
			if _, ok := h.hub.Clients[msg.client]; ok {
				h.deliver(msg.client, msg.payload)
			}

		case <-h.done:
			for client := range h.hub.Clients {
				h.unregisterClient(client)
			}
			return
		}
	}
}

// Register adds a client. After Close the client's send channel is closed
// immediately so its write pump exits.
func (h *HubService) Register(client *models.Client) {
	select {
	case h.hub.Register <- client:
	case <-h.done:
		close(client.Send)
	}
}

func (h *HubService) Unregister(client *models.Client) {
	select {
	case h.hub.Unregister <- client:
	case <-h.done:
	}
}

// SendTo queues a message for a single registered client.
func (h *HubService) SendTo(client *models.Client, payload []byte) {
	select {
	case h.direct <- directMessage{client: client, payload: payload}:
	case <-h.done:
	}
}

func (h *HubService) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Broadcast queues a message for every client without blocking. It reports
// false when the queue is full and the message was dropped.
func (h *HubService) Broadcast(message []byte) bool {
	select {
	case h.hub.Broadcast <- message:
		return true
	default:
		h.log.Warn().Int("queued", len(h.hub.Broadcast)).Msg("broadcast queue full, dropping message")
		return false
	}
}

// NotifyLike pushes the new like count of a blog to all clients.
func (h *HubService) NotifyLike(blogID string, likes int) {
	h.BroadcastMessage(models.WSTypeBlogLiked, models.BlogLikedEvent{BlogID: blogID, Likes: likes})
}

func (h *HubService) BroadcastMessage(messageType string, data interface{}) {
	messageBytes, err := json.Marshal(models.WSMessage{Type: messageType, Data: data})
	if err != nil {
		h.log.Error().Err(err).Str("type", messageType).Msg("marshal websocket message")
		return
	}
	h.Broadcast(messageBytes)
}

func (h *HubService) unregisterClient(client *models.Client) {
	if _, ok := h.hub.Clients[client]; !ok {
		return
	}
	delete(h.hub.Clients, client)
	close(client.Send)
	h.log.Debug().Str("client_id", client.ID).Str("user_id", client.UserID).Msg("client unregistered")
}

func (h *HubService) broadcastToAll(message []byte) {
	for client := range h.hub.Clients {
		h.deliver(client, message)
	}
}

// deliver drops clients whose send buffer is full.
func (h *HubService) deliver(client *models.Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		h.log.Warn().Str("client_id", client.ID).Msg("client send buffer full, disconnecting")
		h.unregisterClient(client)
	}
}
