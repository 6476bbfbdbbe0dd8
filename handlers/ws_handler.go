package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"inkpost/errs"
	"inkpost/middleware"
	"inkpost/models"
	"inkpost/services"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type WebSocketHandler struct {
	hubService *services.HubService
	upgrader   websocket.Upgrader
	log        zerolog.Logger
}

// NewWebSocketHandler accepts upgrades from allowedOrigins; "*" accepts any
// origin and requests without an Origin header are always accepted.
func NewWebSocketHandler(hubService *services.HubService, allowedOrigins []string, log zerolog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hubService: hubService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(r.Header.Get("Origin"), allowedOrigins)
			},
		},
		log: log.With().Str("component", "ws").Logger(),
	}
}

func originAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return true
	}
	for _, o := range allowed {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// HandleWebSocket godoc
// @Summary Stream of blog_liked events
// @Tags auth
// @Security BearerAuth
// @Param token query string false "JWT for clients that cannot set headers"
// @Router /auth/ws [get]
func (wh *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated", "kind": errs.KindUnauthorized})
		return
	}

	conn, err := wh.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		wh.log.Warn().Err(err).Str("user_id", identity.ID).Msg("websocket upgrade failed")
		return
	}

	client := models.NewClient(wh.hubService.GetHub(), conn, identity.ID)
	wh.hubService.Register(client)
	wh.log.Debug().Str("client_id", client.ID).Str("user_id", client.UserID).Msg("websocket connected")

	go wh.writePump(client)
	go wh.readPump(client)
}

func (wh *WebSocketHandler) readPump(client *models.Client) {
	defer func() {
		wh.hubService.Unregister(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				wh.log.Warn().Err(err).Str("client_id", client.ID).Msg("unexpected close")
			}
			return
		}

		var wsMessage models.WSMessage
		if err := json.Unmarshal(message, &wsMessage); err != nil {
			wh.log.Debug().Err(err).Str("client_id", client.ID).Msg("malformed websocket message")
			continue
		}

		switch wsMessage.Type {
		case models.WSTypeClientConnect:
			reply, err := json.Marshal(models.WSMessage{
				Type:     models.WSTypeClientConnected,
				Data:     map[string]string{"client_id": client.ID},
				ClientID: client.ID,
			})
			if err != nil {
				wh.log.Error().Err(err).Msg("marshal client_connected")
				continue
			}
			wh.hubService.SendTo(client, reply)
		default:
			wh.log.Debug().Str("type", wsMessage.Type).Str("client_id", client.ID).Msg("ignoring websocket message")
		}
	}
}

func (wh *WebSocketHandler) writePump(client *models.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := client.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush whatever else is queued into the same frame.
			n := len(client.Send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-client.Send)
			}

			if err := w.Close(); err != nil {
				wh.log.Debug().Err(err).Str("client_id", client.ID).Msg("websocket write failed")
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
