package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/clubhub/clubhub-api/internal/events"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type EventsHandler struct {
	broker *events.Broker
	uSvc   UserService
}

func NewEventsHandler(broker *events.Broker, uSvc UserService) *EventsHandler {
	return &EventsHandler{
		broker: broker,
		uSvc:   uSvc,
	}
}

// HandleFeed godoc
// @Summary      Stream election lifecycle events over a WebSocket
// @Description  Pushes election_created, election_deleted, candidate_added and application_decided events. The stream never carries ballots or interim counts.
// @Tags         elections
// @Produce      json
// @Success      101      {string}   string "Switching Protocols to WebSocket"
// @Failure      401      {object}   response.Err
// @Router       /elections/feed [get]
// @Security     BearerAuth
func (h *EventsHandler) HandleFeed(ctx *gin.Context) {
	if _, respErr := getUserFromContext(ctx, h.uSvc); respErr != nil {
		ctx.AbortWithStatus(respErr.StatusCode)

		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))

		return
	}

	sub := h.broker.Subscribe()

	go h.writePump(conn, sub)
	go h.readPump(conn, sub)
}

// writePump pushes broker events to the client until the subscription
// closes or a write fails.
func (h *EventsHandler) writePump(conn *websocket.Conn, sub *events.Subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case event, ok := <-sub.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})

				return
			}

			payload, err := json.Marshal(event)
			if err != nil {
				zap.L().Warn("event marshal failed", zap.Error(err))

				continue
			}

			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound messages. The feed is one-way; reading is only
// needed to notice the close handshake and process pongs.
func (h *EventsHandler) readPump(conn *websocket.Conn, sub *events.Subscriber) {
	defer func() {
		h.broker.Unsubscribe(sub)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))

		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("websocket closed unexpectedly", zap.Error(err))
			}

			return
		}
	}
}
