package http

import (
	"net/http"

	"golden-brain/internal/app"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WSHandler struct {
	game     *app.Game
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(game *app.Game, log *zap.Logger) *WSHandler {
	return &WSHandler{
		game: game,
		log:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type string `json:"type"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades the request and streams standings: the current snapshot
// first, then one per completed session. Spectators cannot play, so the only
// inbound message understood is "sessions".
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	updates, cancel := h.game.Subscribe()
	defer cancel()
	h.log.Info("spectator connected", zap.String("remote", r.RemoteAddr))

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Only this goroutine writes to conn.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug("ws write error", zap.Error(err))
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "standings", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		var msg outboundMessage[any]
		switch inbound.Type {
		case "sessions":
			msg = outboundMessage[any]{Type: "sessions", Payload: h.game.ActiveSessions()}
		default:
			msg = outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
		select {
		case send <- msg:
		case <-writerDone:
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
	h.log.Info("spectator disconnected", zap.String("remote", r.RemoteAddr))
}
