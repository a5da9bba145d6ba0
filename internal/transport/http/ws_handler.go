package http

import (
	"net/http"

	"bible-quiz-service/internal/app"
	"bible-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// WSHandler streams live leaderboard snapshots to connected clients: an
// initial snapshot on connect, then one message per recorded completion.
type WSHandler struct {
	service  *app.QuizService
	hub      *app.LeaderboardHub
	upgrader websocket.Upgrader
	log      logrus.FieldLogger
}

func NewWSHandler(service *app.QuizService, hub *app.LeaderboardHub) *WSHandler {
	return &WSHandler{
		service: service,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: logrus.StandardLogger(),
	}
}

type outboundMessage struct {
	Type    string            `json:"type"`
	Payload []domain.UserStat `json:"payload"`
}

// ServeWS upgrades the request and pushes leaderboard updates until the
// client disconnects. This goroutine is the sole writer on the connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Leaderboard(r.Context(), 0)
	if err != nil {
		http.Error(w, "leaderboard unavailable", http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("ws upgrade failed")
		return
	}
	defer conn.Close()

	updates, cancel := h.hub.Subscribe()
	defer cancel()

	if err := conn.WriteJSON(outboundMessage{Type: "leaderboard", Payload: snapshot}); err != nil {
		return
	}

	// Reader only detects disconnects; clients send nothing meaningful.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case entries, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage{Type: "leaderboard", Payload: entries}); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
