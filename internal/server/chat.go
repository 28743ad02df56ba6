package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/dreamgarage/dreamcar/internal/chat"
	"github.com/dreamgarage/dreamcar/models"
	"github.com/dreamgarage/dreamcar/provider"
)

type ChatHandler struct {
	LLM    provider.Provider
	Logger *log.Logger
}

func (h *ChatHandler) Register(e *echo.Echo) {
	e.GET("/chat", h.serve)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect cross-origin from the dev frontend; the CORS
	// policy on the HTTP routes is the gate, not the WS origin check.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// chatFrame is both the inbound and outbound wire format. Outbound frames
// carry stream=true for incremental tokens and a final stream=false frame
// with an empty message once the reply is complete.
type chatFrame struct {
	Role    string `json:"role"`
	Message string `json:"message"`
	Stream  bool   `json:"stream"`
}

// serve owns one connection: a fresh session, a reader goroutine feeding
// inbound turns, and a sequential loop that streams each reply fully before
// taking the next message. Disconnect while a stream is in flight cancels
// the stream and ends the session without further frames.
func (h *ChatHandler) serve(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	chatSessionsActive.Inc()
	defer chatSessionsActive.Dec()

	session := chat.NewSession(h.LLM)
	h.Logger.Printf("session %s opened from %s", session.ID, c.RealIP())
	defer h.Logger.Printf("session %s closed", session.ID)

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	inbound := make(chan chatFrame)
	go func() {
		defer close(inbound)
		for {
			var frame chatFrame
			if err := conn.ReadJSON(&frame); err != nil {
				cancel()
				return
			}
			select {
			case inbound <- frame:
			case <-ctx.Done():
				return
			}
		}
	}()

	for frame := range inbound {
		session.Append(models.ChatTurn{Role: models.Role(frame.Role), Message: frame.Message})

		err := session.Respond(ctx, func(token string) error {
			return conn.WriteJSON(chatFrame{Role: "assistant", Message: token, Stream: true})
		})
		if err != nil {
			// Client went away mid-stream; normal termination.
			return nil
		}
		if err := conn.WriteJSON(chatFrame{Role: "assistant", Message: "", Stream: false}); err != nil {
			return nil
		}
	}
	return nil
}
