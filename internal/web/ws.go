package web

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Zachkp/portfolio/internal/theme"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// themeMessage is pushed on the theme feed.
type themeMessage struct {
	Theme theme.Theme `json:"theme"`
}

const writeWait = 10 * time.Second

// themeFeed sends the current theme and then every change until the
// client disconnects.
func (s *Server) themeFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("web: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := s.deps.Theme.Subscribe()
	defer cancel()

	// The feed is one-way; reading only detects the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("web: websocket read: %v", err)
				}
				return
			}
		}
	}()

	send := func(t theme.Theme) bool {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(themeMessage{Theme: t}) == nil
	}
	if !send(s.deps.Theme.Get()) {
		return
	}
	for {
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case t, ok := <-updates:
			if !ok || !send(t) {
				return
			}
		}
	}
}
