package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers authenticate with a bearer token, not cookies.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one open session-change stream.
type Client struct {
	UserID string
	Conn   *websocket.Conn

	changes <-chan auth.SessionChange
	cancel  func()
	once    sync.Once
}

// ServeSessions upgrades the request and streams every session change of
// userID until the peer disconnects. It blocks for the life of the stream.
func ServeSessions(notifier *auth.Notifier, w http.ResponseWriter, r *http.Request, userID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	changes, cancel := notifier.Subscribe(sendBuffer)
	client := &Client{
		UserID:  userID,
		Conn:    conn,
		changes: changes,
		cancel:  cancel,
	}
	logger.Debug("session stream opened", "user_id", userID)

	go client.readPump()
	client.writePump()

	logger.Debug("session stream closed", "user_id", userID)
	return nil
}

func (c *Client) close() {
	c.once.Do(func() {
		c.cancel()
		c.Conn.Close()
	})
}

// readPump only services control frames; the stream is one-way.
func (c *Client) readPump() {
	defer c.close()

	c.Conn.SetReadLimit(512)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("session stream read error", "user_id", c.UserID, "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case change, ok := <-c.changes:
			if !ok {
				_ = c.Conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
				return
			}
			if change.UserID != c.UserID {
				continue
			}
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteJSON(change); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
