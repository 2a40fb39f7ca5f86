package websocket

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// Individual client connection handler

const ( // ping pong(2-way heartbeat) to keep connection alive
	WriteWait      = 10 * time.Second    // max time write a message to the peer
	PongWait       = 60 * time.Second    // max time to wait for pong from peer => no pong = no connection
	PingPeriod     = (PongWait * 9) / 10 // send ping before pong wait expires, 10% margin for network jitter
	MaxMessageSize = 512                 // maximum message size allowed from peer
)

type Client struct {
	ID          string          // unique client ID
	UserID      string          // user ID from auth token(JWT.claims)
	UserName    string          // user name from auth token(JWT.claims)
	RoomID      string          // current room, empty = not in any room
	Conn        *websocket.Conn // WebSocket connection
	SendChannel chan []byte     // channel for outbound messages
	Hub         *Hub            // reference to the central Hub
}

func NewClient(id, userID, userName string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:          id,
		UserID:      userID,
		UserName:    userName,
		Conn:        conn,
		SendChannel: make(chan []byte, MaxMessageSize/2),
		Hub:         hub,
	}
}

// ReadPump pumps messages from the WebSocket connection to the hub. One
// goroutine per connection; exiting unregisters the client.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(PongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("Unexpected WebSocket close", "client_id", c.ID, "error", err)
			}
			return
		}

		msg, err := MessageFromJSON(data)
		if err != nil {
			continue
		}
		// Sender identity comes from the JWT, never from the payload
		msg.UserID = c.UserID
		msg.UserName = c.UserName
		c.Hub.HandleMessage(c, msg)
	}
}

// WritePump pumps messages from the send channel to the WebSocket connection
// and keeps the heartbeat going.
func (c *Client) WritePump() {
	ticker := time.NewTicker(PingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.SendChannel:
			c.Conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if !ok {
				// Hub closed the channel
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage queues a message without blocking; full buffer drops it.
func (c *Client) SendMessage(message []byte) error {
	select {
	case c.SendChannel <- message:
		return nil
	default:
		return ErrClientBufferFull
	}
}
