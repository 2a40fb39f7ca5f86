package websocket

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"mindhaven/internal/http-api/models"
	"mindhaven/internal/http-api/repository"

	"gorm.io/gorm"
)

// Central hub managing all connections and rooms.
// Each WebSocket connection runs in its own goroutine but registration and
// teardown flow through the hub's channels to avoid race conditions.

var ErrClientBufferFull = errors.New("client send buffer full")

const persistTimeout = 5 * time.Second

type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	rooms   map[string]*Room            // map[roomID] -> *Room
	clients map[string]*Client          // map[clientID] -> *Client
	byUser  map[string]map[string]*Client // map[userID] -> clientID set, for direct delivery
	mu      sync.RWMutex

	roomRepo    repository.ChatRoomRepository
	messageRepo repository.ChatMessageRepository
}

func NewHub(roomRepo repository.ChatRoomRepository, messageRepo repository.ChatMessageRepository) *Hub {
	return &Hub{
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
		rooms:       make(map[string]*Room),
		clients:     make(map[string]*Client),
		byUser:      make(map[string]map[string]*Client),
		roomRepo:    roomRepo,
		messageRepo: messageRepo,
	}
}

// Run processes register/unregister events until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.Register:
			h.addClient(client)

		case client := <-h.Unregister:
			h.removeClient(client)

		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old := h.clients[c.ID]; old != nil {
		// Same client ID reconnecting; the stale connection tears itself
		// down once its heartbeat fails
		old.Conn.Close()
	}
	h.clients[c.ID] = c
	if h.byUser[c.UserID] == nil {
		h.byUser[c.UserID] = make(map[string]*Client)
	}
	h.byUser[c.UserID][c.ID] = c
	slog.Info("Client connected", "client_id", c.ID, "user_id", c.UserID)
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	// Pointer equality guards a reconnect under the same client ID:
	// the stale connection must not tear down its replacement
	active := h.clients[c.ID] == c
	var room *Room
	if active {
		room = h.rooms[c.RoomID]
		delete(h.clients, c.ID)
		if set := h.byUser[c.UserID]; set != nil && set[c.ID] == c {
			delete(set, c.ID)
			if len(set) == 0 {
				delete(h.byUser, c.UserID)
			}
		}
	}
	h.mu.Unlock()

	if room != nil {
		room.RemoveUser(c)
		if msg, err := NewSystemMessage(room.ID, c.UserName+" left the room").ToJSON(); err == nil {
			room.Broadcast(msg)
		}
	}
	if active {
		// Out of every map and room by now, safe to close
		close(c.SendChannel)
	}
	slog.Info("Client disconnected", "client_id", c.ID, "user_id", c.UserID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range h.clients {
		close(client.SendChannel)
	}
	h.clients = make(map[string]*Client)
	h.byUser = make(map[string]map[string]*Client)
	h.rooms = make(map[string]*Room)
}

// HandleMessage dispatches one inbound client message.
func (h *Hub) HandleMessage(c *Client, msg *Message) {
	switch msg.Type {
	case TypeJoin:
		h.joinRoom(c, msg.RoomID)
	case TypeLeave:
		h.leaveRoom(c)
	case TypeChat:
		h.chat(c, msg)
	case TypeTyping:
		h.typing(c, msg)
	default:
		slog.Warn("Unknown message type", "type", msg.Type, "client_id", c.ID)
	}
}

// joinRoom moves the client into a room, lazily materializing the Room from
// the database the first time anyone joins it.
func (h *Hub) joinRoom(c *Client, roomID string) {
	if roomID == "" || roomID == c.RoomID {
		return
	}

	h.mu.Lock()
	room := h.rooms[roomID]
	h.mu.Unlock()

	if room == nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		stored, err := h.roomRepo.GetByID(ctx, roomID)
		cancel()
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				slog.Error("Failed to load chat room", "room_id", roomID, "error", err)
			}
			if msg, jerr := NewSystemMessage(roomID, "room not found").ToJSON(); jerr == nil {
				c.SendMessage(msg)
			}
			return
		}

		h.mu.Lock()
		if h.rooms[roomID] == nil {
			h.rooms[roomID] = NewRoom(stored.ID, stored.Name)
		}
		room = h.rooms[roomID]
		h.mu.Unlock()
	}

	h.leaveRoom(c)
	c.RoomID = roomID
	room.AddUser(c)

	if msg, err := NewSystemMessage(roomID, c.UserName+" joined the room").ToJSON(); err == nil {
		room.Broadcast(msg)
	}
}

func (h *Hub) leaveRoom(c *Client) {
	if c.RoomID == "" {
		return
	}

	h.mu.RLock()
	room := h.rooms[c.RoomID]
	h.mu.RUnlock()
	c.RoomID = ""

	if room != nil {
		room.RemoveUser(c)
		if msg, err := NewSystemMessage(room.ID, c.UserName+" left the room").ToJSON(); err == nil {
			room.Broadcast(msg)
		}
	}
}

// chat persists the message then broadcasts it to the sender's current room.
func (h *Hub) chat(c *Client, msg *Message) {
	if c.RoomID == "" {
		return
	}
	content := strings.TrimSpace(msg.Content)
	if content == "" {
		return
	}

	h.mu.RLock()
	room := h.rooms[c.RoomID]
	h.mu.RUnlock()
	if room == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	err := h.messageRepo.Create(ctx, &models.ChatMessage{
		RoomID:   room.ID,
		UserID:   c.UserID,
		UserName: c.UserName,
		Message:  content,
	})
	cancel()
	if err != nil {
		slog.Error("Failed to persist chat message", "room_id", room.ID, "error", err)
		return
	}

	out := NewMessage(TypeChat, room.ID, c.UserID, c.UserName, content)
	if data, err := out.ToJSON(); err == nil {
		room.Broadcast(data)
	}
}

// typing indicators are transient: broadcast only, never persisted.
func (h *Hub) typing(c *Client, msg *Message) {
	if c.RoomID == "" {
		return
	}

	h.mu.RLock()
	room := h.rooms[c.RoomID]
	h.mu.RUnlock()
	if room == nil {
		return
	}

	out := NewMessage(TypeTyping, room.ID, c.UserID, c.UserName, "")
	if data, err := out.ToJSON(); err == nil {
		room.Broadcast(data)
	}
}

// DeliverToUser pushes raw event bytes to every live connection a user holds.
// This is how notification events fanned out over Redis reach the browser.
func (h *Hub) DeliverToUser(userID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.byUser[userID] {
		if err := client.SendMessage(data); err != nil {
			slog.Warn("Dropping event for slow client", "client_id", client.ID, "user_id", userID)
		}
	}
}
