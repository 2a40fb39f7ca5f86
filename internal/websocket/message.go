package websocket

import (
	"encoding/json"
	"log/slog"
	"time"
)

// Message protocol definitions

type MessageType string

const (
	TypeJoin   MessageType = "join"   // user joins a room
	TypeLeave  MessageType = "leave"  // user leaves a room
	TypeChat   MessageType = "chat"   // user chat a message
	TypeSystem MessageType = "system" // system message
	TypeTyping MessageType = "typing" // user is typing indicator
)

// Message structure for WebSocket communication
type Message struct {
	Type      MessageType `json:"type"`
	RoomID    string      `json:"room_id"`
	UserID    string      `json:"user_id"`
	UserName  string      `json:"user_name"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewMessage(msgType MessageType, roomID, userID, userName, content string) *Message {
	return &Message{
		Type:      msgType,
		RoomID:    roomID,
		UserID:    userID,
		UserName:  userName,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// NewSystemMessage builds a room announcement with no human sender.
func NewSystemMessage(roomID, content string) *Message {
	return &Message{
		Type:      TypeSystem,
		RoomID:    roomID,
		UserID:    "system",
		UserName:  "MindHaven",
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON: marshal Message struct to JSON
func (m *Message) ToJSON() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		slog.Error("Failed to marshal message to JSON", "error", err)
		return nil, err
	}
	return data, nil
}

// MessageFromJSON: unmarshal JSON data to Message struct
func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	err := json.Unmarshal(data, &msg)
	if err != nil {
		slog.Error("Failed to unmarshal message from JSON", "error", err)
		return nil, err
	}
	return &msg, nil
}
