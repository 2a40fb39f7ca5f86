package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageJSONRoundTrip(t *testing.T) {
	msg := NewMessage(TypeChat, "room-1", "user-1", "alice", "hello everyone")

	data, err := msg.ToJSON()
	assert.NoError(t, err)

	parsed, err := MessageFromJSON(data)
	assert.NoError(t, err)
	assert.Equal(t, TypeChat, parsed.Type)
	assert.Equal(t, "room-1", parsed.RoomID)
	assert.Equal(t, "user-1", parsed.UserID)
	assert.Equal(t, "alice", parsed.UserName)
	assert.Equal(t, "hello everyone", parsed.Content)
	assert.False(t, parsed.Timestamp.IsZero())
}

func TestMessageFromJSON_Invalid(t *testing.T) {
	parsed, err := MessageFromJSON([]byte("not json"))

	assert.Error(t, err)
	assert.Nil(t, parsed)
}

func TestNewSystemMessage(t *testing.T) {
	msg := NewSystemMessage("room-1", "alice joined the room")

	assert.Equal(t, TypeSystem, msg.Type)
	assert.Equal(t, "system", msg.UserID)
	assert.Equal(t, "MindHaven", msg.UserName)
	assert.Equal(t, "alice joined the room", msg.Content)
}

func TestRoomAddRemoveUser(t *testing.T) {
	room := NewRoom("room-1", "Anxiety Support")
	client := &Client{ID: "client-1", UserID: "user-1", SendChannel: make(chan []byte, 1)}

	room.AddUser(client)
	assert.Equal(t, 1, room.GetUserCount())

	// Adding the same client twice is a no-op
	room.AddUser(client)
	assert.Equal(t, 1, room.GetUserCount())

	room.RemoveUser(client)
	assert.Equal(t, 0, room.GetUserCount())
}

func TestRoomBroadcast_SkipsSlowClient(t *testing.T) {
	room := NewRoom("room-1", "Anxiety Support")
	fast := &Client{ID: "fast", SendChannel: make(chan []byte, 1)}
	slow := &Client{ID: "slow", SendChannel: make(chan []byte)} // no buffer, nobody reading
	room.AddUser(fast)
	room.AddUser(slow)

	room.Broadcast([]byte("ping"))

	assert.Len(t, fast.SendChannel, 1)
	assert.Len(t, slow.SendChannel, 0)
}
