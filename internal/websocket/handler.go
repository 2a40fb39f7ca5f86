package websocket

import (
	"net/http"

	"mindhaven/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// HTTP upgrade handler to WebSocket connections

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// allow all origins for development purpose; can restrict later
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler: handle upgrade request from HTTP connection to WebSocket
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: user ID not found"})
			return
		}

		claims, claimsExists := c.Get("claims")
		userName := "Unknown"
		if claimsExists {
			if claimsData, ok := claims.(*service.Claims); ok {
				userName = claimsData.Username
			}
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade to WebSocket"})
			return
		}

		// A fresh client ID per connection lets one user hold several tabs
		client := NewClient(
			uuid.New().String(),
			userID.(string),
			userName,
			conn,
			hub,
		)

		hub.Register <- client

		go client.ReadPump()
		go client.WritePump()
	}
}
