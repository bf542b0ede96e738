package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tablefactory/order-app/realtime"
	"github.com/tablefactory/order-app/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var streamRoles = map[string]bool{
	"admin":      true,
	"sales":      true,
	"production": true,
	"delivery":   true,
}

// EventStreamHandler upgrades staff clients to the order event stream.
// The path role selects the stream; customers have no stream.
func EventStreamHandler(c *gin.Context) {
	role := c.Param("role")
	if !streamRoles[role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown stream role"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("websocket upgrade failed: %v", err)
		return
	}

	realtime.RegisterClient(conn, role)
	utils.InfoLogger.Printf("websocket client connected (role=%s)", role)

	// Reads are discarded; the stream is push only. The loop exists to
	// detect closes and pings.
	go func() {
		defer realtime.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
