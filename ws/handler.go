package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/sarvcast/sarvcast-backend/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // development only, restrict in production
	},
}

func sendJSON(conn *websocket.Conn, data interface{}) {
	msg, err := json.Marshal(data)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		log.Println("WebSocket write error:", err)
	}
}

// HandleEpisodeWebSocket subscribes a player to one episode's timeline
// updates while it plays.
func HandleEpisodeWebSocket(c *gin.Context) {
	episodeID := c.Param("id")
	token := c.Query("token")

	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	claims, err := utils.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	userID := claims.UserID
	log.Printf("Episode WS connected: episodeID=%s, userID=%s\n", episodeID, userID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade failed:", err)
		return
	}
	H.Register(episodeID, conn)
	defer H.Unregister(episodeID, conn)

	sendJSON(conn, gin.H{"type": "connected", "message": "Connected to episode " + episodeID})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	log.Printf("Episode WS disconnected: episodeID=%s, userID=%s\n", episodeID, userID)
	conn.Close()
}

// HandleUserWebSocket is the per-user notification channel (badge updates).
func HandleUserWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	claims, err := utils.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	userID := claims.UserID
	log.Printf("User WS connected: userID=%s\n", userID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade failed:", err)
		return
	}
	H.RegisterUser(userID, conn)
	defer H.UnregisterUser(userID, conn)

	sendJSON(conn, gin.H{"type": "connected", "message": "Connected to user WebSocket"})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	log.Printf("User WS disconnected: userID=%s\n", userID)
	conn.Close()
}

// HandleGlobalWebSocket is the shared status channel.
func HandleGlobalWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	claims, err := utils.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	userID := claims.UserID
	log.Printf("Global WS connected: userID=%s\n", userID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade failed:", err)
		return
	}
	H.RegisterGlobal(conn)
	defer H.UnregisterGlobal(conn)

	sendJSON(conn, gin.H{"type": "connected", "message": "Connected to global WebSocket"})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	log.Printf("Global WS disconnected: userID=%s\n", userID)
	conn.Close()
}
