package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

type Hub struct {
	Clients       map[string]map[*websocket.Conn]*Client // per episode
	UserClients   map[string]map[*websocket.Conn]*Client // per user (notifications)
	GlobalClients map[*websocket.Conn]*Client
	Mutex         sync.RWMutex
}

var H = Hub{
	Clients:       make(map[string]map[*websocket.Conn]*Client),
	UserClients:   make(map[string]map[*websocket.Conn]*Client),
	GlobalClients: make(map[*websocket.Conn]*Client),
}

// TimelineUpdate tells players of an episode that its segments changed and
// they should refetch before answering further playback queries.
type TimelineUpdate struct {
	EpisodeID    string `json:"episode_id"`
	Kind         string `json:"kind"` // image | voice_actor
	SegmentCount int    `json:"segment_count"`
}

// Register adds a connection to an episode channel.
func (h *Hub) Register(episodeID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Clients[episodeID]; !ok {
		h.Clients[episodeID] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.Clients[episodeID][conn] = client

	go h.readPump(episodeID, conn)
	go h.writePump(client)
}

// RegisterUser adds a connection to a user's private channel.
func (h *Hub) RegisterUser(userID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.UserClients[userID]; !ok {
		h.UserClients[userID] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.UserClients[userID][conn] = client

	go h.readUserPump(userID, conn)
	go h.writePump(client)
}

// RegisterGlobal adds a connection to the shared status channel.
func (h *Hub) RegisterGlobal(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.GlobalClients[conn] = client

	go h.readGlobalPump(conn)
	go h.writePump(client)
}

// Broadcast sends to every client on one episode channel.
func (h *Hub) Broadcast(episodeID string, messageType int, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	if clients, ok := h.Clients[episodeID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// BroadcastToUser sends to every open connection of one user.
func (h *Hub) BroadcastToUser(userID string, messageType int, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	if clients, ok := h.UserClients[userID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// BroadcastGlobal sends to every client on the shared status channel.
func (h *Hub) BroadcastGlobal(messageType int, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	for _, client := range h.GlobalClients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// SendTimelineUpdate notifies an episode's listeners that its timeline was
// replaced or edited.
func SendTimelineUpdate(episodeID, kind string, segmentCount int) {
	update := map[string]interface{}{
		"type": "timeline_updated",
		"data": TimelineUpdate{
			EpisodeID:    episodeID,
			Kind:         kind,
			SegmentCount: segmentCount,
		},
	}
	data, err := json.Marshal(update)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	H.Broadcast(episodeID, websocket.TextMessage, data)
}

// SendBadgeUpdate pushes the unread notification count to one user.
func SendBadgeUpdate(userID string, unread int64) {
	payload := map[string]interface{}{
		"type":   "badge_update",
		"unread": unread,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	H.BroadcastToUser(userID, websocket.TextMessage, data)
}

// Unregister removes a connection from an episode channel.
func (h *Hub) Unregister(episodeID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.Clients[episodeID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.Clients, episodeID)
		}
	}
}

// UnregisterUser removes a connection from a user channel.
func (h *Hub) UnregisterUser(userID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.UserClients[userID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.UserClients, userID)
		}
	}
}

// UnregisterGlobal removes a connection from the shared channel.
func (h *Hub) UnregisterGlobal(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if client, ok := h.GlobalClients[conn]; ok {
		close(client.Send)
		delete(h.GlobalClients, conn)
	}
}

func (h *Hub) readPump(episodeID string, conn *websocket.Conn) {
	defer h.Unregister(episodeID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) readUserPump(userID string, conn *websocket.Conn) {
	defer h.UnregisterUser(userID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) readGlobalPump(conn *websocket.Conn) {
	defer h.UnregisterGlobal(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(client *Client) {
	defer func() {
		client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
		client.Conn.Close()
	}()
	for msg := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
