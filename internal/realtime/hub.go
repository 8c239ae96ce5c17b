// Package realtime pushes fresh user-record snapshots to subscribed clients.
// It stands in for the reactive-query layer the mobile client would otherwise
// get from a managed backend: every successful profile write is published to
// all of that user's open connections.
package realtime

import (
	"encoding/json"
	"log"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/sajorahasan/FitSense/internal/models"
)

type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	publish    chan *Update
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	send   chan []byte
}

// Update is the wire envelope for one pushed snapshot.
type Update struct {
	Type      string       `json:"type"`
	User      *models.User `json:"user,omitempty"`
	Timestamp string       `json:"timestamp"`

	userID string
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan *Update, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.userID]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.userID)
			}
		case update := <-h.publish:
			h.deliver(update)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// PublishUser queues a snapshot for every connection the user holds. Callers
// fire and forget; a full queue drops the update rather than blocking the
// request path.
func (h *Hub) PublishUser(userID string, user *models.User) {
	update := &Update{
		Type:      "user",
		User:      user,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		userID:    userID,
	}
	select {
	case h.publish <- update:
	default:
		log.Printf("realtime hub: dropping update for user %s", userID)
	}
}

func (h *Hub) deliver(update *Update) {
	payload, err := json.Marshal(update)
	if err != nil {
		log.Printf("realtime hub encode update: %v", err)
		return
	}
	h.sendToUser(update.userID, payload)
}

func (h *Hub) sendToUser(userID string, payload []byte) {
	set, ok := h.clients[userID]
	if !ok {
		return
	}

	for client := range set {
		select {
		case client.send <- payload:
		default:
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, userID)
	}
}

// ReadPump drains the connection until the peer goes away. The subscription
// is one-way; inbound frames are ignored.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
