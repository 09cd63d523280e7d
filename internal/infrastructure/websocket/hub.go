package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"trustlens/pkg/logger"
)

// Event is one ledger change notification as delivered to subscribers.
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// Client represents one subscriber connection.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// Hub fans ledger events out to every connected subscriber. Publishing
// never blocks a mutation: the broadcast channel is buffered and slow
// clients are dropped rather than waited on.
type Hub struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte
	mutex      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Start runs the hub's main loop in a goroutine.
func (h *Hub) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-h.Register:
				h.mutex.Lock()
				h.clients[client.ID] = client
				h.mutex.Unlock()
				logger.Debug("Subscriber registered: %s", client.ID)

			case client := <-h.Unregister:
				h.mutex.Lock()
				if _, ok := h.clients[client.ID]; ok {
					delete(h.clients, client.ID)
					close(client.Send)
				}
				h.mutex.Unlock()
				logger.Debug("Subscriber unregistered: %s", client.ID)

			case message := <-h.broadcast:
				h.mutex.Lock()
				for id, client := range h.clients {
					select {
					case client.Send <- message:
					default:
						close(client.Send)
						delete(h.clients, id)
					}
				}
				h.mutex.Unlock()

			case <-ctx.Done():
				return
			}
		}
	}()
}

// Publish satisfies the use case layer's EventPublisher.
func (h *Hub) Publish(eventType string, payload interface{}) {
	message, err := json.Marshal(Event{
		Type:      eventType,
		Data:      payload,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		logger.Error("Failed to encode event %s: %v", eventType, err)
		return
	}

	select {
	case h.broadcast <- message:
	default:
		logger.Warn("Event feed backlogged, dropping %s event", eventType)
	}
}

// ReadPump drains the connection. Subscribers are listen-only; anything
// they send is discarded.
func (c *Client) ReadPump(h *Hub) {
	defer func() {
		h.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Debug("Subscriber %s read error: %v", c.ID, err)
			}
			break
		}
	}
}

// WritePump sends queued events to the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
