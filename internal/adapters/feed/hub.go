// Package feed streams economy events to websocket clients.
//
// The Hub owns the client set and fans every published message out to
// each client's buffered queue. Each client drains its queue through its
// own rate limiter, so one slow or throttled client never holds up the
// engine or the other clients. A client whose queue is full is dropped.
package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

const (
	clientQueue  = 256
	hubQueue     = 1024
	writeTimeout = 5 * time.Second
)

// Message is the JSON envelope of every feed message
type Message struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	At      shared.SimTime `json:"at"`
	Payload interface{}    `json:"payload"`
}

// Client is one websocket connection
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
}

// Hub maintains the set of active clients and broadcasts messages to them
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	connected atomic.Int64
	dropped   atomic.Int64

	messagesPerSecond float64
	burst             int
	upgrader          websocket.Upgrader
}

// NewHub creates a hub whose clients receive at most messagesPerSecond
// messages with the given burst
func NewHub(messagesPerSecond float64, burst int) *Hub {
	return &Hub{
		clients:           make(map[*Client]bool),
		broadcast:         make(chan []byte, hubQueue),
		register:          make(chan *Client),
		unregister:        make(chan *Client),
		done:              make(chan struct{}),
		messagesPerSecond: messagesPerSecond,
		burst:             burst,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Run is the hub's event loop; it returns when ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.connected.Store(0)
			return

		case client := <-h.register:
			h.clients[client] = true
			h.connected.Store(int64(len(h.clients)))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.connected.Store(int64(len(h.clients)))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// queue full: the client cannot keep up
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.connected.Store(int64(len(h.clients)))
		}
	}
}

// Publish enqueues a message for every client. It never blocks; when the
// hub queue is full the message is dropped and counted.
func (h *Hub) Publish(msgType string, at shared.SimTime, payload interface{}) error {
	b, err := json.Marshal(Message{
		ID:      uuid.NewString(),
		Type:    msgType,
		At:      at,
		Payload: payload,
	})
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- b:
	default:
		h.dropped.Add(1)
	}
	return nil
}

// Clients returns the number of registered clients
func (h *Hub) Clients() int {
	return int(h.connected.Load())
}

// Dropped returns how many messages were discarded because the hub queue was full
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// ServeHTTP upgrades the request to a websocket and registers the client
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	client := &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, clientQueue),
		limiter: rate.NewLimiter(rate.Limit(h.messagesPerSecond), h.burst),
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump only watches for the connection closing; clients do not send
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump drains the client queue through the client's rate limiter
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.limiter.Wait(context.Background()); err != nil {
			return
		}
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
