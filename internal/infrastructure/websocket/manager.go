package websocket

import (
	"context"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"verslohub/internal/infrastructure/realtime"
)

// Client is one authenticated WebSocket session. ListSubs tracks the
// request-list subscriptions for the session's lifetime; ThreadSubs tracks
// the message-thread subscription of the currently open request and is
// cleared on every switch.
type Client struct {
	UserID        string
	Conn          *websocket.Conn
	Send          chan []byte
	ListSubs      *realtime.Manager
	ThreadSubs    *realtime.Manager
	activeRequest string
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID:     userID,
		Conn:       conn,
		Send:       make(chan []byte, 256),
		ListSubs:   realtime.NewManager(),
		ThreadSubs: realtime.NewManager(),
	}
}

// ActiveRequest returns the request whose thread this session is watching.
// Only the session's read pump mutates it, so no locking is needed.
func (c *Client) ActiveRequest() string {
	return c.activeRequest
}

func (c *Client) SetActiveRequest(requestID string) {
	c.activeRequest = requestID
}

// DisposeSubscriptions tears down every live subscription this session holds.
func (c *Client) DisposeSubscriptions() {
	c.ThreadSubs.DisposeAll()
	c.ListSubs.DisposeAll()
	c.activeRequest = ""
}

// Manager owns all active WebSocket sessions.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if previous, ok := m.clients[client.UserID]; ok {
					// A reconnect replaces the old session; its listeners
					// must not outlive it.
					previous.DisposeSubscriptions()
					close(previous.Send)
				}
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				log.Printf("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if current, ok := m.clients[client.UserID]; ok && current == client {
					delete(m.clients, client.UserID)
					close(client.Send)
				}
				m.mutex.Unlock()
				client.DisposeSubscriptions()
				log.Printf("Client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendToUser pushes a frame to a connected user, dropping it when the
// session's buffer is full.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if !ok {
		return
	}

	select {
	case client.Send <- message:
	default:
		log.Printf("Dropping frame for user %s: send buffer full", userID)
	}
}

// ReadPump reads frames from the connection and hands them to handle. It
// unregisters the client when the connection closes.
func (c *Client) ReadPump(m *Manager, handle func(*Client, []byte)) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}

		handle(c, message)
	}
}

// WritePump sends queued frames to the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write error for %s: %v", c.UserID, err)
			return
		}
	}
}
