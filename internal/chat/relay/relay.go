package relay

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"

	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/auth"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/auth/token"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/chat/presence"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/logger"
	"github.com/ashwani-sharma-14/chat-web-app-prototype/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// envelope is the wire format of every server-sent socket event.
type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// client is one live websocket connection. The write goroutine owns
// conn writes and drains send; the read goroutine only watches for the
// peer going away.
type client struct {
	conn   *websocket.Conn
	userID string
	send   chan []byte

	mu     sync.Mutex
	closed bool
}

// trySend queues payload for the write goroutine. It reports false if
// the connection is already closed or the buffer is full.
func (c *client) trySend(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *client) writeLoop() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
}

func (c *client) readLoop() {
	defer c.conn.Close()
	c.conn.SetReadLimit(4 * 1024)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Relay bridges message persistence to live delivery and keeps every
// connected client's view of the online-user set current. It is the
// only writer of the presence registry.
type Relay struct {
	registry *presence.Registry
	tokens   *token.Service
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

func New(registry *presence.Registry, tokens *token.Service) *Relay {
	return &Relay{
		registry: registry,
		tokens:   tokens,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool {
			return true
		}},
		clients: make(map[*client]struct{}),
	}
}

// HandleSocket serves the websocket endpoint. The access token is
// verified during the handshake (cookie, or "token" query parameter
// for clients that cannot send cookies) and the connection is rejected
// on failure; the resolved user identifier, not a client-supplied one,
// keys the presence entry.
func (rl *Relay) HandleSocket(c *gin.Context) {
	accessToken, err := c.Cookie(auth.AccessCookieName)
	if err != nil || accessToken == "" {
		accessToken = c.Query("token")
	}

	userID, err := rl.tokens.VerifyAccess(accessToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid access token"})
		return
	}

	conn, err := rl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	cl := &client{
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 16),
	}

	rl.addClient(cl)
	rl.registry.Register(userID, cl)
	rl.broadcastOnline()
	logger.Info("socket connected", map[string]any{"user_id": userID})

	go cl.writeLoop()
	cl.readLoop()

	// readLoop returns exactly once per connection, however it died.
	rl.removeClient(cl)
	if _, ok := rl.registry.Unregister(cl); ok {
		rl.broadcastOnline()
	}
	cl.closeSend()
	logger.Info("socket disconnected", map[string]any{"user_id": cl.userID})
}

// Push delivers a persisted message to the receiver's live connection,
// if any. Delivery is best-effort: no connection, a replaced entry or
// a full send buffer all end as a silent miss, and the receiver picks
// the message up from history on its next fetch.
func (rl *Relay) Push(msg store.Message) {
	h, ok := rl.registry.Lookup(msg.ReceiverID)
	if !ok {
		return
	}
	cl, ok := h.(*client)
	if !ok {
		return
	}

	payload, err := json.Marshal(envelope{Type: "newMessage", Data: msg})
	if err != nil {
		logger.Error("marshal newMessage event", map[string]any{"error": err.Error()})
		return
	}
	rl.deliver(cl, payload)
}

// OnlineUsers reports the current snapshot, sorted for stable output.
func (rl *Relay) OnlineUsers() []string {
	users := rl.registry.Snapshot()
	sort.Strings(users)
	return users
}

func (rl *Relay) broadcastOnline() {
	payload, err := json.Marshal(envelope{Type: "onlineUsers", Data: rl.OnlineUsers()})
	if err != nil {
		logger.Error("marshal onlineUsers event", map[string]any{"error": err.Error()})
		return
	}

	rl.mu.Lock()
	targets := make([]*client, 0, len(rl.clients))
	for cl := range rl.clients {
		targets = append(targets, cl)
	}
	rl.mu.Unlock()

	for _, cl := range targets {
		rl.deliver(cl, payload)
	}
}

func (rl *Relay) deliver(cl *client, payload []byte) {
	if !cl.trySend(payload) {
		// Slow or gone consumer: drop the connection rather than
		// block; its own handler goroutine finishes the teardown.
		rl.removeClient(cl)
		_ = cl.conn.Close()
	}
}

func (rl *Relay) addClient(cl *client) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.clients[cl] = struct{}{}
}

func (rl *Relay) removeClient(cl *client) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.clients, cl)
}
