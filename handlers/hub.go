package handlers

import (
    "sort"
    "sync"

    "github.com/google/uuid"
    "github.com/gorilla/websocket"

    "github.com/cricbid/auction-relay/models"
)

// Connection represents one live WebSocket stream and the identity the
// client announced on it, if any. The transport layer owns the open/closed
// state; the relay only observes it before sending.
type Connection struct {
    id   string
    ws   *websocket.Conn
    send chan []byte
    done chan struct{}

    mu       sync.Mutex
    closed   bool
    identity *models.Identity
    seq      uint64

    closeOnce sync.Once
}

func newConnection(ws *websocket.Conn) *Connection {
    return &Connection{
        id:   uuid.New().String(),
        ws:   ws,
        send: make(chan []byte, 256),
        done: make(chan struct{}),
    }
}

func (c *Connection) ID() string { return c.id }

// enqueue hands a frame to the write pump without blocking. A closed peer
// or a full buffer yields a SendFailureError; the caller skips that peer.
func (c *Connection) enqueue(message []byte) error {
    c.mu.Lock()
    closed := c.closed
    c.mu.Unlock()
    if closed {
        return &SendFailureError{ConnID: c.id, Reason: "connection closed"}
    }
    select {
    case c.send <- message:
        return nil
    case <-c.done:
        return &SendFailureError{ConnID: c.id, Reason: "connection closed"}
    default:
        return &SendFailureError{ConnID: c.id, Reason: "send buffer full"}
    }
}

// close marks the connection closed and releases its heartbeat and write
// pump. Safe to call more than once; only the first call has effect.
func (c *Connection) close() {
    c.closeOnce.Do(func() {
        c.mu.Lock()
        c.closed = true
        c.mu.Unlock()
        close(c.done)
    })
}

func (c *Connection) isOpen() bool {
    c.mu.Lock()
    defer c.mu.Unlock()
    return !c.closed
}

func (c *Connection) boundIdentity() *models.Identity {
    c.mu.Lock()
    defer c.mu.Unlock()
    return c.identity
}

// Hub maintains the set of active connections. All mutation goes through a
// single mutex; fan-out callers take a snapshot and send outside the lock.
type Hub struct {
    mu      sync.Mutex
    conns   map[*Connection]struct{}
    nextSeq uint64
}

func NewHub() *Hub {
    return &Hub{conns: make(map[*Connection]struct{})}
}

// Register adds an open connection with no bound identity.
func (h *Hub) Register(c *Connection) {
    h.mu.Lock()
    defer h.mu.Unlock()
    h.nextSeq++
    c.mu.Lock()
    c.seq = h.nextSeq
    c.mu.Unlock()
    h.conns[c] = struct{}{}
}

// BindIdentity attaches (player, room) to a connection. Re-announcing is
// allowed; the last write wins.
func (h *Hub) BindIdentity(c *Connection, player, room string) {
    c.mu.Lock()
    c.identity = &models.Identity{Player: player, Room: room}
    c.mu.Unlock()
}

// Unregister removes a connection and returns the identity that was bound,
// if any, so the caller can emit the presence change exactly once. A second
// call for the same connection is a no-op returning nil.
func (h *Hub) Unregister(c *Connection) *models.Identity {
    h.mu.Lock()
    _, ok := h.conns[c]
    if ok {
        delete(h.conns, c)
    }
    h.mu.Unlock()
    if !ok {
        return nil
    }
    return c.boundIdentity()
}

// Snapshot returns the registered connections in registration order. Closed
// connections may still appear briefly; senders skip them at enqueue time.
func (h *Hub) Snapshot() []*Connection {
    h.mu.Lock()
    conns := make([]*Connection, 0, len(h.conns))
    for c := range h.conns {
        conns = append(conns, c)
    }
    h.mu.Unlock()
    sort.Slice(conns, func(i, j int) bool { return conns[i].seq < conns[j].seq })
    return conns
}

// Count reports the number of registered connections, identity-bound or not.
func (h *Hub) Count() int {
    h.mu.Lock()
    defer h.mu.Unlock()
    return len(h.conns)
}
