package handlers

import (
    "log"
    "net/http"

    "github.com/gorilla/websocket"
    "golang.org/x/time/rate"
)

var upgrader = websocket.Upgrader{
    ReadBufferSize:  1024,
    WriteBufferSize: 1024,
    CheckOrigin:     func(r *http.Request) bool { return true },
}

// WsHandler upgrades the HTTP request and runs the connection until the
// client goes away.
func (r *Relay) WsHandler(w http.ResponseWriter, req *http.Request) {
    ws, err := upgrader.Upgrade(w, req, nil)
    if err != nil {
        log.Println("Upgrade error:", err)
        return
    }

    c := newConnection(ws)
    r.HandleConnect(c)

    go c.writePump()
    r.readPump(c)
}

// readPump reads frames off one connection and hands them to Dispatch.
// Over-limit frames are dropped; a misbehaving client cannot starve the
// relay, and the connection itself stays up.
func (r *Relay) readPump(c *Connection) {
    limiter := rate.NewLimiter(rate.Limit(r.rateRPS), r.rateBurst)
    defer func() {
        r.HandleClose(c)
        c.ws.Close()
        log.Printf("Client disconnected. Total clients: %d", r.hub.Count())
    }()

    for {
        _, message, err := c.ws.ReadMessage()
        if err != nil {
            if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
                log.Printf("Error reading from client %s: %v", c.id, err)
            }
            break
        }
        if !limiter.Allow() {
            log.Printf("Rate limit exceeded for client %s, dropping message", c.id)
            continue
        }
        r.Dispatch(c, message)
    }
}

// writePump drains the send buffer onto the wire. It exits when the
// connection closes or the first write fails.
func (c *Connection) writePump() {
    defer c.ws.Close()
    for {
        select {
        case <-c.done:
            return
        case message := <-c.send:
            if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
                log.Printf("error writing message: %v", err)
                return
            }
        }
    }
}
