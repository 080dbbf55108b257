package handlers

import (
    "encoding/json"
    "time"

    "github.com/cricbid/auction-relay/models"
)

// runHeartbeat periodically tells one connection how many clients are
// online. It stops the moment the connection closes; the done channel is
// closed on the same path that unregisters, so no timer outlives its
// connection. A send that fails mid-interval is skipped, not retried.
func (r *Relay) runHeartbeat(c *Connection) {
    ticker := time.NewTicker(r.heartbeatInterval)
    defer ticker.Stop()
    for {
        select {
        case <-c.done:
            return
        case <-ticker.C:
            payload, _ := json.Marshal(models.StatusUpdate{
                Type:             "status_update",
                ConnectedClients: r.hub.Count(),
            })
            _ = c.enqueue(payload)
        }
    }
}
