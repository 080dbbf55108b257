package handlers

import (
    "encoding/json"
    "testing"
    "time"

    "github.com/cricbid/auction-relay/config"
    "github.com/cricbid/auction-relay/models"
)

func waitFrame(t *testing.T, c *Connection, timeout time.Duration) []byte {
    t.Helper()
    select {
    case msg := <-c.send:
        return msg
    case <-time.After(timeout):
        t.Fatal("timed out waiting for a frame")
        return nil
    }
}

func TestHeartbeatReportsClientCount(t *testing.T) {
    t.Parallel()

    cfg := &config.Config{HeartbeatIntervalMs: 10, RateLimitRPS: 100, RateLimitBurst: 200}
    r := NewRelay(cfg, nil)

    c := newConnection(nil)
    other := newConnection(nil)
    r.HandleConnect(c)
    r.HandleConnect(other)
    defer r.HandleClose(other)

    // First frame is the greeting.
    var ev models.ConnectionEstablished
    if err := json.Unmarshal(waitFrame(t, c, time.Second), &ev); err != nil {
        t.Fatal(err)
    }
    if ev.Type != "connection_established" {
        t.Fatalf("first frame type = %q, want connection_established", ev.Type)
    }

    var status models.StatusUpdate
    if err := json.Unmarshal(waitFrame(t, c, time.Second), &status); err != nil {
        t.Fatal(err)
    }
    if status.Type != "status_update" {
        t.Fatalf("frame type = %q, want status_update", status.Type)
    }
    if status.ConnectedClients != 2 {
        t.Errorf("connectedClients = %d, want 2", status.ConnectedClients)
    }

    r.HandleClose(c)

    // The heartbeat must stop with the connection: drain anything already
    // buffered, then expect silence.
    time.Sleep(30 * time.Millisecond)
    recvAll(c)
    time.Sleep(50 * time.Millisecond)
    if frames := recvAll(c); len(frames) != 0 {
        t.Errorf("heartbeat kept running after close, got %d frames", len(frames))
    }
}
