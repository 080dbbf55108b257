package handlers

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/gorilla/websocket"

    "github.com/cricbid/auction-relay/config"
)

func startTestServer(t *testing.T) (*Relay, *httptest.Server) {
    t.Helper()
    cfg := &config.Config{
        Port:                "0",
        HeartbeatIntervalMs: 30000,
        RateLimitRPS:        100,
        RateLimitBurst:      200,
    }
    relay := NewRelay(cfg, nil)
    srv := httptest.NewServer(NewRouter(relay))
    t.Cleanup(srv.Close)
    return relay, srv
}

func dialClient(t *testing.T, srv *httptest.Server) *websocket.Conn {
    t.Helper()
    url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
    conn, _, err := websocket.DefaultDialer.Dial(url, nil)
    if err != nil {
        t.Fatalf("dial %s: %v", url, err)
    }
    t.Cleanup(func() { conn.Close() })
    return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]interface{} {
    t.Helper()
    conn.SetReadDeadline(time.Now().Add(2 * time.Second))
    _, raw, err := conn.ReadMessage()
    if err != nil {
        t.Fatalf("read: %v", err)
    }
    var event map[string]interface{}
    if err := json.Unmarshal(raw, &event); err != nil {
        t.Fatalf("decode %q: %v", raw, err)
    }
    return event
}

func expectEvent(t *testing.T, conn *websocket.Conn, wantType string) map[string]interface{} {
    t.Helper()
    event := readEvent(t, conn)
    if event["type"] != wantType {
        t.Fatalf("event type = %v, want %s (event: %v)", event["type"], wantType, event)
    }
    return event
}

func TestEndToEndAuctionFlow(t *testing.T) {
    t.Parallel()

    _, srv := startTestServer(t)

    a := dialClient(t, srv)
    expectEvent(t, a, "connection_established")
    b := dialClient(t, srv)
    expectEvent(t, b, "connection_established")

    // A joins a room; everyone hears about it, twice over (join + presence).
    if err := a.WriteMessage(websocket.TextMessage, []byte(`{"type":"join_room","room":"R1","player":"A"}`)); err != nil {
        t.Fatal(err)
    }
    for _, conn := range []*websocket.Conn{a, b} {
        joined := expectEvent(t, conn, "player_joined")
        if joined["room"] != "R1" || joined["player"] != "A" {
            t.Errorf("player_joined = %v", joined)
        }
        status := expectEvent(t, conn, "player_status")
        if status["isOnline"] != true {
            t.Errorf("join presence = %v, want isOnline true", status)
        }
    }

    // B announces A's team; everyone receives the team_update.
    if err := b.WriteMessage(websocket.TextMessage, []byte(`{"type":"team_selected","room":"R1","player":"A","team":"T1"}`)); err != nil {
        t.Fatal(err)
    }
    for _, conn := range []*websocket.Conn{a, b} {
        update := expectEvent(t, conn, "team_update")
        if update["room"] != "R1" || update["player"] != "A" || update["team"] != "T1" {
            t.Errorf("team_update = %v", update)
        }
    }

    // A drops; survivors get the offline presence event.
    a.Close()
    status := expectEvent(t, b, "player_status")
    if status["room"] != "R1" || status["player"] != "A" || status["isOnline"] != false {
        t.Errorf("offline presence = %v, want R1/A offline", status)
    }
}

func TestMalformedFrameKeepsConnectionAlive(t *testing.T) {
    t.Parallel()

    _, srv := startTestServer(t)

    a := dialClient(t, srv)
    expectEvent(t, a, "connection_established")

    if err := a.WriteMessage(websocket.TextMessage, []byte(`{not json`)); err != nil {
        t.Fatal(err)
    }

    // The connection must survive the bad frame and keep relaying.
    if err := a.WriteMessage(websocket.TextMessage, []byte(`{"type":"bid_status","status":"open"}`)); err != nil {
        t.Fatal(err)
    }
    expectEvent(t, a, "bid_status")
}

func TestAnonymousDisconnectEmitsNothing(t *testing.T) {
    t.Parallel()

    relay, srv := startTestServer(t)

    a := dialClient(t, srv)
    expectEvent(t, a, "connection_established")
    b := dialClient(t, srv)
    expectEvent(t, b, "connection_established")

    // A never joined a room, so its exit must be silent.
    a.Close()

    deadline := time.Now().Add(time.Second)
    for time.Now().Before(deadline) {
        if relay.Hub().Count() == 1 {
            break
        }
        time.Sleep(10 * time.Millisecond)
    }
    if got := relay.Hub().Count(); got != 1 {
        t.Fatalf("Count() = %d, want 1 after disconnect", got)
    }

    // B should see nothing; a bid from B must be its next inbound event.
    if err := b.WriteMessage(websocket.TextMessage, []byte(`{"type":"bid_status","status":"open"}`)); err != nil {
        t.Fatal(err)
    }
    expectEvent(t, b, "bid_status")
}

func TestHealthz(t *testing.T) {
    t.Parallel()

    _, srv := startTestServer(t)

    resp, err := http.Get(srv.URL + "/healthz")
    if err != nil {
        t.Fatal(err)
    }
    defer resp.Body.Close()

    if resp.StatusCode != http.StatusOK {
        t.Fatalf("status = %d, want 200", resp.StatusCode)
    }
    var body map[string]interface{}
    if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
        t.Fatal(err)
    }
    if body["status"] != "ok" {
        t.Errorf("body = %v", body)
    }
}
