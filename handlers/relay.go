package handlers

import (
    "context"
    "encoding/json"
    "log"
    "sync"
    "time"

    "github.com/cricbid/auction-relay/config"
    "github.com/cricbid/auction-relay/models"
)

// PresenceStore is the optional durable store consulted to mark a player's
// online flag. Calls are fire-and-forget; failures never reach clients.
type PresenceStore interface {
    SetPlayerOnline(ctx context.Context, room, player string, online bool) error
}

// Relay decodes inbound messages, applies their side effects against the
// hub and room set, and fans the resulting event out to every connection.
type Relay struct {
    hub      *Hub
    rooms    *Rooms
    presence PresenceStore

    heartbeatInterval time.Duration
    rateRPS           float64
    rateBurst         int

    bidMu     sync.Mutex
    lastBidTS int64
}

// NewRelay wires a relay from the process config. presence may be nil, in
// which case durable presence updates are disabled.
func NewRelay(cfg *config.Config, presence PresenceStore) *Relay {
    return &Relay{
        hub:               NewHub(),
        rooms:             NewRooms(),
        presence:          presence,
        heartbeatInterval: time.Duration(cfg.HeartbeatIntervalMs) * time.Millisecond,
        rateRPS:           cfg.RateLimitRPS,
        rateBurst:         cfg.RateLimitBurst,
    }
}

func (r *Relay) Hub() *Hub     { return r.hub }
func (r *Relay) Rooms() *Rooms { return r.rooms }

// HandleConnect registers a fresh connection, greets it and starts its
// heartbeat.
func (r *Relay) HandleConnect(c *Connection) {
    r.hub.Register(c)
    log.Printf("New client connected! Total clients: %d", r.hub.Count())

    payload, _ := json.Marshal(models.ConnectionEstablished{
        Type:    "connection_established",
        Message: "Connected to Auction Game Server",
    })
    if err := c.enqueue(payload); err != nil {
        log.Printf("Error greeting client %s: %v", c.id, err)
    }
    go r.runHeartbeat(c)
}

// Dispatch parses one inbound frame and applies its dispatch-table entry.
// Processing errors are logged and contained; they never close the source
// connection and never reach other peers.
func (r *Relay) Dispatch(c *Connection, raw []byte) {
    if err := r.dispatch(c, raw); err != nil {
        log.Printf("Error processing message from %s: %v", c.id, err)
    }
}

func (r *Relay) dispatch(c *Connection, raw []byte) error {
    var msg models.Message
    if err := json.Unmarshal(raw, &msg); err != nil {
        return &MalformedMessageError{Reason: err.Error()}
    }

    switch msg.Type {
    case "join_room":
        if msg.Room == "" || msg.Player == "" {
            return &MalformedMessageError{Reason: "join_room requires room and player"}
        }
        r.hub.BindIdentity(c, msg.Player, msg.Room)
        r.rooms.AddMember(msg.Room, msg.Player)
        r.broadcast(models.PlayerJoined{Type: "player_joined", Room: msg.Room, Player: msg.Player})
        r.broadcast(models.PlayerStatus{Type: "player_status", Room: msg.Room, Player: msg.Player, IsOnline: true})
        r.persistPresence(msg.Room, msg.Player, true)

    case "team_selected":
        if msg.Room == "" || msg.Player == "" || msg.Team == "" {
            return &MalformedMessageError{Reason: "team_selected requires room, player and team"}
        }
        r.rooms.Ensure(msg.Room)
        r.broadcast(models.TeamUpdate{Type: "team_update", Room: msg.Room, Player: msg.Player, Team: msg.Team})

    case "start_game":
        if msg.Room == "" {
            return &MalformedMessageError{Reason: "start_game requires room"}
        }
        // Starting an unseen room is a no-op, not an error.
        if !r.rooms.Exists(msg.Room) {
            return nil
        }
        r.broadcast(models.GameStarted{Type: "game_started", Room: msg.Room})

    case "player_online", "player_offline":
        if msg.Room == "" || msg.Player == "" {
            return &MalformedMessageError{Reason: msg.Type + " requires room and player"}
        }
        r.broadcast(models.PlayerStatus{Type: "player_status", Room: msg.Room, Player: msg.Player, IsOnline: msg.Type == "player_online"})

    case "new_bid":
        if msg.Bidder == "" || msg.Player == "" {
            return &MalformedMessageError{Reason: "new_bid requires bidder and player"}
        }
        r.broadcast(models.NewBid{
            Type:       "new_bid",
            Room:       msg.Room,
            Bidder:     msg.Bidder,
            BidderTeam: msg.BidderTeam,
            Amount:     msg.Amount,
            Player:     msg.Player,
            Timestamp:  r.nextBidTimestamp(),
        })

    case "bid_status":
        if msg.Status == "" {
            return &MalformedMessageError{Reason: "bid_status requires status"}
        }
        r.broadcast(models.BidStatus{Type: "bid_status", Room: msg.Room, Status: msg.Status, CurrentBidder: msg.CurrentBidder, BidderTeam: msg.BidderTeam})

    case "game_countdown_start":
        r.broadcast(models.GameCountdownStart{Type: "game_countdown_start", Room: msg.Room})

    case "game_countdown":
        r.broadcast(models.GameCountdown{Type: "game_countdown", Room: msg.Room, Count: msg.Count})

    default:
        return &UnknownEventError{Type: msg.Type}
    }
    return nil
}

// HandleClose runs once the transport reports a connection gone: unregister,
// and if an identity was bound, announce the player offline exactly once.
// Calling it again for the same connection is a no-op.
func (r *Relay) HandleClose(c *Connection) {
    c.close()
    identity := r.hub.Unregister(c)
    if identity == nil {
        return
    }
    r.broadcast(models.PlayerStatus{Type: "player_status", Room: identity.Room, Player: identity.Player, IsOnline: false})
    r.persistPresence(identity.Room, identity.Player, false)
}

// broadcast fans one event out to every open connection regardless of its
// bound room; this is a global relay, not room-scoped pub/sub. A peer that
// cannot accept the frame is skipped, never retried, and never aborts the
// loop.
func (r *Relay) broadcast(event interface{}) {
    payload, err := json.Marshal(event)
    if err != nil {
        log.Printf("Error marshalling outbound event: %v", err)
        return
    }
    for _, c := range r.hub.Snapshot() {
        if err := c.enqueue(payload); err != nil {
            log.Printf("Skipping peer: %v", err)
        }
    }
}

// nextBidTimestamp assigns the server-side bid time, never trusting the
// client clock and never going backwards within the process.
func (r *Relay) nextBidTimestamp() int64 {
    r.bidMu.Lock()
    defer r.bidMu.Unlock()
    ts := time.Now().UnixMilli()
    if ts < r.lastBidTS {
        ts = r.lastBidTS
    }
    r.lastBidTS = ts
    return ts
}

// persistPresence updates the durable online flag outside any lock. The
// write is detached; its result never gates in-memory delivery.
func (r *Relay) persistPresence(room, player string, online bool) {
    if r.presence == nil {
        return
    }
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if err := r.presence.SetPlayerOnline(ctx, room, player, online); err != nil {
            log.Print(&PersistenceFailureError{Op: "setPlayerOnline", Err: err})
        }
    }()
}
