package models

// Identity is the (player, room) pair a connection announces on join_room.
type Identity struct {
    Player string
    Room   string
}

// Message is the inbound envelope. Every client frame carries a type
// discriminant; the remaining fields are populated per kind.
type Message struct {
    Type          string  `json:"type"`
    Room          string  `json:"room,omitempty"`
    Player        string  `json:"player,omitempty"`
    Team          string  `json:"team,omitempty"`
    Bidder        string  `json:"bidder,omitempty"`
    BidderTeam    string  `json:"bidderTeam,omitempty"`
    Amount        float64 `json:"amount,omitempty"`
    Status        string  `json:"status,omitempty"`
    CurrentBidder string  `json:"currentBidder,omitempty"`
    Count         int     `json:"count,omitempty"`
}

type ConnectionEstablished struct {
    Type    string `json:"type"`
    Message string `json:"message"`
}

type PlayerJoined struct {
    Type   string `json:"type"`
    Room   string `json:"room"`
    Player string `json:"player"`
}

type PlayerStatus struct {
    Type     string `json:"type"`
    Room     string `json:"room"`
    Player   string `json:"player"`
    IsOnline bool   `json:"isOnline"`
}

type TeamUpdate struct {
    Type   string `json:"type"`
    Room   string `json:"room"`
    Player string `json:"player"`
    Team   string `json:"team"`
}

type GameStarted struct {
    Type string `json:"type"`
    Room string `json:"room"`
}

type NewBid struct {
    Type       string  `json:"type"`
    Room       string  `json:"room,omitempty"`
    Bidder     string  `json:"bidder"`
    BidderTeam string  `json:"bidderTeam"`
    Amount     float64 `json:"amount"`
    Player     string  `json:"player"`
    Timestamp  int64   `json:"timestamp"`
}

type BidStatus struct {
    Type          string `json:"type"`
    Room          string `json:"room,omitempty"`
    Status        string `json:"status"`
    CurrentBidder string `json:"currentBidder"`
    BidderTeam    string `json:"bidderTeam"`
}

type GameCountdownStart struct {
    Type string `json:"type"`
    Room string `json:"room,omitempty"`
}

type GameCountdown struct {
    Type  string `json:"type"`
    Room  string `json:"room,omitempty"`
    Count int    `json:"count"`
}

type StatusUpdate struct {
    Type             string `json:"type"`
    ConnectedClients int    `json:"connectedClients"`
}
