package handlers

import (
    "sort"
    "sync"
)

// Rooms tracks which player names have joined which room. Rooms are created
// lazily on first reference and never destroyed; liveness is derived from
// the Hub, not stored here. Abandoned rooms persist until process restart.
type Rooms struct {
    mu    sync.Mutex
    rooms map[string]map[string]struct{}
}

func NewRooms() *Rooms {
    return &Rooms{rooms: make(map[string]map[string]struct{})}
}

// Ensure creates the room if it does not exist yet.
func (r *Rooms) Ensure(id string) {
    r.mu.Lock()
    defer r.mu.Unlock()
    if _, ok := r.rooms[id]; !ok {
        r.rooms[id] = make(map[string]struct{})
    }
}

// AddMember records a player in a room, creating the room if needed.
// Duplicate joins are harmless; the member set stays a set.
func (r *Rooms) AddMember(id, player string) {
    r.mu.Lock()
    defer r.mu.Unlock()
    members, ok := r.rooms[id]
    if !ok {
        members = make(map[string]struct{})
        r.rooms[id] = members
    }
    members[player] = struct{}{}
}

func (r *Rooms) Exists(id string) bool {
    r.mu.Lock()
    defer r.mu.Unlock()
    _, ok := r.rooms[id]
    return ok
}

// Members returns the player names joined to a room, sorted for stable reads.
func (r *Rooms) Members(id string) []string {
    r.mu.Lock()
    defer r.mu.Unlock()
    members := make([]string, 0, len(r.rooms[id]))
    for player := range r.rooms[id] {
        members = append(members, player)
    }
    sort.Strings(members)
    return members
}
