package handlers

import (
    "encoding/json"
    "net/http"

    "github.com/gorilla/mux"
)

func NewRouter(relay *Relay) *mux.Router {
    r := mux.NewRouter()

    r.HandleFunc("/ws", relay.WsHandler)
    r.HandleFunc("/healthz", relay.HealthHandler).Methods("GET")

    return r
}

// HealthHandler reports liveness and the current client count.
func (r *Relay) HealthHandler(w http.ResponseWriter, req *http.Request) {
    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "status":           "ok",
        "connectedClients": r.hub.Count(),
    })
}
