package main

import (
    "log"
    "net/http"

    "github.com/joho/godotenv"

    "github.com/cricbid/auction-relay/config"
    "github.com/cricbid/auction-relay/handlers"
    "github.com/cricbid/auction-relay/repository"
)

func main() {
    if err := godotenv.Load(); err != nil {
        log.Println("No .env file loaded:", err)
    }

    cfg := config.LoadConfig()

    var presence handlers.PresenceStore
    if cfg.MongoURI != "" {
        client, err := repository.Connect(cfg.MongoURI)
        if err != nil {
            log.Printf("MongoDB unavailable, presence persistence disabled: %v", err)
        } else {
            log.Println("Successfully connected to MongoDB")
            presence = repository.NewPresenceStore(client, cfg.MongoDB)
        }
    }

    relay := handlers.NewRelay(cfg, presence)
    r := handlers.NewRouter(relay)

    log.Printf("WebSocket server started on port %s", cfg.Port)
    log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
