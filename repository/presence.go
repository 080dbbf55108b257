package repository

import (
    "context"
    "time"

    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"
)

// PresenceStore keeps the durable online flag per (room, player) in a
// MongoDB collection. The relay treats it as eventually consistent; the
// in-memory registry stays the source of truth for real-time state.
type PresenceStore struct {
    coll *mongo.Collection
}

func NewPresenceStore(client *mongo.Client, database string) *PresenceStore {
    return &PresenceStore{
        coll: client.Database(database).Collection("player_presence"),
    }
}

// SetPlayerOnline upserts the online flag for a player in a room.
func (s *PresenceStore) SetPlayerOnline(ctx context.Context, room, player string, online bool) error {
    filter := bson.M{"room": room, "player": player}
    update := bson.M{"$set": bson.M{
        "online":    online,
        "updatedAt": time.Now().UTC(),
    }}
    _, err := s.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
    return err
}
