package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionTokens = "shell_tokens"

// TokenStore keeps the bearer token in one document keyed by _id.
type TokenStore struct {
	col *mongo.Collection
	key string
}

func NewTokenStore(db *mongo.Database, key string) *TokenStore {
	return &TokenStore{col: db.Collection(collectionTokens), key: key}
}

type tokenDocument struct {
	Key       string    `bson:"_id"`
	Token     string    `bson:"token"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Load returns the stored token, or "" when no document exists.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tokenDocument
	err := s.col.FindOne(ctx, bson.M{"_id": s.key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", fmt.Errorf("mongo token load: %w", err)
	}
	return doc.Token, nil
}

// Save upserts the token document.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"token": token, "updated_at": time.Now().UTC()}}
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": s.key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo token save: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": s.key}); err != nil {
		return fmt.Errorf("mongo token clear: %w", err)
	}
	return nil
}

// Ping runs the ping command against the token database.
func (s *TokenStore) Ping(ctx context.Context) error {
	return s.col.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}
