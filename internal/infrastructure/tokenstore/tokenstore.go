// Package tokenstore opens the configured backend for the persisted token.
package tokenstore

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/knowcards/appshell/internal/core/ports"
	"github.com/knowcards/appshell/internal/infrastructure/config"
	mongodb "github.com/knowcards/appshell/internal/infrastructure/db/mongo"
	redisdb "github.com/knowcards/appshell/internal/infrastructure/db/redis"
)

// Store is an opened token store and the function releasing its connection.
type Store struct {
	ports.TokenStore
	Backend string
	close   func(context.Context) error
}

// Close releases the backend connection, if any.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Ping checks remote backends; local ones are always reachable.
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.TokenStore.(ports.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Open connects to the backend selected by cfg.Token.Store.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Store, error) {
	switch cfg.Token.Store {
	case config.StoreMemory:
		return &Store{TokenStore: NewMemoryStore(), Backend: config.StoreMemory}, nil

	case config.StoreFile:
		path := cfg.Token.File
		if path == "" {
			path = filepath.Join(StateDir(), cfg.Token.Key)
		}
		log.Debug().Str("path", path).Msg("using file token store")
		return &Store{TokenStore: NewFileStore(path), Backend: config.StoreFile}, nil

	case config.StoreRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis token store: %w", err)
		}
		log.Debug().Str("addr", cfg.Redis.Addr).Msg("using redis token store")
		store := redisdb.NewTokenStore(client, cfg.Token.Key)
		return &Store{
			TokenStore: store,
			Backend:    config.StoreRedis,
			close:      func(context.Context) error { return store.Close() },
		}, nil

	case config.StoreMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  appName,
		})
		if err != nil {
			return nil, fmt.Errorf("open mongo token store: %w", err)
		}
		log.Debug().Str("database", cfg.Mongo.Database).Msg("using mongo token store")
		return &Store{
			TokenStore: mongodb.NewTokenStore(db, cfg.Token.Key),
			Backend:    config.StoreMongo,
			close:      client.Disconnect,
		}, nil
	}
	return nil, fmt.Errorf("unknown token store %q", cfg.Token.Store)
}
