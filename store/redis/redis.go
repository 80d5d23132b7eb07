package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smallnest/kernelplay/store"
)

// RedisCollectionStore implements store.CollectionStore using Redis.
// Each collection is one string key holding the JSON document.
type RedisCollectionStore struct {
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	rootKey string
}

var _ store.CollectionStore = (*RedisCollectionStore)(nil)

// RedisOptions configuration for Redis connection
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "kernelplay:"
	TTL      time.Duration // Expiration for collections, default 0 (no expiration)
	RootKey  string        // Optional object envelope, see store.Decode
}

// NewRedisCollectionStore creates a new Redis collection store
func NewRedisCollectionStore(opts RedisOptions) *RedisCollectionStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "kernelplay:"
	}

	return &RedisCollectionStore{
		client:  client,
		prefix:  prefix,
		ttl:     opts.TTL,
		rootKey: opts.RootKey,
	}
}

func (s *RedisCollectionStore) collectionKey(name string) string {
	return fmt.Sprintf("%scollection:%s", s.prefix, name)
}

// Load retrieves a collection by name
func (s *RedisCollectionStore) Load(ctx context.Context, name string) (store.Collection, error) {
	data, err := s.client.Get(ctx, s.collectionKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, name)
		}
		return nil, fmt.Errorf("%w: load %s from redis: %v", store.ErrIO, name, err)
	}

	c, err := store.Decode(data, s.rootKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Save replaces a collection
func (s *RedisCollectionStore) Save(ctx context.Context, name string, c store.Collection) error {
	data, err := store.Encode(c, s.rootKey)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.collectionKey(name), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: save %s to redis: %v", store.ErrIO, name, err)
	}
	return nil
}

// Close closes the underlying client
func (s *RedisCollectionStore) Close() error {
	return s.client.Close()
}
