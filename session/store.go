package session

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"storefront-ui/models"
)

// Store keeps sessions in Redis under an opaque ID. Absence of the key
// is the logged-out state, not an error.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient initializes and returns a Redis client
func NewRedisClient(redisURL string) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Invalid Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	log.Println("Connected to Redis")
	return client
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// NewID mints a fresh session ID.
func NewID() string {
	return uuid.NewString()
}

func (s *Store) key(id string) string {
	return "session:" + id
}

// Get loads a session by ID. A missing key returns (nil, nil).
func (s *Store) Get(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, nil
	}

	data, err := s.client.Get(ctx, s.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Save persists a session with the store's TTL.
func (s *Store) Save(ctx context.Context, id string, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(id), data, s.ttl).Err()
}

// Clear removes a session entirely.
func (s *Store) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.key(id)).Err()
}
