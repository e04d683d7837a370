// Package storage mirrors hub state to Redis so that other processes (the
// admin CLI, dashboards, sibling instances) can read it. Nothing written here
// is ever read back by the hub.
package storage

import (
	"context"
	"errors"
	"time"

	"peerlink/backend/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	// PresenceKey holds the last online count.
	PresenceKey = "peerlink:presence:online"
	// PresenceChannel receives every online count as it changes.
	PresenceChannel = "peerlink:presence"
)

// Storage is what the server and the admin CLI need from Redis.
type Storage interface {
	PublishPresence(ctx context.Context, count int) error
	OnlineCount(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

type Service struct {
	Redis *redis.Client
	TTL   time.Duration
}

// NewStorageService Constructor
func NewStorageService(rdb *redis.Client) *Service {
	return &Service{
		Redis: rdb,
		TTL:   config.PresenceTTL,
	}
}

// NewRedisClient builds a client from the server config.
func NewRedisClient(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// PublishPresence stores count under PresenceKey with a TTL and publishes it
// on PresenceChannel, in one round trip.
func (s *Service) PublishPresence(ctx context.Context, count int) error {
	pipe := s.Redis.TxPipeline()
	pipe.Set(ctx, PresenceKey, count, s.TTL)
	pipe.Publish(ctx, PresenceChannel, count)
	_, err := pipe.Exec(ctx)
	return err
}

// OnlineCount returns the last mirrored count, or 0 if none is stored.
func (s *Service) OnlineCount(ctx context.Context) (int, error) {
	count, err := s.Redis.Get(ctx, PresenceKey).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.Redis.Ping(ctx).Err()
}
