package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/internal/domain/events"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/config"
	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/logger"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var log = logger.NewLogger()

// Custom error types
var (
	ErrCacheNotFound   = errors.New("cache: key not found")
	ErrCacheConnection = errors.New("cache: connection error")
)

// DashboardEventChannel is the Redis channel for dashboard events
const DashboardEventChannel = "dashboard:events"

// Config holds the configuration for Redis client
type Config struct {
	Addr             string
	Password         string
	DB               int
	PoolSize         int
	MinIdleConns     int
	MaxRetries       int
	ConnTimeout      time.Duration
	OperationTimeout time.Duration
	DefaultTTL       time.Duration
	KeyPrefix        string
}

// NewConfigFromEnv creates a Redis config from project configuration
func NewConfigFromEnv(cfg *config.Config) *Config {
	operationTimeout := cfg.Server.Timeout
	if operationTimeout <= 0 {
		operationTimeout = 2 * time.Second
	}
	return &Config{
		Addr:             fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:         cfg.Redis.Password,
		DB:               cfg.Redis.DB,
		PoolSize:         100,
		MinIdleConns:     10,
		MaxRetries:       3,
		ConnTimeout:      5 * time.Second,
		OperationTimeout: operationTimeout,
		DefaultTTL:       30 * time.Minute,
		KeyPrefix:        "fieldops:",
	}
}

// RedisClient wraps the Redis client with additional functionality
type RedisClient struct {
	client *redis.Client
	config *Config
}

// NewRedisClient creates a new Redis client with the provided configuration
func NewRedisClient(cfg *Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.ConnTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}

	return &RedisClient{
		client: client,
		config: cfg,
	}, nil
}

// Client exposes the underlying redis client for queue wiring.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}

// Set stores a JSON-encoded value under the prefixed key.
func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal value: %w", err)
	}
	if ttl <= 0 {
		ttl = r.config.DefaultTTL
	}
	return r.client.Set(ctx, r.key(key), data, ttl).Err()
}

// Get fetches and decodes a value into dest.
func (r *RedisClient) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheNotFound
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// Delete removes keys matching a pattern (used for invalidation).
func (r *RedisClient) Delete(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, r.key(pattern), 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// PublishDashboardEvent publishes a dashboard event for cache invalidation
func (r *RedisClient) PublishDashboardEvent(ctx context.Context, event *events.DashboardEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal dashboard event: %w", err)
	}
	return r.client.Publish(ctx, DashboardEventChannel, data).Err()
}

// SubscribeDashboardEvents delivers dashboard events to the handler until ctx ends.
func (r *RedisClient) SubscribeDashboardEvents(ctx context.Context, handler func(*events.DashboardEvent)) {
	pubsub := r.client.Subscribe(ctx, DashboardEventChannel)
	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event events.DashboardEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Warn("Failed to decode dashboard event", zap.Error(err))
					continue
				}
				handler(&event)
			}
		}
	}()
}

// HealthCheck pings the server.
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client.
func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) key(k string) string {
	return r.config.KeyPrefix + k
}
