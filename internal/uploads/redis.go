package uploads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/brand-ad-studio/internal/types"
)

// DefaultTTL is how long progress stays readable after the last update
const DefaultTTL = time.Hour

const keyPrefix = "upload:"

// RedisTracker keeps progress in Redis so any server instance can answer a poll
type RedisTracker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTracker creates a tracker. A zero ttl uses DefaultTTL.
func NewRedisTracker(client *redis.Client, ttl time.Duration) *RedisTracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisTracker{client: client, ttl: ttl}
}

// ConnectRedis parses a redis:// URL and pings the server
func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func key(id string) string {
	return keyPrefix + id
}

// Start records a new upload in the uploading state
func (t *RedisTracker) Start(ctx context.Context, p types.UploadProgress) error {
	p.Status = types.UploadUploading
	p.Progress = 0
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal upload progress: %w", err)
	}
	if err := t.client.Set(ctx, key(p.ID), data, t.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store upload progress: %w", err)
	}
	return nil
}

// Get returns the upload's progress
func (t *RedisTracker) Get(ctx context.Context, id string) (*types.UploadProgress, error) {
	return t.get(ctx, t.client, id)
}

func (t *RedisTracker) get(ctx context.Context, c redis.Cmdable, id string) (*types.UploadProgress, error) {
	data, err := c.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrUploadNotFound
		}
		return nil, fmt.Errorf("failed to read upload progress: %w", err)
	}
	var p types.UploadProgress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal upload progress: %w", err)
	}
	return &p, nil
}

// Update moves the upload to status inside a WATCH transaction
func (t *RedisTracker) Update(ctx context.Context, id string, status types.UploadStatus, progress int, errMsg string) (*types.UploadProgress, error) {
	var out *types.UploadProgress
	err := t.client.Watch(ctx, func(tx *redis.Tx) error {
		p, err := t.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := advance(p, status, progress, errMsg); err != nil {
			return err
		}
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal upload progress: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key(id), data, t.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		out = p
		return nil
	}, key(id))
	if err != nil {
		return nil, err
	}
	return out, nil
}
