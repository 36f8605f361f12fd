package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"fundportal/internal/logger"
)

// Mirror keeps an investor's snapshot between requests of one session.
type Mirror interface {
	Save(ctx context.Context, investorID string, snap Snapshot) error
	// Load returns ok=false on a miss.
	Load(ctx context.Context, investorID string) (snap Snapshot, ok bool, err error)
	Invalidate(ctx context.Context, investorID string) error
}

// NopMirror never stores anything. It is used when Redis is not configured.
type NopMirror struct{}

func (NopMirror) Save(context.Context, string, Snapshot) error { return nil }

func (NopMirror) Load(context.Context, string) (Snapshot, bool, error) {
	return Snapshot{}, false, nil
}

func (NopMirror) Invalidate(context.Context, string) error { return nil }

// RedisMirror stores snapshots as JSON under "fundportal:view:<investorID>".
type RedisMirror struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMirror wraps a connected client.
func NewRedisMirror(client *redis.Client, ttl time.Duration) *RedisMirror {
	return &RedisMirror{client: client, ttl: ttl}
}

// NewMirror connects to addr and returns a RedisMirror, or a NopMirror when
// addr is empty or the server does not answer.
func NewMirror(ctx context.Context, addr string, ttl time.Duration) Mirror {
	if addr == "" {
		logger.Get().Warn("REDIS_ADDR not set, session mirror disabled")
		return NopMirror{}
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Get().Errorw("Failed to connect to Redis, session mirror disabled", "addr", addr, "error", err)
		_ = client.Close()
		return NopMirror{}
	}
	logger.Get().Infow("Connected to Redis", "addr", addr)
	return NewRedisMirror(client, ttl)
}

func mirrorKey(investorID string) string {
	return "fundportal:view:" + investorID
}

func (m *RedisMirror) Save(ctx context.Context, investorID string, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return m.client.Set(ctx, mirrorKey(investorID), data, m.ttl).Err()
}

func (m *RedisMirror) Load(ctx context.Context, investorID string) (Snapshot, bool, error) {
	data, err := m.client.Get(ctx, mirrorKey(investorID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

func (m *RedisMirror) Invalidate(ctx context.Context, investorID string) error {
	return m.client.Del(ctx, mirrorKey(investorID)).Err()
}
