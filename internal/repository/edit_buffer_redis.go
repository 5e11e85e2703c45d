package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/tsaratour/service-booking/internal/domain/draft"
	"go.uber.org/zap"
)

// RedisEditBuffer stores one edit snapshot per owner in Redis.
type RedisEditBuffer struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisEditBuffer creates a RedisEditBuffer whose slots expire after ttl.
func NewRedisEditBuffer(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisEditBuffer {
	return &RedisEditBuffer{rdb: rdb, ttl: ttl, logger: logger}
}

// Save overwrites the owner's slot.
func (b *RedisEditBuffer) Save(ctx context.Context, owner string, s draft.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := b.rdb.Set(ctx, draft.EditBufferKey(owner), data, b.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save edit snapshot: %w", err)
	}
	return nil
}

// Consume atomically reads and deletes the owner's slot.
func (b *RedisEditBuffer) Consume(ctx context.Context, owner string) (*draft.Snapshot, error) {
	data, err := b.rdb.GetDel(ctx, draft.EditBufferKey(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to consume edit snapshot: %w", err)
	}
	return decodeSlot(b.logger, owner, data), nil
}

// decodeSlot parses slot content; unreadable content is dropped.
func decodeSlot(logger *zap.Logger, owner string, data []byte) *draft.Snapshot {
	s, err := draft.ParseSnapshot(data)
	if err != nil {
		logger.Warn("discarding malformed edit snapshot", zap.String("owner", owner), zap.Error(err))
		return nil
	}
	return &s
}
