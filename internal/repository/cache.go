package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/internal/ledger"
)

type redisSummaryCache struct {
	client *redis.Client
}

func NewSummaryCache(client *redis.Client) SummaryCache {
	return &redisSummaryCache{client: client}
}

func summaryKey(kind domain.InstallmentKind, from, to domain.Date) string {
	return fmt.Sprintf("summary:%s:%s:%s", kind.Collection(), from, to)
}

func (c *redisSummaryCache) Get(ctx context.Context, kind domain.InstallmentKind, from, to domain.Date) (*ledger.Summary, error) {
	payload, err := c.client.Get(ctx, summaryKey(kind, from, to)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var summary ledger.Summary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *redisSummaryCache) Set(ctx context.Context, kind domain.InstallmentKind, from, to domain.Date, summary ledger.Summary, ttl time.Duration) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, summaryKey(kind, from, to), payload, ttl).Err()
}

func (c *redisSummaryCache) Invalidate(ctx context.Context, kind domain.InstallmentKind) error {
	pattern := fmt.Sprintf("summary:%s:*", kind.Collection())

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
