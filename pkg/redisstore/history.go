package redisstore

import (
	"context"
	"fmt"
	"time"
)

// Uptime history snapshots. Expensive to recompute (one bucketing pass
// over up to a year of pings), cheap to keep around for a few minutes.

func historyKey(key string) string {
	return fmt.Sprintf("uptime:history:%v", key)
}

func (c *Client) SetHistory(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return retry(ctx, 2, func() error {
		return c.rdb.Set(ctx, historyKey(key), data, ttl).Err()
	})
}

func (c *Client) GetHistory(ctx context.Context, key string) ([]byte, bool, error) {
	res, err := c.rdb.Get(ctx, historyKey(key)).Bytes()
	if err == ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return res, true, nil
}
