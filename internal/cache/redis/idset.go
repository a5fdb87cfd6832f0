// Package redis caches resolved candidate-id lists keyed by the query
// signature. The cache is a pure optimization: any failure is reported as a
// miss and resolution proceeds against the catalog.
package redis

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "inv:search:"

// IDSetCache memoizes resolved product-id lists in Redis under an md5 of the
// (search term, category id) signature, with a fixed TTL.
type IDSetCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIDSetCache creates a new Redis-backed id-set cache.
func NewIDSetCache(client *redis.Client, ttl time.Duration) *IDSetCache {
	return &IDSetCache{
		client: client,
		ttl:    ttl,
	}
}

// Key returns the cache key for a query signature.
func Key(term string, categoryID int64) string {
	sum := md5.Sum([]byte(term + "|" + strconv.FormatInt(categoryID, 10)))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached id list for the signature. found is false on a
// miss; an empty cached list is a hit with found true.
func (c *IDSetCache) Get(ctx context.Context, term string, categoryID int64) ([]int64, bool, error) {
	data, err := c.client.Get(ctx, Key(term, categoryID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get id set: %w", err)
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, false, fmt.Errorf("unmarshal id set: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}

	return ids, true, nil
}

// Set stores the id list for the signature with the configured TTL. Empty
// lists are stored too, so repeated no-hit queries skip the catalog.
func (c *IDSetCache) Set(ctx context.Context, term string, categoryID int64, ids []int64) error {
	if ids == nil {
		ids = []int64{}
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal id set: %w", err)
	}

	if err := c.client.Set(ctx, Key(term, categoryID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set id set: %w", err)
	}

	return nil
}
