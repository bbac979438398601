// Package cache stores extraction results in Redis so repeated ingestion of
// the same document text skips the extractor (and any provider spend).
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"adwatch/internal/applicability"
)

const directiveKeyPrefix = "extraction:directive:"

// Cache is a Redis-backed extraction cache. A nil *Cache is a valid
// pass-through: lookups miss and stores are dropped.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New constructs the cache. Returns nil when no client is configured, which
// callers treat as cache-off.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

// Key derives the cache key from the raw document text. Keying on content
// rather than directive ID means re-ingesting edited text misses the cache.
func Key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return directiveKeyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached directive for the text, or (nil, nil) on a miss.
func (c *Cache) Get(ctx context.Context, text string) (*applicability.AirworthinessDirective, error) {
	if c == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, Key(text)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	// A corrupt or invariant-violating entry is treated as a miss; the next
	// Put overwrites it.
	var wire applicability.AirworthinessDirective
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, nil
	}
	directive, err := applicability.NewAirworthinessDirective(
		wire.DirectiveID,
		wire.IssuingAuthority,
		wire.EffectiveDate,
		wire.Manufacturer,
		wire.Rules,
		wire.RawApplicabilityText,
	)
	if err != nil {
		return nil, nil
	}
	return directive, nil
}

// Put stores the directive under the text's content hash.
func (c *Cache) Put(ctx context.Context, text string, directive *applicability.AirworthinessDirective) error {
	if c == nil || directive == nil {
		return nil
	}

	data, err := json.Marshal(directive)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, Key(text), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
