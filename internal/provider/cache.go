package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"Stonitor/internal/model"
)

// CachedProvider wraps a Provider and keeps slow-moving responses in Redis:
// daily-or-coarser history windows and search results. Latest quotes and
// intraday windows always go upstream.
type CachedProvider struct {
	next   Provider
	client *redis.Client
	ttl    time.Duration
}

// NewCachedProvider connects to Redis and wraps next.
func NewCachedProvider(next Provider, addr, password string, db int, ttl time.Duration) (*CachedProvider, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return newCachedProvider(next, client, ttl), nil
}

func newCachedProvider(next Provider, client *redis.Client, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedProvider{next: next, client: client, ttl: ttl}
}

func (c *CachedProvider) Name() string { return c.next.Name() + "+redis" }

func (c *CachedProvider) LatestQuote(ctx context.Context, ticker string) (*model.Chart, error) {
	return c.next.LatestQuote(ctx, ticker)
}

func (c *CachedProvider) History(ctx context.Context, ticker string, rng model.Range) (*model.Chart, error) {
	if rng.Intraday() {
		return c.next.History(ctx, ticker, rng)
	}

	key := historyKey(ticker, rng)
	var cached model.Chart
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	chart, err := c.next.History(ctx, ticker, rng)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, chart)
	return chart, nil
}

func (c *CachedProvider) Search(ctx context.Context, query string) (*model.SearchResult, error) {
	key := searchKey(query)
	var cached model.SearchResult
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	res, err := c.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, res)
	return res, nil
}

// Close releases the Redis connection pool.
func (c *CachedProvider) Close() error {
	return c.client.Close()
}

func (c *CachedProvider) load(ctx context.Context, key string, dst interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[WARN] redis get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("[WARN] redis decode %s: %v", key, err)
		return false
	}
	return true
}

func (c *CachedProvider) store(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARN] redis encode %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("[WARN] redis set %s: %v", key, err)
	}
}

func historyKey(ticker string, rng model.Range) string {
	return fmt.Sprintf("stonitor:history:%s:%s", strings.ToUpper(ticker), rng)
}

func searchKey(query string) string {
	return "stonitor:search:" + strings.ToLower(strings.TrimSpace(query))
}
