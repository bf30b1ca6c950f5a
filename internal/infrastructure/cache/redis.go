package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/entities"
)

// Cache defines the caching operations the service uses. A nil/zero result
// with nil error means a miss.
type Cache interface {
	GetTickers(ctx context.Context, key string) (map[string]float64, error)
	SetTickers(ctx context.Context, key string, tickers map[string]float64, ttl time.Duration) error
	GetCards(ctx context.Context, key string) ([]entities.ProductCardData, error)
	SetCards(ctx context.Context, key string, cards []entities.ProductCardData, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisCache implements Cache using Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache client.
func NewRedisCache(addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetTickers retrieves a cached ticker map.
func (c *RedisCache) GetTickers(ctx context.Context, key string) (map[string]float64, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var tickers map[string]float64
	if err := json.Unmarshal(data, &tickers); err != nil {
		return nil, err
	}
	return tickers, nil
}

// SetTickers caches a ticker map with TTL.
func (c *RedisCache) SetTickers(ctx context.Context, key string, tickers map[string]float64, ttl time.Duration) error {
	data, err := json.Marshal(tickers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// GetCards retrieves a cached card snapshot.
func (c *RedisCache) GetCards(ctx context.Context, key string) ([]entities.ProductCardData, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var cards []entities.ProductCardData
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// SetCards caches a card snapshot with TTL.
func (c *RedisCache) SetCards(ctx context.Context, key string, cards []entities.ProductCardData, ttl time.Duration) error {
	data, err := json.Marshal(cards)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes a key from cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// TickersCacheKey generates a cache key for a ticker snapshot.
func TickersCacheKey(network string) string {
	return fmt.Sprintf("tickers:%s", network)
}

// CardsCacheKey generates a cache key for a page's card snapshot.
func CardsCacheKey(network, product, filter string) string {
	return fmt.Sprintf("cards:%s:%s:%s", network, product, filter)
}

// InMemoryCache implements Cache in memory, for development and tests.
type InMemoryCache struct {
	mu      sync.RWMutex
	tickers map[string]*cachedTickers
	cards   map[string]*cachedCards
}

type cachedTickers struct {
	tickers   map[string]float64
	expiresAt time.Time
}

type cachedCards struct {
	cards     []entities.ProductCardData
	expiresAt time.Time
}

// NewInMemoryCache creates a new in-memory cache.
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		tickers: make(map[string]*cachedTickers),
		cards:   make(map[string]*cachedCards),
	}
}

func (c *InMemoryCache) GetTickers(ctx context.Context, key string) (map[string]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.tickers[key]; ok {
		if time.Now().Before(cached.expiresAt) {
			return cached.tickers, nil
		}
		delete(c.tickers, key)
	}
	return nil, nil
}

func (c *InMemoryCache) SetTickers(ctx context.Context, key string, tickers map[string]float64, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tickers[key] = &cachedTickers{
		tickers:   tickers,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (c *InMemoryCache) GetCards(ctx context.Context, key string) ([]entities.ProductCardData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.cards[key]; ok {
		if time.Now().Before(cached.expiresAt) {
			return cached.cards, nil
		}
		delete(c.cards, key)
	}
	return nil, nil
}

func (c *InMemoryCache) SetCards(ctx context.Context, key string, cards []entities.ProductCardData, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cards[key] = &cachedCards{
		cards:     cards,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (c *InMemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tickers, key)
	delete(c.cards, key)
	return nil
}
