// Package cache wraps Redis as the non-authoritative device-storage
// surrogate: contact prefill, favorites, preference flags, and a raw-JSON
// catalog cache. Losing any of it never corrupts server state, so every
// reader here degrades to "nothing cached" on fault.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	prefillTTL    = 30 * 24 * time.Hour
	catalogTTL    = 30 * time.Second
	prefillKeyFmt = "prefill:%s"
	favoritesFmt  = "favorites:%s"
	prefsFmt      = "prefs:%s"
	catalogKeyFmt = "catalog:list:%s"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(cfg Config) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{client: rdb}, nil
}

// SetPrefill remembers the last-used guest contact details for a user.
func (r *RedisClient) SetPrefill(ctx context.Context, userID, guestName, guestPhone string) error {
	key := fmt.Sprintf(prefillKeyFmt, userID)
	if err := r.client.HSet(ctx, key, "guest_name", guestName, "guest_phone", guestPhone).Err(); err != nil {
		return fmt.Errorf("set prefill: %w", err)
	}
	return r.client.Expire(ctx, key, prefillTTL).Err()
}

// GetPrefill returns the stored contact details; empty strings when nothing
// is cached or the cache is unreachable.
func (r *RedisClient) GetPrefill(ctx context.Context, userID string) (name, phone string) {
	key := fmt.Sprintf(prefillKeyFmt, userID)
	vals, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return "", ""
	}
	return vals["guest_name"], vals["guest_phone"]
}

func (r *RedisClient) AddFavorite(ctx context.Context, userID, experienceID string) error {
	return r.client.SAdd(ctx, fmt.Sprintf(favoritesFmt, userID), experienceID).Err()
}

func (r *RedisClient) RemoveFavorite(ctx context.Context, userID, experienceID string) error {
	return r.client.SRem(ctx, fmt.Sprintf(favoritesFmt, userID), experienceID).Err()
}

func (r *RedisClient) GetFavorites(ctx context.Context, userID string) ([]string, error) {
	ids, err := r.client.SMembers(ctx, fmt.Sprintf(favoritesFmt, userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get favorites: %w", err)
	}
	return ids, nil
}

// SetPreferenceFlag stores a boolean UI preference (tour seen, chat widget
// collapsed, and so on).
func (r *RedisClient) SetPreferenceFlag(ctx context.Context, userID, flag string, value bool) error {
	return r.client.HSet(ctx, fmt.Sprintf(prefsFmt, userID), flag, value).Err()
}

func (r *RedisClient) GetPreferenceFlags(ctx context.Context, userID string) (map[string]string, error) {
	flags, err := r.client.HGetAll(ctx, fmt.Sprintf(prefsFmt, userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get preference flags: %w", err)
	}
	return flags, nil
}

// GetCatalogRaw returns the cached merged-catalog response as raw JSON to
// skip the unmarshal/marshal round trip on the hot list path.
func (r *RedisClient) GetCatalogRaw(ctx context.Context, variant string) ([]byte, error) {
	raw, err := r.client.Get(ctx, fmt.Sprintf(catalogKeyFmt, variant)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("catalog cache miss: %w", err)
	}
	return raw, nil
}

func (r *RedisClient) SetCatalog(ctx context.Context, variant string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	return r.client.Set(ctx, fmt.Sprintf(catalogKeyFmt, variant), raw, catalogTTL).Err()
}

// InvalidateCatalog drops all cached catalog variants after a write.
func (r *RedisClient) InvalidateCatalog(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, fmt.Sprintf(catalogKeyFmt, "*"), 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
