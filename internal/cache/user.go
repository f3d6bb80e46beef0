package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/giftwell/giftwell/internal/model"
)

const (
	// authUserPrefix is the Redis key prefix for resolved token subjects.
	authUserPrefix = "auth:user:"
	// authUserTTL is the time-to-live for cached users.
	// Short enough that a deleted account stops authenticating quickly.
	authUserTTL = 5 * time.Minute
)

// cachedUser is the subset of the user entity stored in Redis.
// The password hash is deliberately not cached.
type cachedUser struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// GetAuthUser retrieves a cached user by cache key.
// Returns nil on a cache miss; misses are not errors.
func (c *Cache) GetAuthUser(ctx context.Context, cacheKey string) (*model.User, error) {
	key := authUserPrefix + cacheKey

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, nil //nolint:nilerr
	}

	var cached cachedUser
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &model.User{
		ID:        cached.ID,
		Email:     cached.Email,
		Username:  cached.Username,
		CreatedAt: cached.CreatedAt,
	}, nil
}

// SetAuthUser caches a resolved user under the given cache key.
func (c *Cache) SetAuthUser(ctx context.Context, cacheKey string, user *model.User) error {
	key := authUserPrefix + cacheKey

	data, err := json.Marshal(cachedUser{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal cached user: %w", err)
	}

	return c.client.Set(ctx, key, data, authUserTTL).Err()
}

// DeleteAuthUser removes a cached user entry.
func (c *Cache) DeleteAuthUser(ctx context.Context, cacheKey string) error {
	key := authUserPrefix + cacheKey
	return c.client.Del(ctx, key).Err()
}
