package cache

import (
	"context"
	"time"
)

// Cache là contract cho shared counter store (Redis).
// Only counter operations are exposed; entity data is never cached.
type Cache interface {
	// Increment tăng counter và trả về giá trị mới
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Ping kiểm tra connection
	Ping(ctx context.Context) error
}
