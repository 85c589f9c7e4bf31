package usecase

import (
	"context"
	"time"
)

// Cache is the best-effort JSON cache the use cases read through.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}
