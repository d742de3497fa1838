package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokePrefix = "session:revoked:"

// SessionRevoker 用 redis 做登出名单，实现 auth.Revoker
type SessionRevoker struct{ RDB *redis.Client }

func NewSessionRevoker(c *Cache) *SessionRevoker {
	return &SessionRevoker{RDB: c.RDB}
}

func (r *SessionRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return r.RDB.Set(ctx, revokePrefix+jti, 1, ttl).Err()
}

func (r *SessionRevoker) Revoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.RDB.Exists(ctx, revokePrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
