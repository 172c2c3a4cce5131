package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRepo keeps a Redis deny-list of logged-out session token ids. With a
// nil client every method is a no-op and no session is considered revoked.
type SessionRepo struct {
	rdb    *redis.Client
	prefix string
}

func NewSessionRepo(rdb *redis.Client) *SessionRepo {
	return &SessionRepo{rdb: rdb, prefix: "mtp:session:revoked:"}
}

// Revoke marks the token id as logged out until exp, after which the token
// would be rejected anyway.
func (r *SessionRepo) Revoke(ctx context.Context, jti string, exp time.Time) error {
	if r == nil || r.rdb == nil || jti == "" {
		return nil
	}
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, r.prefix+jti, 1, ttl).Err()
}

func (r *SessionRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if r == nil || r.rdb == nil || jti == "" {
		return false, nil
	}
	err := r.rdb.Get(ctx, r.prefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
