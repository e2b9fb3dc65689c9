package services

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const denylistPrefix = "denylist:"

// DenylistService records revoked tokens in Redis until their natural
// expiry. A denylisted token is refused by the auth middleware everywhere.
type DenylistService struct {
	client *redis.Client
}

func NewDenylistService(client *redis.Client) *DenylistService {
	return &DenylistService{client: client}
}

func (s *DenylistService) Add(ctx context.Context, tokenString string, expiration time.Duration) error {
	key := denylistPrefix + tokenString
	return s.client.Set(ctx, key, 1, expiration).Err()
}

func (s *DenylistService) IsDenylisted(ctx context.Context, tokenString string) (bool, error) {
	key := denylistPrefix + tokenString
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil { // key does not exist
			return false, nil
		}
		return false, err
	}
	return val != "", nil
}
