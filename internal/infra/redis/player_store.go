package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const balancesKey = "player:balances"

// PlayerStore keeps balances in one hash; HINCRBY makes every credit atomic.
type PlayerStore struct {
	client *redis.Client
}

func NewPlayerStore(client *redis.Client) *PlayerStore {
	return &PlayerStore{client: client}
}

func (s *PlayerStore) CreditBalance(ctx context.Context, playerID string, amount int64) error {
	return s.client.HIncrBy(ctx, balancesKey, playerID, amount).Err()
}

func (s *PlayerStore) Balance(ctx context.Context, playerID string) (int64, error) {
	balance, err := s.client.HGet(ctx, balancesKey, playerID).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return balance, err
}
