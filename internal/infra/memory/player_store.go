package memory

import (
	"context"
	"sync"
)

// PlayerStore keeps balances in process.
type PlayerStore struct {
	mu       sync.Mutex
	balances map[string]int64
}

func NewPlayerStore() *PlayerStore {
	return &PlayerStore{balances: make(map[string]int64)}
}

func (s *PlayerStore) CreditBalance(_ context.Context, playerID string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[playerID] += amount
	return nil
}

func (s *PlayerStore) Balance(_ context.Context, playerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[playerID], nil
}
