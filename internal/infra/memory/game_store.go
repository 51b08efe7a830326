package memory

import (
	"context"
	"fmt"
	"sync"

	"quiz-ladder/internal/domain"
)

// GameStore is an in-memory implementation of app.GameRepository.
type GameStore struct {
	mu     sync.RWMutex
	games  map[string]domain.Game
	active map[string]string // player ID -> running game ID
}

func NewGameStore() *GameStore {
	return &GameStore{
		games:  make(map[string]domain.Game),
		active: make(map[string]string),
	}
}

func (s *GameStore) Create(_ context.Context, game domain.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gameID, ok := s.active[game.PlayerID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrGameInProgress, gameID)
	}
	s.games[game.ID] = game.Clone()
	if !game.Finished() {
		s.active[game.PlayerID] = game.ID
	}
	return nil
}

func (s *GameStore) Get(_ context.Context, gameID string) (domain.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[gameID]
	if !ok {
		return domain.Game{}, domain.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *GameStore) Save(_ context.Context, game domain.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[game.ID]; !ok {
		return domain.ErrGameNotFound
	}
	s.games[game.ID] = game.Clone()
	if game.Finished() && s.active[game.PlayerID] == game.ID {
		delete(s.active, game.PlayerID)
	}
	return nil
}

func (s *GameStore) ActiveGame(_ context.Context, playerID string) (domain.Game, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gameID, ok := s.active[playerID]
	if !ok {
		return domain.Game{}, false, nil
	}
	return s.games[gameID].Clone(), true, nil
}
