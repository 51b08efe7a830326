package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quiz-ladder/internal/domain"
)

// GameStore keeps game snapshots as JSON and marks the running game of each player.
// Keys:
//   - game:{gameID}            game JSON
//   - player:{playerID}:active running game ID, set with SETNX so only one can exist
type GameStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGameStore expires finished games after ttl; zero keeps them forever.
func NewGameStore(client *redis.Client, ttl time.Duration) *GameStore {
	return &GameStore{client: client, ttl: ttl}
}

func (s *GameStore) Create(ctx context.Context, game domain.Game) error {
	if !game.Finished() {
		ok, err := s.client.SetNX(ctx, s.activeKey(game.PlayerID), game.ID, 0).Result()
		if err != nil {
			return fmt.Errorf("mark active game: %w", err)
		}
		if !ok {
			gameID, _ := s.client.Get(ctx, s.activeKey(game.PlayerID)).Result()
			return fmt.Errorf("%w: %s", domain.ErrGameInProgress, gameID)
		}
	}
	if err := s.write(ctx, game); err != nil {
		_ = s.client.Del(ctx, s.activeKey(game.PlayerID)).Err()
		return err
	}
	return nil
}

func (s *GameStore) Get(ctx context.Context, gameID string) (domain.Game, error) {
	raw, err := s.client.Get(ctx, s.gameKey(gameID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Game{}, domain.ErrGameNotFound
		}
		return domain.Game{}, err
	}
	var game domain.Game
	if err := json.Unmarshal(raw, &game); err != nil {
		return domain.Game{}, fmt.Errorf("decode game %s: %w", gameID, err)
	}
	return game, nil
}

func (s *GameStore) Save(ctx context.Context, game domain.Game) error {
	exists, err := s.client.Exists(ctx, s.gameKey(game.ID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return domain.ErrGameNotFound
	}
	if err := s.write(ctx, game); err != nil {
		return err
	}
	if game.Finished() {
		active, err := s.client.Get(ctx, s.activeKey(game.PlayerID)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if active == game.ID {
			return s.client.Del(ctx, s.activeKey(game.PlayerID)).Err()
		}
	}
	return nil
}

func (s *GameStore) ActiveGame(ctx context.Context, playerID string) (domain.Game, bool, error) {
	gameID, err := s.client.Get(ctx, s.activeKey(playerID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Game{}, false, nil
		}
		return domain.Game{}, false, err
	}
	game, err := s.Get(ctx, gameID)
	if err != nil {
		return domain.Game{}, false, err
	}
	return game, true, nil
}

func (s *GameStore) write(ctx context.Context, game domain.Game) error {
	raw, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", game.ID, err)
	}
	var ttl time.Duration
	if game.Finished() {
		ttl = s.ttl
	}
	return s.client.Set(ctx, s.gameKey(game.ID), raw, ttl).Err()
}

func (s *GameStore) gameKey(gameID string) string {
	return "game:" + gameID
}

func (s *GameStore) activeKey(playerID string) string {
	return "player:" + playerID + ":active"
}
