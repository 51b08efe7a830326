package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"quiz-ladder/internal/domain"
)

// QuestionCatalog supplies one question per requested level.
type QuestionCatalog interface {
	QuestionsByLevel(ctx context.Context, levels []int) (map[int]domain.Question, error)
}

// GameRepository abstracts how games are stored (in-memory, Redis, etc).
// Create must reject a second active game for the same player with domain.ErrGameInProgress.
type GameRepository interface {
	Create(ctx context.Context, game domain.Game) error
	Get(ctx context.Context, gameID string) (domain.Game, error)
	Save(ctx context.Context, game domain.Game) error
	ActiveGame(ctx context.Context, playerID string) (domain.Game, bool, error)
}

// PlayerRepository owns player balances. CreditBalance must be an atomic increment.
type PlayerRepository interface {
	CreditBalance(ctx context.Context, playerID string, amount int64) error
	Balance(ctx context.Context, playerID string) (int64, error)
}

// GameService contains the game use cases exposed to controllers.
type GameService struct {
	engine  *Engine
	catalog QuestionCatalog
	games   GameRepository
	players PlayerRepository
	locks   *keyedMutex
	newID   func() string
}

func NewGameService(engine *Engine, catalog QuestionCatalog, games GameRepository, players PlayerRepository) *GameService {
	return &GameService{
		engine:  engine,
		catalog: catalog,
		games:   games,
		players: players,
		locks:   newKeyedMutex(),
		newID:   uuid.NewString,
	}
}

// WithIDGenerator is test-only for deterministic game IDs.
func (s *GameService) WithIDGenerator(newID func() string) *GameService {
	s.newID = newID
	return s
}

func (s *GameService) Engine() *Engine { return s.engine }

// CreateGame starts a new game unless the player still has one running.
// A running game whose time budget is spent is timed out first.
func (s *GameService) CreateGame(ctx context.Context, playerID string) (domain.Game, error) {
	unlock := s.locks.Lock("player:" + playerID)
	defer unlock()

	active, ok, err := s.games.ActiveGame(ctx, playerID)
	if err != nil {
		return domain.Game{}, err
	}
	if ok {
		if !s.expireStale(ctx, active) {
			return domain.Game{}, fmt.Errorf("%w: %s", domain.ErrGameInProgress, active.ID)
		}
	}

	questions, err := s.catalog.QuestionsByLevel(ctx, s.engine.Ladder().Levels())
	if err != nil {
		return domain.Game{}, err
	}
	game, err := s.engine.NewGame(s.newID(), playerID, questions)
	if err != nil {
		return domain.Game{}, err
	}
	if err := s.games.Create(ctx, *game); err != nil {
		return domain.Game{}, err
	}
	log.Printf("game %s created for player %s", game.ID, playerID)
	return game.Clone(), nil
}

// expireStale times out an abandoned game under its own lock and reports whether it is finished now.
func (s *GameService) expireStale(ctx context.Context, active domain.Game) bool {
	unlock := s.locks.Lock(active.ID)
	defer unlock()

	game, err := s.games.Get(ctx, active.ID)
	if err != nil {
		log.Printf("reload game %s: %v", active.ID, err)
		return false
	}
	if game.Finished() {
		return true
	}
	if !s.engine.TimeOut(&game) {
		return false
	}
	if err := s.games.Save(ctx, game); err != nil {
		log.Printf("save timed out game %s: %v", game.ID, err)
		return false
	}
	log.Printf("game %s timed out before a new game was requested", game.ID)
	return true
}

// Answer submits the player's choice for the current round. The returned bool is
// true only when the answer was accepted and correct.
func (s *GameService) Answer(ctx context.Context, playerID, gameID, letter string) (domain.Game, bool, error) {
	id := domain.Identifier(strings.ToLower(strings.TrimSpace(letter)))
	var correct bool
	game, err := s.mutate(ctx, playerID, gameID, func(g *domain.Game) error {
		var err error
		correct, err = s.engine.Answer(g, id)
		return err
	})
	return game, correct, err
}

// TakeMoney banks the guaranteed prize and ends the game.
func (s *GameService) TakeMoney(ctx context.Context, playerID, gameID string) (domain.Game, error) {
	return s.mutate(ctx, playerID, gameID, func(g *domain.Game) error {
		_, err := s.engine.TakeMoney(g)
		return err
	})
}

// Help issues a lifeline for the current round.
func (s *GameService) Help(ctx context.Context, playerID, gameID, kind string) (domain.Game, error) {
	helpKind, err := domain.ParseHelpKind(kind)
	if err != nil {
		return domain.Game{}, err
	}
	return s.mutate(ctx, playerID, gameID, func(g *domain.Game) error {
		return s.engine.UseHelp(g, helpKind)
	})
}

// Game returns a read-only snapshot of one of the player's games.
func (s *GameService) Game(ctx context.Context, playerID, gameID string) (domain.Game, error) {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return domain.Game{}, err
	}
	if game.PlayerID != playerID {
		return domain.Game{}, domain.ErrGameNotFound
	}
	return game, nil
}

// ActiveGame returns the player's running game, if any.
func (s *GameService) ActiveGame(ctx context.Context, playerID string) (domain.Game, bool, error) {
	return s.games.ActiveGame(ctx, playerID)
}

func (s *GameService) Balance(ctx context.Context, playerID string) (int64, error) {
	return s.players.Balance(ctx, playerID)
}

// mutate runs fn against the stored game under the game's lock, persists the result and
// settles the balance when fn finished the game.
func (s *GameService) mutate(ctx context.Context, playerID, gameID string, fn func(g *domain.Game) error) (domain.Game, error) {
	unlock := s.locks.Lock(gameID)
	defer unlock()

	game, err := s.Game(ctx, playerID, gameID)
	if err != nil {
		return domain.Game{}, err
	}
	wasFinished := game.Finished()

	if err := fn(&game); err != nil {
		return domain.Game{}, err
	}
	if err := s.games.Save(ctx, game); err != nil {
		return domain.Game{}, fmt.Errorf("save game %s: %w", game.ID, err)
	}

	if !wasFinished && game.Finished() {
		log.Printf("game %s finished for player %s: status=%s prize=%d", game.ID, playerID, game.Status(), game.Prize)
		if game.Prize > 0 {
			if err := s.players.CreditBalance(ctx, playerID, game.Prize); err != nil {
				return domain.Game{}, fmt.Errorf("credit player %s: %w", playerID, err)
			}
		}
	}
	return game.Clone(), nil
}

// keyedMutex hands out one mutex per key and drops it when no one holds it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &keyedLock{}
		k.locks[key] = lock
	}
	lock.refs++
	k.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		k.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
