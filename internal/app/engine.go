package app

import (
	"fmt"
	"time"

	"quiz-ladder/internal/domain"
)

// DefaultTimeLimit is the wall-clock budget of a whole game.
const DefaultTimeLimit = 35 * time.Minute

// Engine enforces the game rules. It holds no per-game state; callers serialize
// moves on a single game.
type Engine struct {
	ladder    domain.PrizeLadder
	timeLimit time.Duration
	shuffler  *Shuffler
	help      *HelpGenerator
	now       func() time.Time
}

func NewEngine(ladder domain.PrizeLadder, timeLimit time.Duration, shuffler *Shuffler, help *HelpGenerator) *Engine {
	return NewEngineWithClock(ladder, timeLimit, shuffler, help, time.Now)
}

// NewEngineWithClock allows deterministic timestamps in tests.
func NewEngineWithClock(ladder domain.PrizeLadder, timeLimit time.Duration, shuffler *Shuffler, help *HelpGenerator, now func() time.Time) *Engine {
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	return &Engine{
		ladder:    ladder,
		timeLimit: timeLimit,
		shuffler:  shuffler,
		help:      help,
		now:       now,
	}
}

func (e *Engine) Ladder() domain.PrizeLadder { return e.ladder }

func (e *Engine) TimeLimit() time.Duration { return e.timeLimit }

// NewGame assembles a fresh game from one question per ladder level.
func (e *Engine) NewGame(id, playerID string, questions map[int]domain.Question) (*domain.Game, error) {
	levels := e.ladder.Levels()
	rounds := make([]domain.GameQuestion, 0, len(levels))
	for _, level := range levels {
		q, ok := questions[level]
		if !ok {
			return nil, fmt.Errorf("%w: level %d", domain.ErrInsufficientQuestions, level)
		}
		q.Level = level
		rounds = append(rounds, e.shuffler.Shuffle(q))
	}
	return &domain.Game{
		ID:        id,
		PlayerID:  playerID,
		Questions: rounds,
		CreatedAt: e.now(),
	}, nil
}

// Answer applies the player's choice to the current round and reports whether it was
// accepted as correct. A late answer times the game out without being evaluated.
func (e *Engine) Answer(g *domain.Game, id domain.Identifier) (bool, error) {
	if g.Finished() {
		return false, domain.ErrGameNotActive
	}
	now := e.now()
	if e.expired(g, now) {
		e.finish(g, now, true)
		return false, nil
	}

	round := g.CurrentGameQuestion()
	if round == nil {
		return false, domain.ErrGameNotActive
	}
	if !round.IsCorrect(id) {
		e.finish(g, now, true)
		return false, nil
	}

	g.CurrentLevel++
	if g.CurrentLevel > e.ladder.MaxLevel() {
		g.Prize = e.ladder.PrizeAt(e.ladder.MaxLevel() + 1)
		e.finish(g, now, false)
	}
	return true, nil
}

// TakeMoney banks the prize for the levels already cleared.
func (e *Engine) TakeMoney(g *domain.Game) (int64, error) {
	if g.Finished() {
		return 0, domain.ErrGameNotActive
	}
	g.Prize = e.ladder.PrizeAt(g.CurrentLevel)
	e.finish(g, e.now(), false)
	return g.Prize, nil
}

// UseHelp issues a lifeline for the current round.
func (e *Engine) UseHelp(g *domain.Game, kind domain.HelpKind) error {
	if _, err := domain.ParseHelpKind(string(kind)); err != nil {
		return err
	}
	if g.Finished() {
		return domain.ErrGameNotActive
	}
	if g.HelpUsed(kind) {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyUsed, kind)
	}
	round := g.CurrentGameQuestion()
	if round == nil {
		return domain.ErrGameNotActive
	}

	correct := round.CorrectIdentifier()
	switch kind {
	case domain.HelpAudience:
		round.Help.Audience = e.help.Audience(correct)
	case domain.HelpFiftyFifty:
		round.Help.FiftyFifty = e.help.FiftyFifty(correct)
	case domain.HelpFriendCall:
		round.Help.FriendCall = e.help.FriendCall(correct)
	}
	g.MarkHelpUsed(kind)
	return nil
}

// TimeOut finishes a running game whose budget is spent and reports whether it did.
func (e *Engine) TimeOut(g *domain.Game) bool {
	if g.Finished() {
		return false
	}
	now := e.now()
	if !e.expired(g, now) {
		return false
	}
	e.finish(g, now, true)
	return true
}

// Status is the frozen status of g.
func (e *Engine) Status(g *domain.Game) domain.Status {
	return g.Status()
}

func (e *Engine) CurrentGameQuestion(g *domain.Game) *domain.GameQuestion {
	return g.CurrentGameQuestion()
}

func (e *Engine) PreviousGameQuestion(g *domain.Game) *domain.GameQuestion {
	return g.PreviousGameQuestion()
}

func (e *Engine) expired(g *domain.Game, now time.Time) bool {
	return now.Sub(g.CreatedAt) > e.timeLimit
}

func (e *Engine) finish(g *domain.Game, now time.Time, failed bool) {
	g.IsFailed = failed
	g.FinishedAt = &now
	g.Result = domain.DeriveStatus(g, e.timeLimit, e.ladder.MaxLevel())
}
