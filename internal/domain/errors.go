package domain

import "errors"

var (
	// ErrGameNotActive is returned when an action targets a game that already finished.
	ErrGameNotActive = errors.New("game is not active")
	// ErrGameInProgress is returned when a player asks for a new game while one is still running.
	ErrGameInProgress = errors.New("player already has a game in progress")
	// ErrInsufficientQuestions indicates the catalog cannot supply a question for every level.
	ErrInsufficientQuestions = errors.New("not enough questions to build a game")
	// ErrAlreadyUsed is returned when a lifeline is requested a second time.
	ErrAlreadyUsed = errors.New("help already used")
	// ErrUnknownHelpKind indicates an unsupported help identifier.
	ErrUnknownHelpKind = errors.New("unknown help kind")
	// ErrGameNotFound is returned when a game does not exist or belongs to another player.
	ErrGameNotFound = errors.New("game not found")
	// ErrInvalidIdentifier indicates an answer label outside a-d.
	ErrInvalidIdentifier = errors.New("invalid answer identifier")
	// ErrInvalidShuffle indicates an explicit shuffle that is not a bijection over the answer slots.
	ErrInvalidShuffle = errors.New("shuffle mapping is not a bijection")
	// ErrInvalidLadder indicates an empty or non-increasing prize table.
	ErrInvalidLadder = errors.New("prize ladder must be non-empty and strictly increasing")
)
