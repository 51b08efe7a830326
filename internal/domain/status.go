package domain

import "time"

// Status is the externally visible game state.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusFail       Status = "fail"
	StatusTimeout    Status = "timeout"
	StatusMoney      Status = "money"
)

// Terminal reports whether no further moves are allowed in this state.
func (s Status) Terminal() bool {
	return s != StatusInProgress
}

// DeriveStatus computes the status from game fields. Elapsed time is measured at
// FinishedAt, so a finished game classifies the same way on every read.
func DeriveStatus(g *Game, timeLimit time.Duration, maxLevel int) Status {
	if g.FinishedAt == nil {
		return StatusInProgress
	}
	if g.IsFailed && g.FinishedAt.Sub(g.CreatedAt) > timeLimit {
		return StatusTimeout
	}
	if g.IsFailed {
		return StatusFail
	}
	if g.CurrentLevel > maxLevel {
		return StatusWon
	}
	return StatusMoney
}
