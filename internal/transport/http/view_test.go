package http

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"quiz-ladder/internal/domain"
)

func TestGameViewHidesAnswerUntilFinished(t *testing.T) {
	q := domain.Question{ID: "q0", Text: "2+2?", Answers: [4]string{"4", "3", "5", "22"}}
	game := domain.Game{
		ID:        "g1",
		Questions: []domain.GameQuestion{{Question: q, Shuffle: [4]int{2, 1, 3, 4}}},
		CreatedAt: time.Now(),
	}

	view := newGameView(&game, 0)
	if view.CorrectAnswer != "" {
		t.Fatalf("expected hidden answer, got %q", view.CorrectAnswer)
	}
	if view.Question.Variants[domain.IdentifierB] != "4" {
		t.Fatalf("expected variant b to show the right answer, got %v", view.Question.Variants)
	}

	finished := game.CreatedAt.Add(time.Minute)
	game.FinishedAt = &finished
	game.IsFailed = true
	game.Result = domain.StatusFail
	view = newGameView(&game, 0)
	if view.CorrectAnswer != "b" || view.Status != domain.StatusFail {
		t.Fatalf("expected revealed answer b and fail, got %q %s", view.CorrectAnswer, view.Status)
	}
}

func TestErrorCode(t *testing.T) {
	cases := map[error]string{
		fmt.Errorf("wrap: %w", domain.ErrAlreadyUsed): "already_used",
		domain.ErrInsufficientQuestions:               "insufficient_questions",
		domain.ErrInvalidIdentifier:                   "invalid_identifier",
		errors.New("boom"):                            "internal",
	}
	for err, want := range cases {
		if got := errorCode(err); got != want {
			t.Fatalf("errorCode(%v) = %s, want %s", err, got, want)
		}
	}
}
