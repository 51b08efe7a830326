package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-ladder/internal/domain"
)

func TestGameStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewGameStore()
	game := domain.Game{ID: "g1", PlayerID: "p1", CreatedAt: time.Now()}

	if err := store.Create(ctx, game); err != nil {
		t.Fatalf("create: %v", err)
	}
	active, ok, err := store.ActiveGame(ctx, "p1")
	if err != nil || !ok || active.ID != "g1" {
		t.Fatalf("expected active game g1, got %+v ok=%v err=%v", active, ok, err)
	}

	err = store.Create(ctx, domain.Game{ID: "g2", PlayerID: "p1"})
	if !errors.Is(err, domain.ErrGameInProgress) {
		t.Fatalf("expected game in progress, got %v", err)
	}

	finished := time.Now()
	game.FinishedAt = &finished
	game.Result = domain.StatusMoney
	if err := store.Save(ctx, game); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok, _ := store.ActiveGame(ctx, "p1"); ok {
		t.Fatalf("expected no active game after finish")
	}
	if err := store.Create(ctx, domain.Game{ID: "g2", PlayerID: "p1"}); err != nil {
		t.Fatalf("create second game: %v", err)
	}
}

func TestGameStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewGameStore()
	game := domain.Game{ID: "g1", PlayerID: "p1", Questions: []domain.GameQuestion{{}}}
	if err := store.Create(ctx, game); err != nil {
		t.Fatalf("create: %v", err)
	}

	loaded, err := store.Get(ctx, "g1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	loaded.CurrentLevel = 5
	loaded.Questions[0].Help.FriendCall = "Alex thinks the answer is A"

	again, _ := store.Get(ctx, "g1")
	if again.CurrentLevel != 0 || again.Questions[0].Help.FriendCall != "" {
		t.Fatalf("stored game was mutated through a snapshot: %+v", again)
	}
}

func TestGameStoreUnknownGame(t *testing.T) {
	store := NewGameStore()
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Save(context.Background(), domain.Game{ID: "missing"}); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("expected not found on save, got %v", err)
	}
}
