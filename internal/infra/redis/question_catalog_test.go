package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quiz-ladder/internal/domain"
	"quiz-ladder/internal/infra/memory"
)

func TestQuestionCatalogCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{LevelLoader: memory.NewStaticQuestionLoader(sampleQuestions(2))}
	catalog := NewQuestionCatalog(newClient(mr), loader, time.Minute)

	picked, err := catalog.QuestionsByLevel(context.Background(), []int{0, 1})
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected loader called once per level, got %d", loader.calls)
	}
	if picked[1].Level != 1 {
		t.Fatalf("expected level 1 question, got %+v", picked[1])
	}
	if !mr.Exists("catalog:level:0") {
		t.Fatalf("expected level hash to be cached")
	}

	// Second call should hit cache, loader not incremented.
	again, err := catalog.QuestionsByLevel(context.Background(), []int{0, 1})
	if err != nil {
		t.Fatalf("questions 2: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if again[0].Answers[0] != "right" {
		t.Fatalf("expected answers to survive the cache, got %+v", again[0])
	}
}

func TestQuestionCatalogMissingLevel(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	catalog := NewQuestionCatalog(newClient(mr), memory.NewStaticQuestionLoader(sampleQuestions(1)), time.Minute)

	_, err = catalog.QuestionsByLevel(context.Background(), []int{0, 1})
	if !errors.Is(err, domain.ErrInsufficientQuestions) {
		t.Fatalf("expected insufficient questions, got %v", err)
	}
}

type countingLoader struct {
	memory.LevelLoader
	calls int
}

func (l *countingLoader) LoadLevel(ctx context.Context, level int) ([]domain.Question, error) {
	l.calls++
	return l.LevelLoader.LoadLevel(ctx, level)
}

func sampleQuestions(levels int) []domain.Question {
	var questions []domain.Question
	for level := 0; level < levels; level++ {
		for i := 0; i < 2; i++ {
			questions = append(questions, domain.Question{
				ID:      fmt.Sprintf("q%d-%d", level, i),
				Level:   level,
				Text:    "What is 2 + 2?",
				Answers: [domain.SlotCount]string{"right", "3", "5", "22"},
			})
		}
	}
	return questions
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
