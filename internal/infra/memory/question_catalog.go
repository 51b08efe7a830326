package memory

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quiz-ladder/internal/domain"
)

// LevelLoader fetches the question pool of one level from a backing store (e.g., Postgres).
type LevelLoader interface {
	LoadLevel(ctx context.Context, level int) ([]domain.Question, error)
}

// QuestionCatalog caches level pools with TTL to avoid repeated DB hits and draws one
// random question per requested level.
type QuestionCatalog struct {
	loader LevelLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand

	mu    sync.RWMutex
	cache map[int]cachedLevel
}

type cachedLevel struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewQuestionCatalog(loader LevelLoader, ttl time.Duration) *QuestionCatalog {
	return &QuestionCatalog{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[int]cachedLevel),
	}
}

// QuestionsByLevel returns one question for every level or domain.ErrInsufficientQuestions.
func (c *QuestionCatalog) QuestionsByLevel(ctx context.Context, levels []int) (map[int]domain.Question, error) {
	picked := make(map[int]domain.Question, len(levels))
	for _, level := range levels {
		pool, err := c.level(ctx, level)
		if err != nil {
			return nil, err
		}
		if len(pool) == 0 {
			return nil, fmt.Errorf("%w: level %d", domain.ErrInsufficientQuestions, level)
		}
		picked[level] = pool[c.intn(len(pool))]
	}
	return picked, nil
}

func (c *QuestionCatalog) level(ctx context.Context, level int) ([]domain.Question, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[level]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.questions, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(strconv.Itoa(level), func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[level]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.questions, nil
		}
		c.mu.RUnlock()

		questions, err := c.loader.LoadLevel(ctx, level)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[level] = cachedLevel{
			questions: questions,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *QuestionCatalog) intn(n int) int {
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.rnd.Intn(n)
}

func (c *QuestionCatalog) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

// StaticQuestionLoader is a simple loader backed by an in-memory slice (useful for tests/demos).
type StaticQuestionLoader struct {
	byLevel map[int][]domain.Question
}

func NewStaticQuestionLoader(questions []domain.Question) *StaticQuestionLoader {
	byLevel := make(map[int][]domain.Question)
	for _, q := range questions {
		byLevel[q.Level] = append(byLevel[q.Level], q)
	}
	return &StaticQuestionLoader{byLevel: byLevel}
}

func (l *StaticQuestionLoader) LoadLevel(_ context.Context, level int) ([]domain.Question, error) {
	return l.byLevel[level], nil
}
