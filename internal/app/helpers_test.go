package app

import (
	"fmt"
	"time"

	"quiz-ladder/internal/domain"
)

// fixedRand replays the given values in a loop.
type fixedRand struct {
	ints  []int
	perms [][]int
	i, p  int
}

func (r *fixedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.i%len(r.ints)]
	r.i++
	return v % n
}

func (r *fixedRand) Perm(n int) []int {
	if len(r.perms) == 0 {
		perm := make([]int, n)
		for i := range perm {
			perm[i] = i
		}
		return perm
	}
	v := r.perms[r.p%len(r.perms)]
	r.p++
	return append([]int(nil), v...)
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func newTestEngine(clock *testClock, rnd Rand) *Engine {
	return NewEngineWithClock(domain.DefaultLadder(), DefaultTimeLimit, NewShuffler(rnd), NewHelpGenerator(rnd, DefaultFriendAccuracy), clock.Now)
}

func levelQuestions(levels int) map[int]domain.Question {
	questions := make(map[int]domain.Question, levels)
	for level := 0; level < levels; level++ {
		questions[level] = domain.Question{
			ID:      fmt.Sprintf("q%d", level),
			Level:   level,
			Text:    fmt.Sprintf("Question for level %d", level),
			Answers: [domain.SlotCount]string{"right", "wrong 1", "wrong 2", "wrong 3"},
		}
	}
	return questions
}

func wrongAnswer(round *domain.GameQuestion) domain.Identifier {
	for _, id := range domain.Identifiers {
		if id != round.CorrectIdentifier() {
			return id
		}
	}
	return ""
}
