package app

import (
	"fmt"

	"quiz-ladder/internal/domain"
)

// Shuffler assigns the four answer slots of a question to the labels a-d.
type Shuffler struct {
	rnd Rand
}

func NewShuffler(rnd Rand) *Shuffler {
	return &Shuffler{rnd: rnd}
}

// Shuffle draws a uniformly random bijection between labels and slots.
func (s *Shuffler) Shuffle(q domain.Question) domain.GameQuestion {
	var shuffle [domain.SlotCount]int
	for i, p := range s.rnd.Perm(domain.SlotCount) {
		shuffle[i] = p + 1
	}
	return domain.GameQuestion{Question: q, Shuffle: shuffle}
}

// WithMapping builds a round from an explicit label->slot assignment.
func WithMapping(q domain.Question, mapping map[domain.Identifier]int) (domain.GameQuestion, error) {
	if len(mapping) != domain.SlotCount {
		return domain.GameQuestion{}, fmt.Errorf("%w: %d labels", domain.ErrInvalidShuffle, len(mapping))
	}
	var shuffle [domain.SlotCount]int
	for i, id := range domain.Identifiers {
		slot, ok := mapping[id]
		if !ok {
			return domain.GameQuestion{}, fmt.Errorf("%w: missing %s", domain.ErrInvalidShuffle, id)
		}
		shuffle[i] = slot
	}
	if !domain.ValidShuffle(shuffle) {
		return domain.GameQuestion{}, domain.ErrInvalidShuffle
	}
	return domain.GameQuestion{Question: q, Shuffle: shuffle}, nil
}
