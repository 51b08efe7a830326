package app

import (
	"fmt"
	"sort"

	"quiz-ladder/internal/domain"
)

const (
	// DefaultFriendAccuracy is the chance, in percent, that a friend names the right answer.
	DefaultFriendAccuracy = 80

	audienceBaseWeight   = 45
	audienceCorrectBonus = 40
	audienceTotal        = 100
)

var friendNames = []string{
	"Alex", "Maria", "Sam", "Olga", "Dmitry", "Kate", "Jordan", "Ivan",
}

// HelpGenerator produces lifeline payloads for a single round.
type HelpGenerator struct {
	rnd            Rand
	friendAccuracy int
}

// NewHelpGenerator clamps friendAccuracy into [0, 100].
func NewHelpGenerator(rnd Rand, friendAccuracy int) *HelpGenerator {
	if friendAccuracy < 0 {
		friendAccuracy = 0
	}
	if friendAccuracy > 100 {
		friendAccuracy = 100
	}
	return &HelpGenerator{rnd: rnd, friendAccuracy: friendAccuracy}
}

// Audience returns vote shares for all four labels. Shares sum to 100 and each lies in [1, 99].
func (h *HelpGenerator) Audience(correct domain.Identifier) map[domain.Identifier]int {
	var weights [domain.SlotCount]int
	total := 0
	for i, id := range domain.Identifiers {
		weights[i] = 1 + h.rnd.Intn(audienceBaseWeight)
		if id == correct {
			weights[i] += audienceCorrectBonus
		}
		total += weights[i]
	}

	// Every label keeps one vote; the rest is split by largest remainder.
	spare := audienceTotal - domain.SlotCount
	shares := make(map[domain.Identifier]int, domain.SlotCount)
	remainders := make([]int, domain.SlotCount)
	given := 0
	for i, id := range domain.Identifiers {
		part := spare * weights[i]
		shares[id] = 1 + part/total
		remainders[i] = part % total
		given += part / total
	}

	order := []int{0, 1, 2, 3}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for _, i := range order[:spare-given] {
		shares[domain.Identifiers[i]]++
	}
	return shares
}

// FiftyFifty keeps the correct label and one random wrong label, in display order.
func (h *HelpGenerator) FiftyFifty(correct domain.Identifier) []domain.Identifier {
	wrong := wrongIdentifiers(correct)
	keep := wrong[h.rnd.Intn(len(wrong))]
	for _, id := range domain.Identifiers {
		if id == keep {
			return []domain.Identifier{keep, correct}
		}
		if id == correct {
			return []domain.Identifier{correct, keep}
		}
	}
	return []domain.Identifier{correct, keep}
}

// FriendCall names one label in upper case. The friend is right with the configured accuracy.
func (h *HelpGenerator) FriendCall(correct domain.Identifier) string {
	suggestion := correct
	if h.rnd.Intn(100) >= h.friendAccuracy {
		wrong := wrongIdentifiers(correct)
		suggestion = wrong[h.rnd.Intn(len(wrong))]
	}
	friend := friendNames[h.rnd.Intn(len(friendNames))]
	return fmt.Sprintf("%s thinks the answer is %s", friend, suggestion.Upper())
}

func wrongIdentifiers(correct domain.Identifier) []domain.Identifier {
	wrong := make([]domain.Identifier, 0, domain.SlotCount-1)
	for _, id := range domain.Identifiers {
		if id != correct {
			wrong = append(wrong, id)
		}
	}
	return wrong
}
