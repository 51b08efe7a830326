package domain

import (
	"strings"
	"time"
)

// SlotCount is the number of answer slots on every question.
const SlotCount = 4

// CorrectSlot is the slot that holds the right answer on a Question.
const CorrectSlot = 1

// Identifier is the label a player picks when answering (a-d).
type Identifier string

const (
	IdentifierA Identifier = "a"
	IdentifierB Identifier = "b"
	IdentifierC Identifier = "c"
	IdentifierD Identifier = "d"
)

// Identifiers lists the presentation labels in display order.
var Identifiers = [SlotCount]Identifier{IdentifierA, IdentifierB, IdentifierC, IdentifierD}

// ParseIdentifier accepts a label in either case.
func ParseIdentifier(raw string) (Identifier, error) {
	id := Identifier(strings.ToLower(strings.TrimSpace(raw)))
	if id.index() < 0 {
		return "", ErrInvalidIdentifier
	}
	return id, nil
}

func (id Identifier) index() int {
	for i, candidate := range Identifiers {
		if candidate == id {
			return i
		}
	}
	return -1
}

// Upper renders the label the way it is shown to players.
func (id Identifier) Upper() string {
	return strings.ToUpper(string(id))
}

// Question is a catalog item. Answers[0] is slot 1, the correct one.
type Question struct {
	ID      string            `json:"id"`
	Level   int               `json:"level"`
	Text    string            `json:"text"`
	Answers [SlotCount]string `json:"answers"`
}

// Answer returns the text stored in a 1-based slot.
func (q Question) Answer(slot int) string {
	if slot < 1 || slot > SlotCount {
		return ""
	}
	return q.Answers[slot-1]
}

// HelpKind names one of the three lifelines.
type HelpKind string

const (
	HelpAudience   HelpKind = "audience_help"
	HelpFiftyFifty HelpKind = "fifty_fifty"
	HelpFriendCall HelpKind = "friend_call"
)

// ParseHelpKind validates a lifeline name.
func ParseHelpKind(raw string) (HelpKind, error) {
	switch kind := HelpKind(raw); kind {
	case HelpAudience, HelpFiftyFifty, HelpFriendCall:
		return kind, nil
	}
	return "", ErrUnknownHelpKind
}

// HelpResults holds lifeline payloads issued for a single round.
type HelpResults struct {
	Audience   map[Identifier]int `json:"audience_help,omitempty"`
	FiftyFifty []Identifier       `json:"fifty_fifty,omitempty"`
	FriendCall string             `json:"friend_call,omitempty"`
}

// Has reports whether a payload of the given kind was stored.
func (h HelpResults) Has(kind HelpKind) bool {
	switch kind {
	case HelpAudience:
		return h.Audience != nil
	case HelpFiftyFifty:
		return h.FiftyFifty != nil
	case HelpFriendCall:
		return h.FriendCall != ""
	}
	return false
}

// GameQuestion is one round of a game: a question plus its shuffled presentation.
// Shuffle[i] is the slot shown under Identifiers[i].
type GameQuestion struct {
	Question Question       `json:"question"`
	Shuffle  [SlotCount]int `json:"shuffle"`
	Help     HelpResults    `json:"help"`
}

func (gq *GameQuestion) Text() string { return gq.Question.Text }

func (gq *GameQuestion) Level() int { return gq.Question.Level }

// Variants maps every identifier to the answer text it shows.
func (gq *GameQuestion) Variants() map[Identifier]string {
	variants := make(map[Identifier]string, SlotCount)
	for i, id := range Identifiers {
		variants[id] = gq.Question.Answer(gq.Shuffle[i])
	}
	return variants
}

// CorrectIdentifier returns the label that currently holds the correct slot.
func (gq *GameQuestion) CorrectIdentifier() Identifier {
	for i, slot := range gq.Shuffle {
		if slot == CorrectSlot {
			return Identifiers[i]
		}
	}
	return ""
}

// IsCorrect reports whether id points at the correct slot.
func (gq *GameQuestion) IsCorrect(id Identifier) bool {
	return id != "" && id == gq.CorrectIdentifier()
}

// ValidShuffle reports whether the mapping covers every slot exactly once.
func ValidShuffle(shuffle [SlotCount]int) bool {
	var seen [SlotCount + 1]bool
	for _, slot := range shuffle {
		if slot < 1 || slot > SlotCount || seen[slot] {
			return false
		}
		seen[slot] = true
	}
	return true
}

// Game is the aggregate root of a single play-through.
type Game struct {
	ID               string         `json:"id"`
	PlayerID         string         `json:"playerId"`
	Questions        []GameQuestion `json:"questions"`
	CurrentLevel     int            `json:"currentLevel"`
	CreatedAt        time.Time      `json:"createdAt"`
	FinishedAt       *time.Time     `json:"finishedAt,omitempty"`
	IsFailed         bool           `json:"isFailed"`
	Prize            int64          `json:"prize"`
	AudienceHelpUsed bool           `json:"audienceHelpUsed"`
	FiftyFiftyUsed   bool           `json:"fiftyFiftyUsed"`
	FriendCallUsed   bool           `json:"friendCallUsed"`
	// Result is the terminal status frozen when the game finished.
	Result Status `json:"result,omitempty"`
}

// Finished reports whether the game reached a terminal state.
func (g *Game) Finished() bool {
	return g.FinishedAt != nil
}

// Status returns the frozen terminal status, or in_progress while running.
func (g *Game) Status() Status {
	if !g.Finished() {
		return StatusInProgress
	}
	return g.Result
}

// HelpUsed reports the lifeline flag for kind.
func (g *Game) HelpUsed(kind HelpKind) bool {
	switch kind {
	case HelpAudience:
		return g.AudienceHelpUsed
	case HelpFiftyFifty:
		return g.FiftyFiftyUsed
	case HelpFriendCall:
		return g.FriendCallUsed
	}
	return false
}

// MarkHelpUsed sets the lifeline flag for kind.
func (g *Game) MarkHelpUsed(kind HelpKind) {
	switch kind {
	case HelpAudience:
		g.AudienceHelpUsed = true
	case HelpFiftyFifty:
		g.FiftyFiftyUsed = true
	case HelpFriendCall:
		g.FriendCallUsed = true
	}
}

// Clone returns a deep copy so stored snapshots never alias caller state.
func (g Game) Clone() Game {
	out := g
	if g.FinishedAt != nil {
		finished := *g.FinishedAt
		out.FinishedAt = &finished
	}
	out.Questions = make([]GameQuestion, len(g.Questions))
	for i, gq := range g.Questions {
		out.Questions[i] = gq
		out.Questions[i].Help = gq.Help.clone()
	}
	return out
}

func (h HelpResults) clone() HelpResults {
	out := HelpResults{FriendCall: h.FriendCall}
	if h.Audience != nil {
		out.Audience = make(map[Identifier]int, len(h.Audience))
		for k, v := range h.Audience {
			out.Audience[k] = v
		}
	}
	if h.FiftyFifty != nil {
		out.FiftyFifty = append([]Identifier(nil), h.FiftyFifty...)
	}
	return out
}

// CurrentGameQuestion returns the round at the current level, or nil once the ladder is exhausted.
func (g *Game) CurrentGameQuestion() *GameQuestion {
	return g.questionAt(g.CurrentLevel)
}

// PreviousGameQuestion returns the last answered round, or nil before any progress.
func (g *Game) PreviousGameQuestion() *GameQuestion {
	return g.questionAt(g.PreviousLevel())
}

// PreviousLevel is the level answered last; -1 before the first answer.
func (g *Game) PreviousLevel() int {
	return g.CurrentLevel - 1
}

func (g *Game) questionAt(level int) *GameQuestion {
	if level < 0 || level >= len(g.Questions) {
		return nil
	}
	return &g.Questions[level]
}
