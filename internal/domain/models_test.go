package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGameQuestion() GameQuestion {
	return GameQuestion{
		Question: Question{
			ID:      "q1",
			Level:   3,
			Text:    "Which planet is known as the Red Planet?",
			Answers: [SlotCount]string{"Mars", "Venus", "Jupiter", "Mercury"},
		},
		Shuffle: [SlotCount]int{2, 1, 4, 3},
	}
}

func TestGameQuestionVariants(t *testing.T) {
	gq := sampleGameQuestion()

	assert.Equal(t, map[Identifier]string{
		IdentifierA: "Venus",
		IdentifierB: "Mars",
		IdentifierC: "Mercury",
		IdentifierD: "Jupiter",
	}, gq.Variants())
}

func TestGameQuestionCorrectIdentifier(t *testing.T) {
	gq := sampleGameQuestion()

	assert.Equal(t, IdentifierB, gq.CorrectIdentifier())
	assert.Equal(t, gq.CorrectIdentifier(), gq.CorrectIdentifier())
	assert.True(t, gq.IsCorrect(IdentifierB))
	assert.False(t, gq.IsCorrect(IdentifierA))
	assert.False(t, gq.IsCorrect(""))
}

func TestGameQuestionDelegatesToQuestion(t *testing.T) {
	gq := sampleGameQuestion()

	assert.Equal(t, gq.Question.Text, gq.Text())
	assert.Equal(t, gq.Question.Level, gq.Level())
}

func TestHelpResultsStartEmpty(t *testing.T) {
	gq := sampleGameQuestion()

	for _, kind := range []HelpKind{HelpAudience, HelpFiftyFifty, HelpFriendCall} {
		assert.False(t, gq.Help.Has(kind), "kind %s", kind)
	}
}

func TestValidShuffle(t *testing.T) {
	assert.True(t, ValidShuffle([SlotCount]int{1, 2, 3, 4}))
	assert.True(t, ValidShuffle([SlotCount]int{4, 3, 1, 2}))
	assert.False(t, ValidShuffle([SlotCount]int{1, 1, 3, 4}))
	assert.False(t, ValidShuffle([SlotCount]int{0, 2, 3, 4}))
	assert.False(t, ValidShuffle([SlotCount]int{1, 2, 3, 5}))
}

func TestParseIdentifier(t *testing.T) {
	id, err := ParseIdentifier(" C ")
	require.NoError(t, err)
	assert.Equal(t, IdentifierC, id)
	assert.Equal(t, "C", id.Upper())

	_, err = ParseIdentifier("e")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestParseHelpKind(t *testing.T) {
	kind, err := ParseHelpKind("fifty_fifty")
	require.NoError(t, err)
	assert.Equal(t, HelpFiftyFifty, kind)

	_, err = ParseHelpKind("ask_the_host")
	assert.ErrorIs(t, err, ErrUnknownHelpKind)
}

func TestGameCloneDoesNotAlias(t *testing.T) {
	finished := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	gq := sampleGameQuestion()
	gq.Help.Audience = map[Identifier]int{IdentifierA: 10, IdentifierB: 70, IdentifierC: 10, IdentifierD: 10}
	gq.Help.FiftyFifty = []Identifier{IdentifierA, IdentifierB}
	game := Game{ID: "g1", Questions: []GameQuestion{gq}, FinishedAt: &finished}

	clone := game.Clone()
	clone.Questions[0].Help.Audience[IdentifierA] = 99
	clone.Questions[0].Help.FiftyFifty[0] = IdentifierD
	*clone.FinishedAt = finished.Add(time.Hour)

	assert.Equal(t, 10, game.Questions[0].Help.Audience[IdentifierA])
	assert.Equal(t, IdentifierA, game.Questions[0].Help.FiftyFifty[0])
	assert.Equal(t, finished, *game.FinishedAt)
}

func TestGameHelpFlags(t *testing.T) {
	var game Game
	game.MarkHelpUsed(HelpFriendCall)

	assert.True(t, game.HelpUsed(HelpFriendCall))
	assert.False(t, game.HelpUsed(HelpAudience))
	assert.False(t, game.HelpUsed(HelpFiftyFifty))
}

func TestGameCurrentAndPreviousQuestion(t *testing.T) {
	first := sampleGameQuestion()
	second := sampleGameQuestion()
	second.Question.ID = "q2"
	game := Game{Questions: []GameQuestion{first, second}}

	require.NotNil(t, game.CurrentGameQuestion())
	assert.Equal(t, "q1", game.CurrentGameQuestion().Question.ID)
	assert.Nil(t, game.PreviousGameQuestion())
	assert.Equal(t, -1, game.PreviousLevel())

	game.CurrentLevel = 1
	assert.Equal(t, "q2", game.CurrentGameQuestion().Question.ID)
	assert.Equal(t, "q1", game.PreviousGameQuestion().Question.ID)

	game.CurrentLevel = 2
	assert.Nil(t, game.CurrentGameQuestion())
	assert.Equal(t, "q2", game.PreviousGameQuestion().Question.ID)
}
