package http

import (
	"time"

	"quiz-ladder/internal/domain"
)

type questionView struct {
	Level    int                          `json:"level"`
	Text     string                       `json:"text"`
	Variants map[domain.Identifier]string `json:"variants"`
	Help     domain.HelpResults           `json:"help"`
}

// gameView is what a player sees. The correct identifier of the current round is only
// revealed once the game is over.
type gameView struct {
	ID               string        `json:"id"`
	Status           domain.Status `json:"status"`
	Level            int           `json:"level"`
	Prize            int64         `json:"prize"`
	Balance          int64         `json:"balance"`
	CreatedAt        time.Time     `json:"createdAt"`
	FinishedAt       *time.Time    `json:"finishedAt,omitempty"`
	Question         *questionView `json:"question,omitempty"`
	AudienceHelpUsed bool          `json:"audienceHelpUsed"`
	FiftyFiftyUsed   bool          `json:"fiftyFiftyUsed"`
	FriendCallUsed   bool          `json:"friendCallUsed"`
	PreviousCorrect  string        `json:"previousCorrect,omitempty"`
	CorrectAnswer    string        `json:"correctAnswer,omitempty"`
	AnswerCorrect    *bool         `json:"answerCorrect,omitempty"`
}

func newGameView(g *domain.Game, balance int64) gameView {
	view := gameView{
		ID:               g.ID,
		Status:           g.Status(),
		Level:            g.CurrentLevel,
		Prize:            g.Prize,
		Balance:          balance,
		CreatedAt:        g.CreatedAt,
		FinishedAt:       g.FinishedAt,
		AudienceHelpUsed: g.AudienceHelpUsed,
		FiftyFiftyUsed:   g.FiftyFiftyUsed,
		FriendCallUsed:   g.FriendCallUsed,
	}
	if current := g.CurrentGameQuestion(); current != nil {
		view.Question = &questionView{
			Level:    current.Level(),
			Text:     current.Text(),
			Variants: current.Variants(),
			Help:     current.Help,
		}
		if g.Finished() {
			view.CorrectAnswer = string(current.CorrectIdentifier())
		}
	}
	if previous := g.PreviousGameQuestion(); previous != nil {
		view.PreviousCorrect = string(previous.CorrectIdentifier())
	}
	return view
}
