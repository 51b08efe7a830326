package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"quiz-ladder/internal/domain"
)

type questionRow struct {
	bun.BaseModel `bun:"table:questions"`

	ID      string `bun:"id,pk"`
	Level   int    `bun:"level,notnull"`
	Text    string `bun:"text,notnull"`
	Answer1 string `bun:"answer1,notnull"`
	Answer2 string `bun:"answer2,notnull"`
	Answer3 string `bun:"answer3,notnull"`
	Answer4 string `bun:"answer4,notnull"`
}

// SeedQuestions upserts the question bank. Existing IDs are overwritten.
func SeedQuestions(ctx context.Context, db *bun.DB, questions []domain.Question) (int, error) {
	if len(questions) == 0 {
		return 0, nil
	}
	rows := make([]questionRow, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, questionRow{
			ID:      q.ID,
			Level:   q.Level,
			Text:    q.Text,
			Answer1: q.Answers[0],
			Answer2: q.Answers[1],
			Answer3: q.Answers[2],
			Answer4: q.Answers[3],
		})
	}
	res, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("level = EXCLUDED.level").
		Set("text = EXCLUDED.text").
		Set("answer1 = EXCLUDED.answer1").
		Set("answer2 = EXCLUDED.answer2").
		Set("answer3 = EXCLUDED.answer3").
		Set("answer4 = EXCLUDED.answer4").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed questions: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
