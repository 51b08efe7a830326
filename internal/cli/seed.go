package cli

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"quiz-ladder/internal/config"
	"quiz-ladder/internal/domain"
	"quiz-ladder/internal/infra/postgres"
)

//go:embed questions.json
var sampleQuestionBank []byte

// NewSeedCmd loads a JSON question bank into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load questions into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON question bank (defaults to the built-in sample)")
	return cmd
}

func runSeed(ctx context.Context, configPath, file string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	raw := sampleQuestionBank
	if file != "" {
		if raw, err = os.ReadFile(file); err != nil {
			return err
		}
	}
	questions, err := parseQuestionBank(raw)
	if err != nil {
		return err
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}
	db, err := openBunDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := postgres.SeedQuestions(ctx, db, questions)
	if err != nil {
		return err
	}
	log.Printf("seeded %d questions", n)
	return nil
}

func parseQuestionBank(raw []byte) ([]domain.Question, error) {
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	for _, q := range questions {
		if q.ID == "" || q.Level < 0 {
			return nil, fmt.Errorf("question %q: missing id or negative level", q.ID)
		}
		for slot, answer := range q.Answers {
			if answer == "" {
				return nil, fmt.Errorf("question %s: empty answer in slot %d", q.ID, slot+1)
			}
		}
	}
	return questions, nil
}

func sampleQuestions() []domain.Question {
	questions, err := parseQuestionBank(sampleQuestionBank)
	if err != nil {
		panic(err)
	}
	return questions
}
