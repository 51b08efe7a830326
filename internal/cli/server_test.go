package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-ladder/internal/app"
	"quiz-ladder/internal/config"
	"quiz-ladder/internal/domain"
)

func TestNewEngineDefaults(t *testing.T) {
	engine, err := newEngine(config.Config{})
	require.NoError(t, err)
	assert.Equal(t, app.DefaultTimeLimit, engine.TimeLimit())
	assert.Equal(t, 14, engine.Ladder().MaxLevel())
}

func TestNewEngineCustomLadder(t *testing.T) {
	cfg := config.Config{}
	cfg.Game.Prizes = []int64{10, 20, 40}
	cfg.Game.TimeLimit = "5m"
	cfg.Game.Seed = 7

	engine, err := newEngine(cfg)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, engine.TimeLimit())
	assert.Equal(t, int64(40), engine.Ladder().TopPrize())
}

func TestNewEngineRejectsBadLadder(t *testing.T) {
	cfg := config.Config{}
	cfg.Game.Prizes = []int64{10, 10}

	_, err := newEngine(cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidLadder)
}
