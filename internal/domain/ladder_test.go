package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLadder(t *testing.T) {
	ladder := DefaultLadder()

	assert.Equal(t, 14, ladder.MaxLevel())
	assert.Equal(t, int64(0), ladder.PrizeAt(0))
	assert.Equal(t, int64(100), ladder.PrizeAt(1))
	assert.Equal(t, int64(200), ladder.PrizeAt(2))
	assert.Equal(t, int64(1000000), ladder.PrizeAt(ladder.MaxLevel()+1))
	assert.Equal(t, ladder.PrizeAt(ladder.MaxLevel()+1), ladder.TopPrize())
	assert.Equal(t, ladder.TopPrize(), ladder.PrizeAt(100), "levels past the top clamp")
	assert.Equal(t, int64(0), ladder.PrizeAt(-3))
}

func TestDefaultLadderIsStrictlyIncreasing(t *testing.T) {
	ladder := DefaultLadder()
	for level := 1; level <= ladder.MaxLevel()+1; level++ {
		assert.Greater(t, ladder.PrizeAt(level), ladder.PrizeAt(level-1), "level %d", level)
	}
}

func TestLadderLevels(t *testing.T) {
	ladder, err := NewPrizeLadder([]int64{10, 20, 30})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, ladder.Levels())
	assert.Equal(t, 2, ladder.MaxLevel())
}

func TestNewPrizeLadderRejectsBadTables(t *testing.T) {
	tests := []struct {
		name   string
		prizes []int64
	}{
		{name: "empty", prizes: nil},
		{name: "zero first step", prizes: []int64{0, 10}},
		{name: "equal steps", prizes: []int64{10, 10}},
		{name: "decreasing", prizes: []int64{10, 20, 15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPrizeLadder(tt.prizes)
			assert.ErrorIs(t, err, ErrInvalidLadder)
		})
	}
}
