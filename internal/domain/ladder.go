package domain

// DefaultPrizes are the amounts paid for clearing 1..15 levels.
var DefaultPrizes = []int64{
	100, 200, 300, 500, 1000,
	2000, 4000, 8000, 16000, 32000,
	64000, 125000, 250000, 500000, 1000000,
}

// PrizeLadder maps the number of cleared levels to the guaranteed prize.
type PrizeLadder struct {
	prizes []int64
}

// NewPrizeLadder validates that the table is non-empty and strictly increasing.
func NewPrizeLadder(prizes []int64) (PrizeLadder, error) {
	if len(prizes) == 0 || prizes[0] <= 0 {
		return PrizeLadder{}, ErrInvalidLadder
	}
	for i := 1; i < len(prizes); i++ {
		if prizes[i] <= prizes[i-1] {
			return PrizeLadder{}, ErrInvalidLadder
		}
	}
	return PrizeLadder{prizes: append([]int64(nil), prizes...)}, nil
}

// DefaultLadder is the fifteen-step table.
func DefaultLadder() PrizeLadder {
	ladder, _ := NewPrizeLadder(DefaultPrizes)
	return ladder
}

// PrizeAt returns the prize for having completed level levels. Level 0 pays nothing;
// anything past the top clamps to the top prize.
func (l PrizeLadder) PrizeAt(level int) int64 {
	if level <= 0 {
		return 0
	}
	if level > len(l.prizes) {
		level = len(l.prizes)
	}
	return l.prizes[level-1]
}

// MaxLevel is the index of the last question; answering it wins the game.
func (l PrizeLadder) MaxLevel() int {
	return len(l.prizes) - 1
}

// Levels lists every question level in ascending order.
func (l PrizeLadder) Levels() []int {
	levels := make([]int, len(l.prizes))
	for i := range levels {
		levels[i] = i
	}
	return levels
}

// TopPrize is the amount paid for winning.
func (l PrizeLadder) TopPrize() int64 {
	return l.PrizeAt(len(l.prizes))
}
