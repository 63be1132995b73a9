package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyBoardIsPureKomi(t *testing.T) {
	var b Board
	s := ComputeScore(&b, Captures{})
	assert.Equal(t, Score{Black: 0, White: 6.5}, s)
	assert.Equal(t, "W+6.5", s.Result())
}

func TestWallOwnsWholeBoard(t *testing.T) {
	var b Board
	for r := 0; r < Size; r++ {
		b[ToIndex(r, 4)] = Black
	}
	s := ComputeScore(&b, Captures{Black: 2})
	assert.Equal(t, float64(Total+2), s.Black)
	assert.Equal(t, Komi, s.White)
}

func TestDameIsNeutral(t *testing.T) {
	var b Board
	for r := 0; r < Size; r++ {
		b[ToIndex(r, 3)] = Black
		b[ToIndex(r, 5)] = White
	}
	black, white := Territory(&b)
	assert.Equal(t, 27, black)
	assert.Equal(t, 27, white)

	s := ComputeScore(&b, Captures{})
	assert.Equal(t, 36.0, s.Black)
	assert.Equal(t, 42.5, s.White)
	assert.Equal(t, White, s.Winner())
}

func TestScoreResultFormatting(t *testing.T) {
	assert.Equal(t, "B+3.5", Score{Black: 10, White: 6.5}.Result())
	assert.Equal(t, "Draw", Score{Black: 7, White: 7}.Result())
	assert.Equal(t, "W+12", Score{Black: 0, White: 12}.Result())
}
