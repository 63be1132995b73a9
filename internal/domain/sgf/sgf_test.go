package sgf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoord(t *testing.T) {
	assert.Equal(t, "ee", Coord(4, 4))
	assert.Equal(t, "aa", Coord(0, 0))
	assert.Equal(t, "ia", Coord(0, 8))

	row, col, ok := ParseCoord("ia", 9)
	assert.True(t, ok)
	assert.Equal(t, 0, row)
	assert.Equal(t, 8, col)

	_, _, ok = ParseCoord("", 9)
	assert.False(t, ok)
	_, _, ok = ParseCoord("jj", 9)
	assert.False(t, ok)
}

func TestRankTable(t *testing.T) {
	cases := map[int]string{
		0:   "30k",
		1:   "30k",
		2:   "29k",
		58:  "1k",
		60:  "1k",
		61:  "1d",
		64:  "2d",
		79:  "7d",
		81:  "7d",
		82:  "1p",
		84:  "2p",
		98:  "9p",
		100: "9p",
	}
	for skill, want := range cases {
		assert.Equal(t, want, Rank(skill), "skill %d", skill)
	}
}
