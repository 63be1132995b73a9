package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goboard/internal/domain/game"
	gameuc "goboard/internal/usecase/game"
)

func TestLabel(t *testing.T) {
	assert.Equal(t, "E5", Label(40))
	assert.Equal(t, "A9", Label(0))
	assert.Equal(t, "J1", Label(80))
	assert.Equal(t, "H9", Label(7))
}

func TestMoveList(t *testing.T) {
	moves := []game.Move{
		game.Place(game.Black, 40),
		game.Pass(game.White),
		game.Resign(game.Black),
	}
	assert.Equal(t, []string{"1. B E5", "2. W pass", "3. B resigns"}, MoveList(moves))
	assert.Empty(t, MoveList(nil))
}

func TestGameReport(t *testing.T) {
	st := game.NewState("r1")
	for _, m := range []game.Move{
		game.Place(game.Black, 40),
		game.Place(game.White, 41),
		game.Pass(game.Black),
		game.Pass(game.White),
	} {
		_, err := st.Apply(m)
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	err := GameReport(&buf, st, gameuc.MatchInfo{
		HumanColor: game.White,
		AISkill:    70,
		HumanSkill: 10,
		Date:       time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestGameReportEmptyGame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GameReport(&buf, game.NewState("r2"), gameuc.MatchInfo{}))
	assert.NotZero(t, buf.Len())
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "go-game-2024-02-29.pdf", FileName(time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)))
}
