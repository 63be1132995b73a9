package game

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goboard/internal/domain/game"
)

func playAll(t *testing.T, s *game.State, moves ...game.Move) {
	t.Helper()
	for _, m := range moves {
		_, err := s.Apply(m)
		require.NoError(t, err, m.String())
	}
}

func TestExportSGFMovesAndResult(t *testing.T) {
	st := game.NewState("g1")
	playAll(t, st,
		game.Place(game.Black, 40),
		game.Pass(game.White),
		game.Resign(game.Black),
	)
	info := MatchInfo{
		HumanColor: game.Black,
		AISkill:    90,
		HumanSkill: 0,
		Date:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	out := ExportSGF(st, info)

	assert.True(t, strings.HasPrefix(out, "(;GM[1]FF[4]"), out)
	assert.Contains(t, out, "SZ[9]")
	assert.Contains(t, out, "KM[6.5]")
	assert.Contains(t, out, "PB[Human]PW[AI]BR[30k]WR[5p]")
	assert.Contains(t, out, "DT[2024-05-01]")
	assert.Contains(t, out, "RE[W+R]")
	assert.Contains(t, out, ";B[ee]")
	assert.Contains(t, out, ";W[]")
	assert.Equal(t, 2, strings.Count(out, ";")-1, "resignation has no node")
	assert.True(t, strings.HasSuffix(out, ")\n"))
}

func TestExportSGFInProgressHasNoResult(t *testing.T) {
	st := game.NewState("g2")
	playAll(t, st, game.Place(game.Black, 0), game.Place(game.White, 80))

	out := ExportSGF(st, MatchInfo{HumanColor: game.White})
	assert.NotContains(t, out, "RE[")
	assert.Contains(t, out, "PB[AI]PW[Human]")
	assert.Contains(t, out, ";B[aa];W[ii]")
}

func TestExportSGFScoredResult(t *testing.T) {
	st := game.NewState("g3")
	playAll(t, st, game.Pass(game.Black), game.Pass(game.White))

	assert.Contains(t, ExportSGF(st, MatchInfo{HumanColor: game.Black}), "RE[W+6.5]")
}

func TestSGFFileName(t *testing.T) {
	assert.Equal(t, "go-game-2025-01-31.sgf", SGFFileName(time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)))
}
