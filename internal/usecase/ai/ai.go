package ai

import (
	"math"
	"math/rand"

	"goboard/internal/domain/game"
)

// Skill tier boundaries.
const (
	BeginnerMax     = 20
	IntermediateMax = 50
	AdvancedMax     = 80
)

const (
	openingStoneLimit = 6
	openingTakeChance = 0.8
	randomPlayChance  = 0.4

	expertLateStones = 30
	resignDeficit    = 25.0
	resignChance     = 0.6
	passDeficit      = 15.0
	passChance       = 0.3
	captureWeight    = 10.0
	rescueWeight     = 8.0
	atariWeight      = 6.0
	influenceWeight  = 0.3
	jitterSpan       = 0.5
)

// PickMove chooses the move of color on board for the given skill (0..100).
// It never returns an illegal placement: the result is a legal Place, a Pass
// or a Resign. All randomness comes from rng.
func PickMove(board, previous *game.Board, skill int, color game.Color, rng *rand.Rand) game.Move {
	legal := game.LegalMoves(board, color, previous)
	if len(legal) == 0 {
		return game.Pass(color)
	}

	if skill <= BeginnerMax {
		return game.Place(color, legal[rng.Intn(len(legal))])
	}

	if board.Stones() < openingStoneLimit {
		if pos, ok := openingMove(board, previous, skill, color); ok && rng.Float64() < openingTakeChance {
			return game.Place(color, pos)
		}
	}

	if skill <= IntermediateMax && rng.Float64() < randomPlayChance {
		return game.Place(color, legal[rng.Intn(len(legal))])
	}

	best := math.Inf(-1)
	bestPos := legal[0]
	for _, pos := range legal {
		if s := ScoreMove(board, previous, pos, skill, color, rng); s > best {
			best = s
			bestPos = pos
		}
	}

	if skill > AdvancedMax && board.Stones() > expertLateStones {
		estimate := game.ComputeScore(board, game.Captures{})
		deficit := estimate.Of(color.Opponent()) - estimate.Of(color)
		switch {
		case deficit > resignDeficit:
			if rng.Float64() < resignChance {
				return game.Resign(color)
			}
		case deficit > passDeficit:
			if rng.Float64() < passChance {
				return game.Pass(color)
			}
		}
	}

	return game.Place(color, bestPos)
}

// ScoreMove rates a legal placement. Illegal placements score -Inf.
func ScoreMove(board, previous *game.Board, pos, skill int, color game.Color, rng *rand.Rand) float64 {
	next, ok := game.ApplyMove(board, pos, color, previous)
	if !ok {
		return math.Inf(-1)
	}
	opponent := color.Opponent()

	score := captureWeight * float64(game.CountCaptures(board, pos, color))
	score += rescueWeight * float64(adjacentAtari(board, pos, color))
	score += atariWeight * float64(adjacentAtari(&next, pos, opponent))
	score += float64(game.LibertyCount(&next, pos))

	if skill > AdvancedMax {
		influence := game.TotalLiberties(&next, color) - game.TotalLiberties(&next, opponent)
		score += influenceWeight * float64(influence)
	}

	return score + rng.Float64()*jitterSpan
}

// adjacentAtari counts distinct groups of color next to pos that have
// exactly one liberty on b.
func adjacentAtari(b *game.Board, pos int, color game.Color) int {
	seen := make(map[int]struct{})
	n := 0
	for _, nb := range game.Neighbors(pos) {
		if b[nb] != color {
			continue
		}
		if _, dup := seen[nb]; dup {
			continue
		}
		g, _ := game.GroupAndLiberties(b, nb)
		for s := range g.Stones {
			seen[s] = struct{}{}
		}
		if g.InAtari() {
			n++
		}
	}
	return n
}
