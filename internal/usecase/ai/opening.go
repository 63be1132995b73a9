package ai

import "goboard/internal/domain/game"

var (
	center     = []int{40}
	threeThree = []int{20, 24, 56, 60}
	fourFour   = []int{30, 32, 48, 50}
	sides      = []int{22, 38, 42, 58}
)

func concat(lists ...[]int) []int {
	var out []int
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Opening priority lists per tier. Stronger tiers prefer the corners first.
var (
	intermediateBook = concat(center, threeThree, sides)
	advancedBook     = concat(threeThree, center, fourFour, sides)
	expertBook       = concat(center, threeThree, fourFour, sides)
)

// OpeningBook returns the priority list used at the given skill, or nil for
// beginners, who never consult it.
func OpeningBook(skill int) []int {
	switch {
	case skill <= BeginnerMax:
		return nil
	case skill <= IntermediateMax:
		return intermediateBook
	case skill <= AdvancedMax:
		return advancedBook
	}
	return expertBook
}

// openingMove returns the first book point that is empty and legal.
func openingMove(board, previous *game.Board, skill int, color game.Color) (int, bool) {
	for _, pos := range OpeningBook(skill) {
		if board[pos] == game.Empty && game.IsLegal(board, pos, color, previous) {
			return pos, true
		}
	}
	return 0, false
}
