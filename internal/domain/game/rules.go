package game

// ApplyMove places a stone of color at pos on a copy of board and resolves
// captures. The second result is false when the move is illegal: the cell is
// occupied, the stone would have no liberties after captures (suicide), or
// the result repeats previous (simple ko). previous may be nil at the start
// of a game. The input boards are never modified.
func ApplyMove(board *Board, pos int, color Color, previous *Board) (Board, bool) {
	if !OnBoard(pos) || color == Empty || board[pos] != Empty {
		return Board{}, false
	}

	next := *board
	next[pos] = color
	removeCaptured(&next, pos, color)

	if LibertyCount(&next, pos) == 0 {
		return Board{}, false
	}
	if previous != nil && next == *previous {
		return Board{}, false
	}
	return next, true
}

// CountCaptures returns how many opponent stones placing color at pos would
// remove. Legality of the placement itself is not checked.
func CountCaptures(board *Board, pos int, color Color) int {
	if !OnBoard(pos) || board[pos] != Empty {
		return 0
	}
	next := *board
	next[pos] = color
	return removeCaptured(&next, pos, color)
}

// removeCaptured empties every opponent group adjacent to pos that has no
// liberties and returns the number of stones removed.
func removeCaptured(b *Board, pos int, color Color) int {
	opponent := color.Opponent()
	visited := make(map[int]struct{})
	captured := 0
	for _, n := range Neighbors(pos) {
		if b[n] != opponent {
			continue
		}
		if _, seen := visited[n]; seen {
			continue
		}
		g, _ := GroupAndLiberties(b, n)
		for s := range g.Stones {
			visited[s] = struct{}{}
		}
		if len(g.Liberties) == 0 {
			for s := range g.Stones {
				b[s] = Empty
			}
			captured += g.Size()
		}
	}
	return captured
}

// IsLegal reports whether color may play at pos.
func IsLegal(board *Board, pos int, color Color, previous *Board) bool {
	_, ok := ApplyMove(board, pos, color, previous)
	return ok
}

// LegalMoves lists every index where color may play, in ascending order.
func LegalMoves(board *Board, color Color, previous *Board) []int {
	moves := make([]int, 0, Total)
	for i := 0; i < Total; i++ {
		if IsLegal(board, i, color, previous) {
			moves = append(moves, i)
		}
	}
	return moves
}
