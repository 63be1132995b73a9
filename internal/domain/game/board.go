package game

// Size is the edge length of the board; the engine only plays 9x9.
const Size = 9

// Total is the number of intersections on the board.
const Total = Size * Size

// Color of a cell or of a player.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// Opponent returns the other player's color. Empty has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

// ParseColor accepts "black"/"white" and the SGF letters "B"/"W".
func ParseColor(s string) (Color, bool) {
	switch s {
	case "black", "b", "B":
		return Black, true
	case "white", "w", "W":
		return White, true
	}
	return Empty, false
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	if string(text) == "empty" || len(text) == 0 {
		*c = Empty
		return nil
	}
	parsed, ok := ParseColor(string(text))
	if !ok {
		return &colorError{value: string(text)}
	}
	*c = parsed
	return nil
}

type colorError struct{ value string }

func (e *colorError) Error() string { return "unknown color " + e.value }

// Board is a row-major 9x9 grid. It is a value type: assigning or passing a
// Board copies it, which the rules engine relies on for copy-on-write.
type Board [Total]Color

// StarPoints are the five marked intersections (hoshi). Rendering only.
var StarPoints = [5]int{20, 24, 40, 56, 60}

// ToIndex maps a row and column to a board index.
func ToIndex(row, col int) int {
	return row*Size + col
}

// ToRowCol maps a board index back to its row and column.
func ToRowCol(index int) (row, col int) {
	return index / Size, index % Size
}

// OnBoard reports whether index addresses an intersection.
func OnBoard(index int) bool {
	return index >= 0 && index < Total
}

// Neighbors returns the orthogonally adjacent indices in the order
// up, down, left, right. Edge and corner cells have fewer.
func Neighbors(index int) []int {
	row, col := ToRowCol(index)
	ns := make([]int, 0, 4)
	if row > 0 {
		ns = append(ns, ToIndex(row-1, col))
	}
	if row < Size-1 {
		ns = append(ns, ToIndex(row+1, col))
	}
	if col > 0 {
		ns = append(ns, ToIndex(row, col-1))
	}
	if col < Size-1 {
		ns = append(ns, ToIndex(row, col+1))
	}
	return ns
}

// IsStarPoint reports whether index is one of the marked intersections.
func IsStarPoint(index int) bool {
	for _, p := range StarPoints {
		if p == index {
			return true
		}
	}
	return false
}

// StoneCount counts stones of color c.
func (b *Board) StoneCount(c Color) int {
	n := 0
	for _, cell := range b {
		if cell == c {
			n++
		}
	}
	return n
}

// Stones counts all stones on the board regardless of color.
func (b *Board) Stones() int {
	return b.StoneCount(Black) + b.StoneCount(White)
}

// String renders the board as nine lines of '.', 'X' (black) and 'O' (white).
func (b *Board) String() string {
	buf := make([]byte, 0, Total+Size)
	for i, cell := range b {
		switch cell {
		case Black:
			buf = append(buf, 'X')
		case White:
			buf = append(buf, 'O')
		default:
			buf = append(buf, '.')
		}
		if i%Size == Size-1 {
			buf = append(buf, '\n')
		}
	}
	return string(buf)
}

// ParseBoard is the inverse of String. Whitespace is ignored; any character
// other than 'X'/'O' is read as empty. Intended for fixtures.
func ParseBoard(s string) Board {
	var b Board
	i := 0
	for _, r := range s {
		if i >= Total {
			break
		}
		switch r {
		case ' ', '\n', '\t', '\r':
			continue
		case 'X':
			b[i] = Black
		case 'O':
			b[i] = White
		}
		i++
	}
	return b
}
