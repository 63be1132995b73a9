package game

import (
	"fmt"
	"strconv"
)

// Komi is the compensation credited to white.
const Komi = 6.5

// Captures counts stones removed by each player.
type Captures struct {
	Black int `json:"black" bson:"black"`
	White int `json:"white" bson:"white"`
}

// Add credits n captured stones to color c.
func (c *Captures) Add(color Color, n int) {
	switch color {
	case Black:
		c.Black += n
	case White:
		c.White += n
	}
}

// Of returns the captures credited to color c.
func (c Captures) Of(color Color) int {
	if color == White {
		return c.White
	}
	if color == Black {
		return c.Black
	}
	return 0
}

// Score is an area count: stones + territory + captures, plus komi for white.
type Score struct {
	Black float64 `json:"black" bson:"black"`
	White float64 `json:"white" bson:"white"`
}

// Of returns the points of color c.
func (s Score) Of(c Color) float64 {
	if c == White {
		return s.White
	}
	return s.Black
}

// Winner returns the color with more points, or Empty on a tie.
func (s Score) Winner() Color {
	switch {
	case s.Black > s.White:
		return Black
	case s.White > s.Black:
		return White
	}
	return Empty
}

// Margin is the absolute point difference.
func (s Score) Margin() float64 {
	if s.Black > s.White {
		return s.Black - s.White
	}
	return s.White - s.Black
}

// Result formats the score as an SGF result value: "B+3.5", "W+0.5", "Draw".
func (s Score) Result() string {
	switch s.Winner() {
	case Black:
		return "B+" + formatPoints(s.Margin())
	case White:
		return "W+" + formatPoints(s.Margin())
	}
	return "Draw"
}

func (s Score) String() string {
	return fmt.Sprintf("black %s, white %s", formatPoints(s.Black), formatPoints(s.White))
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Territory flood-fills every maximal empty region. A region bordered only by
// one color is credited to that color; regions touching both colors (dame)
// and regions touching no stone at all are neutral.
func Territory(b *Board) (black, white int) {
	visited := make(map[int]struct{})
	for i := 0; i < Total; i++ {
		if b[i] != Empty {
			continue
		}
		if _, seen := visited[i]; seen {
			continue
		}

		size := 0
		var border Color
		mixed := false
		stack := []int{i}
		visited[i] = struct{}{}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++
			for _, n := range Neighbors(cur) {
				switch cell := b[n]; cell {
				case Empty:
					if _, seen := visited[n]; !seen {
						visited[n] = struct{}{}
						stack = append(stack, n)
					}
				default:
					if border == Empty {
						border = cell
					} else if border != cell {
						mixed = true
					}
				}
			}
		}

		if mixed {
			continue
		}
		switch border {
		case Black:
			black += size
		case White:
			white += size
		}
	}
	return black, white
}

// ComputeScore scores the board. No dead stones are removed.
func ComputeScore(b *Board, captures Captures) Score {
	blackTerritory, whiteTerritory := Territory(b)
	return Score{
		Black: float64(b.StoneCount(Black) + blackTerritory + captures.Black),
		White: float64(b.StoneCount(White)+whiteTerritory+captures.White) + Komi,
	}
}
