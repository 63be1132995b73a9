package game

import (
	"encoding/json"
	"fmt"
)

// MoveKind tags the variant held by a Move.
type MoveKind uint8

const (
	KindPlace MoveKind = iota
	KindPass
	KindResign
)

func (k MoveKind) String() string {
	switch k {
	case KindPass:
		return "pass"
	case KindResign:
		return "resign"
	}
	return "place"
}

// Move is one entry of the move history: a stone placement, a pass or a
// resignation by Color. Pos is meaningful only for KindPlace.
type Move struct {
	Kind  MoveKind
	Color Color
	Pos   int
}

// Place is a stone placement at pos.
func Place(c Color, pos int) Move { return Move{Kind: KindPlace, Color: c, Pos: pos} }

// Pass is a pass by c.
func Pass(c Color) Move { return Move{Kind: KindPass, Color: c, Pos: -1} }

// Resign is a resignation by c.
func Resign(c Color) Move { return Move{Kind: KindResign, Color: c, Pos: -1} }

func (m Move) IsPlace() bool  { return m.Kind == KindPlace }
func (m Move) IsPass() bool   { return m.Kind == KindPass }
func (m Move) IsResign() bool { return m.Kind == KindResign }

func (m Move) String() string {
	switch m.Kind {
	case KindPass:
		return m.Color.String() + " pass"
	case KindResign:
		return m.Color.String() + " resign"
	}
	row, col := ToRowCol(m.Pos)
	return fmt.Sprintf("%s (%d,%d)", m.Color, row, col)
}

// moveJSON is the persisted shape: {"color":"black","pos":40},
// {"color":"white","pass":true} or {"color":"black","resign":true}.
type moveJSON struct {
	Color  Color `json:"color"`
	Pos    *int  `json:"pos,omitempty"`
	Pass   bool  `json:"pass,omitempty"`
	Resign bool  `json:"resign,omitempty"`
}

func (m Move) MarshalJSON() ([]byte, error) {
	out := moveJSON{Color: m.Color}
	switch m.Kind {
	case KindPass:
		out.Pass = true
	case KindResign:
		out.Resign = true
	default:
		pos := m.Pos
		out.Pos = &pos
	}
	return json.Marshal(out)
}

func (m *Move) UnmarshalJSON(data []byte) error {
	var in moveJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch {
	case in.Resign:
		*m = Resign(in.Color)
	case in.Pass:
		*m = Pass(in.Color)
	case in.Pos != nil:
		if !OnBoard(*in.Pos) {
			return fmt.Errorf("move position %d out of range", *in.Pos)
		}
		*m = Place(in.Color, *in.Pos)
	default:
		return fmt.Errorf("move has neither pos, pass nor resign")
	}
	return nil
}
