package game

import (
	"fmt"
	"time"

	errs "goboard/internal/errors"
)

// State is the full state of one game. It changes only through Apply, which
// both live play and Replay go through.
type State struct {
	ID                string    `json:"id"`
	Board             Board     `json:"board"`
	CurrentPlayer     Color     `json:"current_player"`
	Captures          Captures  `json:"captures"`
	ConsecutivePasses int       `json:"consecutive_passes"`
	PreviousBoard     *Board    `json:"previous_board,omitempty"`
	GameOver          bool      `json:"game_over"`
	Scores            *Score    `json:"scores,omitempty"`
	ResignedBy        Color     `json:"resigned_by"`
	MoveCount         int       `json:"move_count"`
	MoveHistory       []Move    `json:"move_history"`
	StartedAt         time.Time `json:"started_at"`
}

// NewState returns an empty board with black to move.
func NewState(id string) *State {
	return &State{
		ID:            id,
		CurrentPlayer: Black,
		MoveHistory:   []Move{},
		StartedAt:     time.Now().UTC(),
	}
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	if s.PreviousBoard != nil {
		prev := *s.PreviousBoard
		c.PreviousBoard = &prev
	}
	if s.Scores != nil {
		sc := *s.Scores
		c.Scores = &sc
	}
	c.MoveHistory = append(make([]Move, 0, len(s.MoveHistory)), s.MoveHistory...)
	return &c
}

// Apply plays m for m.Color and returns the number of stones it captured.
// On error the state is left untouched.
func (s *State) Apply(m Move) (int, error) {
	if s.GameOver {
		return 0, errs.ErrGameOver
	}
	if m.Color != Black && m.Color != White {
		return 0, errs.ErrInvalidColor
	}
	// A player may resign at any time; everything else waits for its turn.
	if m.Kind != KindResign && m.Color != s.CurrentPlayer {
		return 0, fmt.Errorf("%s to move: %w", s.CurrentPlayer, errs.ErrNotYourTurn)
	}

	captured := 0
	switch m.Kind {
	case KindPlace:
		next, ok := ApplyMove(&s.Board, m.Pos, m.Color, s.PreviousBoard)
		if !ok {
			return 0, fmt.Errorf("%s: %w", m, errs.ErrIllegalMove)
		}
		captured = CountCaptures(&s.Board, m.Pos, m.Color)
		prev := s.Board
		s.PreviousBoard = &prev
		s.Board = next
		s.Captures.Add(m.Color, captured)
		s.ConsecutivePasses = 0
		s.CurrentPlayer = m.Color.Opponent()
	case KindPass:
		s.ConsecutivePasses++
		if s.ConsecutivePasses >= 2 {
			s.finish()
		} else {
			s.CurrentPlayer = m.Color.Opponent()
		}
	case KindResign:
		s.ResignedBy = m.Color
		s.finish()
	default:
		return 0, fmt.Errorf("move kind %d: %w", m.Kind, errs.ErrIllegalMove)
	}

	s.MoveHistory = append(s.MoveHistory, m)
	s.MoveCount++
	return captured, nil
}

func (s *State) finish() {
	score := ComputeScore(&s.Board, s.Captures)
	s.Scores = &score
	s.GameOver = true
}

// Winner is the opponent of whoever resigned, otherwise the side with more
// points. Empty while the game is running or on a draw.
func (s *State) Winner() Color {
	if !s.GameOver {
		return Empty
	}
	if s.ResignedBy != Empty {
		return s.ResignedBy.Opponent()
	}
	if s.Scores == nil {
		return Empty
	}
	return s.Scores.Winner()
}

// Result is the SGF RE value, or "" while the game is running.
func (s *State) Result() string {
	if !s.GameOver {
		return ""
	}
	if s.ResignedBy != Empty {
		if s.ResignedBy == Black {
			return "W+R"
		}
		return "B+R"
	}
	if s.Scores == nil {
		return ""
	}
	return s.Scores.Result()
}

// Estimate scores the current position as if the game ended now.
func (s *State) Estimate() Score {
	return ComputeScore(&s.Board, s.Captures)
}

// LastPlaced is the index of the most recently placed stone still in the
// history, or -1.
func (s *State) LastPlaced() int {
	for i := len(s.MoveHistory) - 1; i >= 0; i-- {
		if s.MoveHistory[i].IsPlace() {
			return s.MoveHistory[i].Pos
		}
	}
	return -1
}

// Replay rebuilds a game from an empty board by applying history in order.
// PreviousBoard is reconstructed step by step exactly as in live play, so
// ko decisions come out the same.
func Replay(id string, startedAt time.Time, history []Move) (*State, error) {
	s := NewState(id)
	if !startedAt.IsZero() {
		s.StartedAt = startedAt
	}
	for i, m := range history {
		if _, err := s.Apply(m); err != nil {
			return nil, fmt.Errorf("replay move %d: %w", i, err)
		}
	}
	return s, nil
}
