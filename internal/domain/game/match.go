package game

import "time"

// MaxMatchHistory bounds the stored match records.
const MaxMatchHistory = 50

// Outcome of a finished game from the human's point of view.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// MatchRecord summarizes a finished game.
type MatchRecord struct {
	ID          string    `json:"id" bson:"id"`
	Date        time.Time `json:"date" bson:"date"`
	HumanColor  Color     `json:"human_color" bson:"human_color"`
	Outcome     Outcome   `json:"outcome" bson:"outcome"`
	Result      string    `json:"result" bson:"result"`
	Resigned    bool      `json:"resigned" bson:"resigned"`
	AISkill     int       `json:"ai_skill" bson:"ai_skill"`
	HumanSkill  int       `json:"human_skill" bson:"human_skill"`
	MoveCount   int       `json:"move_count" bson:"move_count"`
	FinalScores *Score    `json:"final_scores,omitempty" bson:"final_scores,omitempty"`
}

// AppendMatch adds r and keeps only the newest MaxMatchHistory records.
func AppendMatch(history []MatchRecord, r MatchRecord) []MatchRecord {
	history = append(history, r)
	if len(history) > MaxMatchHistory {
		history = append([]MatchRecord(nil), history[len(history)-MaxMatchHistory:]...)
	}
	return history
}

// OutcomeFor reports how a finished game ended for the player holding human.
func OutcomeFor(s *State, human Color) Outcome {
	switch s.Winner() {
	case human:
		return OutcomeWin
	case Empty:
		return OutcomeDraw
	}
	return OutcomeLoss
}

const (
	MinSkill = 0
	MaxSkill = 100
)

// AdjustSkills moves both ratings after a game. A human win raises the AI by
// 5 so the next game is harder and the human by 4; a loss lowers them by 3
// and 2. Draws leave both unchanged. Results are clamped to [0,100].
func AdjustSkills(aiSkill, humanSkill int, outcome Outcome) (int, int) {
	switch outcome {
	case OutcomeWin:
		return ClampSkill(aiSkill + 5), ClampSkill(humanSkill + 4)
	case OutcomeLoss:
		return ClampSkill(aiSkill - 3), ClampSkill(humanSkill - 2)
	}
	return ClampSkill(aiSkill), ClampSkill(humanSkill)
}

// ClampSkill bounds v to [MinSkill, MaxSkill].
func ClampSkill(v int) int {
	if v < MinSkill {
		return MinSkill
	}
	if v > MaxSkill {
		return MaxSkill
	}
	return v
}
