package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goboard/internal/domain/game"
	"goboard/internal/domain/sgf"
	errs "goboard/internal/errors"
	"goboard/internal/usecase/ai"
)

// MovePicker chooses the AI's move. ai.PickMove is the production picker.
type MovePicker func(board, previous *game.Board, skill int, color game.Color, rng *rand.Rand) game.Move

type Config struct {
	AIDelay           time.Duration
	DefaultHumanColor game.Color
	DefaultAISkill    int
	DefaultHumanSkill int
	Rand              *rand.Rand
	Pick              MovePicker
	NewID             func() string
	Now               func() time.Time
}

// DefaultConfig plays the human as black against a 600ms "thinking" AI.
func DefaultConfig() Config {
	return Config{
		AIDelay:           600 * time.Millisecond,
		DefaultHumanColor: game.Black,
		Rand:              rand.New(rand.NewSource(time.Now().UnixNano())),
		Pick:              ai.PickMove,
		NewID:             uuid.NewString,
		Now:               time.Now,
	}
}

// Snapshot is a read-only view of the session for rendering.
type Snapshot struct {
	State        *game.State `json:"state"`
	HumanColor   game.Color  `json:"human_color"`
	AISkill      int         `json:"ai_skill"`
	HumanSkill   int         `json:"human_skill"`
	AIRank       string      `json:"ai_rank"`
	HumanRank    string      `json:"human_rank"`
	SoundEnabled bool        `json:"sound_enabled"`
	AIThinking   bool        `json:"ai_thinking"`
	LastMove     int         `json:"last_move"`
	Estimate     game.Score  `json:"estimate"`
	Result       string      `json:"result,omitempty"`
	Winner       game.Color  `json:"winner"`
}

// Session owns one game against the AI together with both skill ratings,
// the match history and the sound setting. All mutations are serialized by
// mu; the AI move runs on a timer and is dropped if the game moved on.
type Session struct {
	log    *zap.SugaredLogger
	store  KVStore
	sounds SoundPlayer
	cfg    Config

	life     context.Context
	shutdown context.CancelFunc

	mu           sync.Mutex
	state        *game.State
	aiSkill      int
	humanSkill   int
	humanColor   game.Color
	history      []game.MatchRecord
	soundEnabled bool

	generation uint64
	cancelAI   context.CancelFunc
	aiThinking bool

	listeners []func(Snapshot)
}

// NewSession restores persisted state from store and, if the AI is to move,
// schedules its move. Storage failures fall back to defaults.
func NewSession(ctx context.Context, log *zap.SugaredLogger, store KVStore, sounds SoundPlayer, cfg Config) *Session {
	def := DefaultConfig()
	if cfg.Rand == nil {
		cfg.Rand = def.Rand
	}
	if cfg.Pick == nil {
		cfg.Pick = def.Pick
	}
	if cfg.NewID == nil {
		cfg.NewID = def.NewID
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}
	if cfg.DefaultHumanColor == game.Empty {
		cfg.DefaultHumanColor = def.DefaultHumanColor
	}

	life, shutdown := context.WithCancel(context.Background())
	s := &Session{
		log:      log,
		store:    store,
		sounds:   sounds,
		cfg:      cfg,
		life:     life,
		shutdown: shutdown,
	}

	p := s.load(ctx)
	s.state = p.state
	s.aiSkill = p.aiSkill
	s.humanSkill = p.humanSkill
	s.humanColor = p.humanColor
	s.history = p.history
	s.soundEnabled = p.soundEnabled

	s.mu.Lock()
	s.scheduleAILocked()
	s.mu.Unlock()

	log.Infow("session restored",
		"game_id", s.state.ID, "moves", s.state.MoveCount,
		"human_color", s.humanColor, "ai_skill", s.aiSkill, "human_skill", s.humanSkill)
	return s
}

// Subscribe registers fn to receive a snapshot after every change.
func (s *Session) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// mutate runs fn under the lock and publishes the resulting snapshot.
func (s *Session) mutate(fn func() error) error {
	s.mu.Lock()
	err := fn()
	snap := s.snapshotLocked()
	listeners := append([]func(Snapshot){}, s.listeners...)
	s.mu.Unlock()

	if err == nil {
		for _, l := range listeners {
			l(snap)
		}
	}
	return err
}

// PlayHuman places the human's stone at pos.
func (s *Session) PlayHuman(ctx context.Context, pos int) error {
	return s.mutate(func() error {
		if err := s.humanTurnLocked(); err != nil {
			return err
		}
		if !game.OnBoard(pos) {
			return fmt.Errorf("position %d: %w", pos, errs.ErrIllegalMove)
		}
		return s.commitLocked(ctx, game.Place(s.humanColor, pos))
	})
}

// Pass passes for the human.
func (s *Session) Pass(ctx context.Context) error {
	return s.mutate(func() error {
		if err := s.humanTurnLocked(); err != nil {
			return err
		}
		return s.commitLocked(ctx, game.Pass(s.humanColor))
	})
}

// Resign ends the game in the AI's favor, even while the AI is thinking.
func (s *Session) Resign(ctx context.Context) error {
	return s.mutate(func() error {
		if s.state.GameOver {
			return errs.ErrGameOver
		}
		s.cancelAILocked()
		return s.commitLocked(ctx, game.Resign(s.humanColor))
	})
}

// Undo takes back the last human move: two history entries when it is the
// human's turn (the AI reply and the human move), one otherwise. The state
// is rebuilt by replaying the shortened history from an empty board.
func (s *Session) Undo(ctx context.Context) error {
	return s.mutate(func() error {
		if s.state.GameOver {
			return errs.ErrGameOver
		}
		n := 1
		if s.state.CurrentPlayer == s.humanColor {
			n = 2
		}
		total := len(s.state.MoveHistory)
		if n > total {
			n = total
		}
		if n == 0 {
			return errs.ErrNothingToUndo
		}

		rebuilt, err := game.Replay(s.state.ID, s.state.StartedAt, s.state.MoveHistory[:total-n])
		if err != nil {
			s.log.Errorw("undo replay failed", "game_id", s.state.ID, "error", err)
			return fmt.Errorf("undo: %w", errs.ErrInternal)
		}

		s.cancelAILocked()
		s.generation++
		s.state = rebuilt
		s.saveState(ctx)
		s.scheduleAILocked()
		return nil
	})
}

// NewGame abandons the current game and starts a fresh one with the human
// holding color.
func (s *Session) NewGame(ctx context.Context, color game.Color) error {
	if color != game.Black && color != game.White {
		return errs.ErrInvalidColor
	}
	return s.mutate(func() error {
		s.cancelAILocked()
		s.generation++
		s.state = game.NewState(s.cfg.NewID())
		s.state.StartedAt = s.cfg.Now().UTC()
		s.humanColor = color
		// the abandoned game must not be restored if the write below fails
		s.remove(ctx, KeyGameState)
		s.saveState(ctx)
		s.set(ctx, KeyHumanColor, color.String())
		s.scheduleAILocked()
		s.log.Infow("new game", "game_id", s.state.ID, "human_color", color)
		return nil
	})
}

// ToggleSound flips the sound setting and returns the new value.
func (s *Session) ToggleSound(ctx context.Context) bool {
	var enabled bool
	_ = s.mutate(func() error {
		s.soundEnabled = !s.soundEnabled
		enabled = s.soundEnabled
		s.set(ctx, KeySoundEnabled, strconv.FormatBool(enabled))
		return nil
	})
	return enabled
}

// Close cancels a pending AI move. The session stays readable.
func (s *Session) Close() {
	s.mu.Lock()
	s.cancelAILocked()
	s.generation++
	s.mu.Unlock()
	s.shutdown()
}

// Snapshot returns a copy of the current state for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// LegalMoves lists where the human may play now; empty when it is not the
// human's turn.
func (s *Session) LegalMoves() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.humanTurnLocked() != nil {
		return []int{}
	}
	return game.LegalMoves(&s.state.Board, s.humanColor, s.state.PreviousBoard)
}

// MatchHistory returns the stored match records, oldest first.
func (s *Session) MatchHistory() []game.MatchRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]game.MatchRecord{}, s.history...)
}

// ExportSGF serializes the current game.
func (s *Session) ExportSGF() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ExportSGF(s.state, s.matchInfoLocked())
}

// MatchInfo describes the players of the current game.
func (s *Session) MatchInfo() MatchInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matchInfoLocked()
}

func (s *Session) matchInfoLocked() MatchInfo {
	return MatchInfo{
		HumanColor: s.humanColor,
		AISkill:    s.aiSkill,
		HumanSkill: s.humanSkill,
		Date:       s.state.StartedAt,
	}
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		State:        s.state.Clone(),
		HumanColor:   s.humanColor,
		AISkill:      s.aiSkill,
		HumanSkill:   s.humanSkill,
		AIRank:       sgf.Rank(s.aiSkill),
		HumanRank:    sgf.Rank(s.humanSkill),
		SoundEnabled: s.soundEnabled,
		AIThinking:   s.aiThinking,
		LastMove:     s.state.LastPlaced(),
		Estimate:     s.state.Estimate(),
		Result:       s.state.Result(),
		Winner:       s.state.Winner(),
	}
}

func (s *Session) humanTurnLocked() error {
	if s.state.GameOver {
		return errs.ErrGameOver
	}
	if s.state.CurrentPlayer != s.humanColor {
		return errs.ErrNotYourTurn
	}
	return nil
}

// commitLocked applies m, fires cues, persists and hands the turn over.
func (s *Session) commitLocked(ctx context.Context, m game.Move) error {
	captured, err := s.state.Apply(m)
	if err != nil {
		return err
	}
	s.generation++

	switch {
	case captured > 0:
		s.cue(CueCapture)
	case m.IsPlace():
		s.cue(CueStone)
	}

	s.saveState(ctx)
	if s.state.GameOver {
		s.finishLocked(ctx)
		return nil
	}
	s.scheduleAILocked()
	return nil
}

// finishLocked adjusts both ratings and records the match.
func (s *Session) finishLocked(ctx context.Context) {
	outcome := game.OutcomeFor(s.state, s.humanColor)
	record := game.MatchRecord{
		ID:          s.cfg.NewID(),
		Date:        s.cfg.Now().UTC(),
		HumanColor:  s.humanColor,
		Outcome:     outcome,
		Result:      s.state.Result(),
		Resigned:    s.state.ResignedBy != game.Empty,
		AISkill:     s.aiSkill,
		HumanSkill:  s.humanSkill,
		MoveCount:   s.state.MoveCount,
		FinalScores: s.state.Scores,
	}
	s.history = game.AppendMatch(s.history, record)
	s.aiSkill, s.humanSkill = game.AdjustSkills(s.aiSkill, s.humanSkill, outcome)

	s.saveSkills(ctx)
	s.saveHistory(ctx)
	s.cue(CueGameOver)
	s.log.Infow("game over",
		"game_id", s.state.ID, "result", record.Result, "outcome", outcome,
		"ai_skill", s.aiSkill, "human_skill", s.humanSkill)
}

// scheduleAILocked arms the AI timer when the AI is to move.
func (s *Session) scheduleAILocked() {
	if s.state.GameOver || s.state.CurrentPlayer == s.humanColor || s.aiThinking {
		return
	}
	ctx, cancel := context.WithCancel(s.life)
	s.cancelAI = cancel
	s.aiThinking = true
	gen := s.generation
	delay := s.cfg.AIDelay

	go func() {
		defer cancel()
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		s.runAI(ctx, gen)
	}()
}

func (s *Session) cancelAILocked() {
	if s.cancelAI != nil {
		s.cancelAI()
		s.cancelAI = nil
	}
	s.aiThinking = false
}

// runAI computes and commits the AI move unless the game changed since it
// was scheduled.
func (s *Session) runAI(ctx context.Context, gen uint64) {
	_ = s.mutate(func() error {
		if ctx.Err() != nil || gen != s.generation {
			s.log.Debugw("discarding stale ai move", "game_id", s.state.ID)
			return errStale
		}
		s.cancelAILocked()
		if s.state.GameOver || s.state.CurrentPlayer == s.humanColor {
			s.log.Debugw("discarding ai move, not its turn", "game_id", s.state.ID)
			return errStale
		}

		aiColor := s.humanColor.Opponent()
		m := s.cfg.Pick(&s.state.Board, s.state.PreviousBoard, s.aiSkill, aiColor, s.cfg.Rand)
		s.log.Debugw("ai move", "game_id", s.state.ID, "move", m.String(), "skill", s.aiSkill)

		if err := s.commitLocked(s.life, m); err != nil {
			s.log.Errorw("ai produced an illegal move, passing", "move", m.String(), "error", err)
			return s.commitLocked(s.life, game.Pass(aiColor))
		}
		return nil
	})
}

var errStale = errors.New("stale ai move")
