package game

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"goboard/internal/domain/game"
	errs "goboard/internal/errors"
)

// Persistence keys. The values are opaque strings to the store.
const (
	KeyGameState    = "go_game_state"
	KeyAISkill      = "go_ai_skill"
	KeyHumanSkill   = "go_human_skill"
	KeyHumanColor   = "go_human_color"
	KeyMatchHistory = "go_match_history"
	KeySoundEnabled = "go_sound_enabled"
)

const storeTimeout = 5 * time.Second

// KVStore is the persistence boundary: string-keyed blobs with get/set/remove.
// Get returns errs.ErrKeyNotFound for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// persisted is everything a session restores on start.
type persisted struct {
	state        *game.State
	aiSkill      int
	humanSkill   int
	humanColor   game.Color
	history      []game.MatchRecord
	soundEnabled bool
}

// load reads every key, falling back to defaults on any failure. A stored
// game is accepted only if its move history replays cleanly.
func (s *Session) load(ctx context.Context) persisted {
	p := persisted{
		aiSkill:      s.cfg.DefaultAISkill,
		humanSkill:   s.cfg.DefaultHumanSkill,
		humanColor:   s.cfg.DefaultHumanColor,
		history:      []game.MatchRecord{},
		soundEnabled: true,
	}

	if v, ok := s.get(ctx, KeyAISkill); ok {
		if n, err := strconv.Atoi(v); err == nil {
			p.aiSkill = game.ClampSkill(n)
		} else {
			s.log.Warnw("discarding stored ai skill", "value", v, "error", err)
		}
	}
	if v, ok := s.get(ctx, KeyHumanSkill); ok {
		if n, err := strconv.Atoi(v); err == nil {
			p.humanSkill = game.ClampSkill(n)
		} else {
			s.log.Warnw("discarding stored human skill", "value", v, "error", err)
		}
	}
	if v, ok := s.get(ctx, KeyHumanColor); ok {
		if c, valid := game.ParseColor(v); valid {
			p.humanColor = c
		} else {
			s.log.Warnw("discarding stored human color", "value", v)
		}
	}
	if v, ok := s.get(ctx, KeySoundEnabled); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			p.soundEnabled = b
		}
	}
	if v, ok := s.get(ctx, KeyMatchHistory); ok {
		var history []game.MatchRecord
		if err := json.Unmarshal([]byte(v), &history); err != nil {
			s.log.Warnw("discarding stored match history", "error", err)
		} else if history != nil {
			p.history = history
		}
	}
	if v, ok := s.get(ctx, KeyGameState); ok {
		p.state = s.decodeState(v)
	}
	if p.state == nil {
		p.state = game.NewState(s.cfg.NewID())
	}
	return p
}

func (s *Session) decodeState(raw string) *game.State {
	var stored game.State
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.log.Warnw("discarding stored game", "error", err)
		return nil
	}
	rebuilt, err := game.Replay(stored.ID, stored.StartedAt, stored.MoveHistory)
	if err != nil {
		s.log.Warnw("discarding stored game with inconsistent history", "game_id", stored.ID, "error", err)
		return nil
	}
	if rebuilt.ID == "" {
		rebuilt.ID = s.cfg.NewID()
	}
	return rebuilt
}

func (s *Session) get(ctx context.Context, key string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	v, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, errs.ErrKeyNotFound) {
			s.log.Warnw("storage read failed, using default", "key", key, "error", err)
		}
		return "", false
	}
	return v, true
}

func (s *Session) set(ctx context.Context, key, value string) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := s.store.Set(ctx, key, value); err != nil {
		s.log.Warnw("storage write failed", "key", key, "error", err)
	}
}

func (s *Session) remove(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := s.store.Remove(ctx, key); err != nil {
		s.log.Warnw("storage remove failed", "key", key, "error", err)
	}
}

func (s *Session) saveState(ctx context.Context) {
	raw, err := json.Marshal(s.state)
	if err != nil {
		s.log.Errorw("failed to encode game state", "error", err)
		return
	}
	s.set(ctx, KeyGameState, string(raw))
}

func (s *Session) saveSkills(ctx context.Context) {
	s.set(ctx, KeyAISkill, strconv.Itoa(s.aiSkill))
	s.set(ctx, KeyHumanSkill, strconv.Itoa(s.humanSkill))
}

func (s *Session) saveHistory(ctx context.Context) {
	raw, err := json.Marshal(s.history)
	if err != nil {
		s.log.Errorw("failed to encode match history", "error", err)
		return
	}
	s.set(ctx, KeyMatchHistory, string(raw))
}
