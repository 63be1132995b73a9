package game

// Cue is an audio event emitted by the session.
type Cue string

const (
	CueStone    Cue = "stone"
	CueCapture  Cue = "capture"
	CueGameOver Cue = "game_over"
)

// SoundPlayer plays cues. Implementations may block or fail; the session
// never waits on them.
type SoundPlayer interface {
	Play(cue Cue)
}

// cue fires c in the background when sound is on. Must hold s.mu.
func (s *Session) cue(c Cue) {
	if !s.soundEnabled || s.sounds == nil {
		return
	}
	player := s.sounds
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Warnw("sound cue failed", "cue", c, "panic", r)
			}
		}()
		player.Play(c)
	}()
}
