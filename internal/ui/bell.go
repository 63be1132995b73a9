package ui

import (
	"github.com/gdamore/tcell/v2"

	gameuc "goboard/internal/usecase/game"
)

// Bell rings the terminal bell for captures and the end of a game.
// Plain stone placements stay silent.
type Bell struct {
	Screen tcell.Screen
}

func (b Bell) Play(cue gameuc.Cue) {
	if cue == gameuc.CueStone || b.Screen == nil {
		return
	}
	_ = b.Screen.Beep()
}
