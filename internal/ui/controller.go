package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"goboard/internal/domain/game"
	errs "goboard/internal/errors"
	gameuc "goboard/internal/usecase/game"
)

// Game is the part of the session the terminal client drives.
type Game interface {
	PlayHuman(ctx context.Context, pos int) error
	Pass(ctx context.Context) error
	Resign(ctx context.Context) error
	Undo(ctx context.Context) error
	NewGame(ctx context.Context, color game.Color) error
	ToggleSound(ctx context.Context) bool
	Snapshot() gameuc.Snapshot
	ExportSGF() string
	MatchInfo() gameuc.MatchInfo
}

// Controller turns key presses into game operations and keeps the board
// and the status text current.
type Controller struct {
	ctx       context.Context
	log       *zap.SugaredLogger
	game      Game
	board     *BoardView
	setStatus func(string)
	exportDir string
	quit      func()

	choosingColor bool
	message       string
}

func NewController(ctx context.Context, log *zap.SugaredLogger, g Game, board *BoardView, setStatus func(string), exportDir string, quit func()) *Controller {
	return &Controller{
		ctx:       ctx,
		log:       log,
		game:      g,
		board:     board,
		setStatus: setStatus,
		exportDir: exportDir,
		quit:      quit,
	}
}

// Refresh redraws from snap. Call it on the UI goroutine.
func (c *Controller) Refresh(snap gameuc.Snapshot) {
	c.board.SetSnapshot(snap)
	c.setStatus(StatusText(snap, c.prompt()))
}

func (c *Controller) prompt() string {
	if c.choosingColor {
		return "New game: play (b)lack or (w)hite?"
	}
	return c.message
}

// HandleKey is an input capture function for the application.
func (c *Controller) HandleKey(ev *tcell.EventKey) *tcell.EventKey {
	c.message = ""

	if c.choosingColor {
		c.choosingColor = false
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'b':
				c.report(c.game.NewGame(c.ctx, game.Black))
			case 'w':
				c.report(c.game.NewGame(c.ctx, game.White))
			}
		}
		c.Refresh(c.game.Snapshot())
		return nil
	}

	switch ev.Key() {
	case tcell.KeyUp:
		c.board.MoveCursor(-1, 0)
	case tcell.KeyDown:
		c.board.MoveCursor(1, 0)
	case tcell.KeyLeft:
		c.board.MoveCursor(0, -1)
	case tcell.KeyRight:
		c.board.MoveCursor(0, 1)
	case tcell.KeyEnter:
		c.report(c.game.PlayHuman(c.ctx, c.board.Cursor()))
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			c.board.MoveCursor(-1, 0)
		case 'j':
			c.board.MoveCursor(1, 0)
		case 'h':
			c.board.MoveCursor(0, -1)
		case 'l':
			c.board.MoveCursor(0, 1)
		case ' ':
			c.report(c.game.PlayHuman(c.ctx, c.board.Cursor()))
		case 'p':
			c.report(c.game.Pass(c.ctx))
		case 'r':
			c.report(c.game.Resign(c.ctx))
		case 'u':
			c.report(c.game.Undo(c.ctx))
		case 'n':
			c.choosingColor = true
		case 's':
			if c.game.ToggleSound(c.ctx) {
				c.message = "Sound on"
			} else {
				c.message = "Sound off"
			}
		case 'e':
			c.export()
		case 'q':
			c.quit()
			return nil
		default:
			return ev
		}
	default:
		return ev
	}

	c.Refresh(c.game.Snapshot())
	return nil
}

func (c *Controller) export() {
	path := filepath.Join(c.exportDir, gameuc.SGFFileName(c.game.MatchInfo().Date))
	if err := os.WriteFile(path, []byte(c.game.ExportSGF()), 0o644); err != nil {
		c.log.Errorw("sgf export failed", "path", path, "error", err)
		c.message = "Export failed: " + err.Error()
		return
	}
	c.message = "Saved " + path
}

func (c *Controller) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrIllegalMove):
		c.message = "Illegal move"
	case errors.Is(err, errs.ErrNotYourTurn):
		c.message = "Wait for the AI"
	case errors.Is(err, errs.ErrGameOver):
		c.message = "Game over, press n for a new game"
	case errors.Is(err, errs.ErrNothingToUndo):
		c.message = "Nothing to undo"
	default:
		c.log.Errorw("operation failed", "error", err)
		c.message = err.Error()
	}
}

// StatusText is the side panel content for snap, followed by message.
func StatusText(snap gameuc.Snapshot, message string) string {
	if snap.State == nil {
		return message
	}
	st := snap.State
	ai := snap.HumanColor.Opponent()

	var b strings.Builder
	fmt.Fprintf(&b, "You: %s (%s)\n", colorName(snap.HumanColor), snap.HumanRank)
	fmt.Fprintf(&b, "AI:  %s (%s)\n\n", colorName(ai), snap.AIRank)
	fmt.Fprintf(&b, "Move %d   Captures B %d  W %d\n", st.MoveCount, st.Captures.Black, st.Captures.White)

	switch {
	case st.GameOver:
		fmt.Fprintf(&b, "Game over: %s\n", snap.Result)
		if st.Scores != nil {
			fmt.Fprintf(&b, "Score: %s\n", st.Scores)
		}
	case snap.AIThinking:
		b.WriteString("AI is thinking...\n")
		fmt.Fprintf(&b, "Estimate: %s\n", snap.Estimate)
	default:
		fmt.Fprintf(&b, "Your move (%s)\n", colorName(snap.HumanColor))
		fmt.Fprintf(&b, "Estimate: %s\n", snap.Estimate)
	}

	sound := "off"
	if snap.SoundEnabled {
		sound = "on"
	}
	fmt.Fprintf(&b, "Sound: %s\n", sound)
	if message != "" {
		fmt.Fprintf(&b, "\n%s\n", message)
	}
	b.WriteString("\nhjkl/arrows move  enter place\np pass  r resign  u undo\nn new  s sound  e export  q quit")
	return b.String()
}

func colorName(c game.Color) string {
	s := c.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
