package ui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goboard/internal/domain/game"
	errs "goboard/internal/errors"
	gameuc "goboard/internal/usecase/game"
)

type fakeGame struct {
	calls    []string
	played   []int
	newColor game.Color
	err      error
	sound    bool
	state    *game.State
}

func (f *fakeGame) PlayHuman(_ context.Context, pos int) error {
	f.calls = append(f.calls, "play")
	f.played = append(f.played, pos)
	return f.err
}
func (f *fakeGame) Pass(context.Context) error   { f.calls = append(f.calls, "pass"); return f.err }
func (f *fakeGame) Resign(context.Context) error { f.calls = append(f.calls, "resign"); return f.err }
func (f *fakeGame) Undo(context.Context) error   { f.calls = append(f.calls, "undo"); return f.err }
func (f *fakeGame) NewGame(_ context.Context, c game.Color) error {
	f.calls = append(f.calls, "new")
	f.newColor = c
	return f.err
}
func (f *fakeGame) ToggleSound(context.Context) bool {
	f.sound = !f.sound
	return f.sound
}
func (f *fakeGame) Snapshot() gameuc.Snapshot {
	if f.state == nil {
		f.state = game.NewState("t")
	}
	return gameuc.Snapshot{State: f.state, HumanColor: game.Black, AIRank: "30k", HumanRank: "30k", LastMove: -1}
}
func (f *fakeGame) ExportSGF() string { return "(;GM[1])\n" }
func (f *fakeGame) MatchInfo() gameuc.MatchInfo {
	return gameuc.MatchInfo{Date: time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)}
}

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }
func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func newTestController(t *testing.T, g Game) (*Controller, *BoardView, *string, *bool) {
	t.Helper()
	board := NewBoardView()
	status := new(string)
	quit := new(bool)
	c := NewController(context.Background(), zap.NewNop().Sugar(), g, board,
		func(s string) { *status = s }, t.TempDir(), func() { *quit = true })
	return c, board, status, quit
}

func TestMoveCursorStopsAtEdges(t *testing.T) {
	b := NewBoardView()
	assert.Equal(t, 40, b.Cursor())

	b.MoveCursor(-1, 0)
	assert.Equal(t, 31, b.Cursor())
	for i := 0; i < 20; i++ {
		b.MoveCursor(-1, -1)
	}
	assert.Equal(t, 0, b.Cursor())
	for i := 0; i < 20; i++ {
		b.MoveCursor(1, 1)
	}
	assert.Equal(t, 80, b.Cursor())
}

func TestGridRune(t *testing.T) {
	assert.Equal(t, '┌', gridRune(0))
	assert.Equal(t, '┐', gridRune(8))
	assert.Equal(t, '└', gridRune(72))
	assert.Equal(t, '┘', gridRune(80))
	assert.Equal(t, '╋', gridRune(40))
	assert.Equal(t, '┼', gridRune(10))
	assert.Equal(t, '┬', gridRune(4))
}

func TestBoardViewDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 12)

	st := game.NewState("d")
	_, err := st.Apply(game.Place(game.Black, 0))
	require.NoError(t, err)
	_, err = st.Apply(game.Place(game.White, 80))
	require.NoError(t, err)

	b := NewBoardView()
	b.SetRect(0, 0, 40, 12)
	b.SetSnapshot(gameuc.Snapshot{State: st, LastMove: 80})
	b.Draw(screen)

	cell := func(x, y int) rune {
		r, _, _, _ := screen.GetContent(x, y)
		return r
	}
	assert.Equal(t, '●', cell(labelWidth, 0))
	assert.Equal(t, '○', cell(labelWidth+16, 8))
	assert.Equal(t, '╋', cell(labelWidth+8, 4))
	assert.Equal(t, '9', cell(1, 0))
	assert.Equal(t, '1', cell(1, 8))
	assert.Equal(t, 'A', cell(labelWidth, 9))
	assert.Equal(t, 'J', cell(labelWidth+16, 9))

	_, _, cursorStyle, _ := screen.GetContent(labelWidth+8, 4)
	_, bg, _ := cursorStyle.Decompose()
	assert.Equal(t, cursorColor, bg)
}

func TestControllerKeys(t *testing.T) {
	g := &fakeGame{}
	c, board, status, quit := newTestController(t, g)

	assert.Nil(t, c.HandleKey(runeKey('k')))
	assert.Nil(t, c.HandleKey(key(tcell.KeyLeft)))
	assert.Equal(t, 30, board.Cursor())

	c.HandleKey(key(tcell.KeyEnter))
	c.HandleKey(runeKey(' '))
	c.HandleKey(runeKey('p'))
	c.HandleKey(runeKey('r'))
	c.HandleKey(runeKey('u'))
	assert.Equal(t, []string{"play", "play", "pass", "resign", "undo"}, g.calls)
	assert.Equal(t, []int{30, 30}, g.played)
	assert.Contains(t, *status, "Your move (Black)")

	c.HandleKey(runeKey('n'))
	assert.Contains(t, *status, "(b)lack or (w)hite")
	c.HandleKey(runeKey('w'))
	assert.Equal(t, game.White, g.newColor)
	assert.NotContains(t, *status, "(b)lack or (w)hite")

	c.HandleKey(runeKey('s'))
	assert.Contains(t, *status, "Sound on")

	ev := runeKey('z')
	assert.Same(t, ev, c.HandleKey(ev), "unbound keys pass through")

	c.HandleKey(runeKey('q'))
	assert.True(t, *quit)
}

func TestControllerReportsErrors(t *testing.T) {
	g := &fakeGame{err: errs.ErrIllegalMove}
	c, _, status, _ := newTestController(t, g)

	c.HandleKey(key(tcell.KeyEnter))
	assert.Contains(t, *status, "Illegal move")

	g.err = errs.ErrNothingToUndo
	c.HandleKey(runeKey('u'))
	assert.Contains(t, *status, "Nothing to undo")
	assert.NotContains(t, *status, "Illegal move")
}

func TestControllerExport(t *testing.T) {
	g := &fakeGame{}
	c, _, status, _ := newTestController(t, g)

	c.HandleKey(runeKey('e'))
	path := filepath.Join(c.exportDir, "go-game-2024-07-04.sgf")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "(;GM[1])\n", string(raw))
	assert.Contains(t, *status, "Saved")
}

func TestStatusText(t *testing.T) {
	st := game.NewState("s")
	_, err := st.Apply(game.Resign(game.Black))
	require.NoError(t, err)

	text := StatusText(gameuc.Snapshot{
		State:      st,
		HumanColor: game.Black,
		HumanRank:  "25k",
		AIRank:     "3d",
		Result:     st.Result(),
	}, "hello")

	assert.Contains(t, text, "You: Black (25k)")
	assert.Contains(t, text, "AI:  White (3d)")
	assert.Contains(t, text, "Game over: W+R")
	assert.Contains(t, text, "Sound: off")
	assert.Contains(t, text, "hello")
}

type beepScreen struct {
	tcell.Screen
	beeps int
}

func (s *beepScreen) Beep() error {
	s.beeps++
	return nil
}

func TestBell(t *testing.T) {
	s := &beepScreen{}
	b := Bell{Screen: s}
	b.Play(gameuc.CueStone)
	b.Play(gameuc.CueCapture)
	b.Play(gameuc.CueGameOver)
	assert.Equal(t, 2, s.beeps)

	assert.NotPanics(t, func() { Bell{}.Play(gameuc.CueCapture) })
}
