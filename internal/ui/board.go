// Package ui draws the game in a terminal with tview and maps keys onto
// session operations.
package ui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"goboard/internal/domain/game"
	gameuc "goboard/internal/usecase/game"
)

const (
	labelWidth   = 3
	columnLabels = "ABCDEFGHJ"
)

var (
	boardColor    = tcell.NewRGBColor(222, 184, 135)
	lineColor     = tcell.NewRGBColor(90, 60, 30)
	cursorColor   = tcell.ColorLightSkyBlue
	lastMoveColor = tcell.ColorIndianRed
)

// BoardView is a tview primitive showing the board with a movable cursor.
// Each intersection is two columns wide so the board looks square.
type BoardView struct {
	*tview.Box

	mu     sync.Mutex
	snap   gameuc.Snapshot
	cursor int
}

func NewBoardView() *BoardView {
	return &BoardView{
		Box:    tview.NewBox(),
		cursor: game.ToIndex(game.Size/2, game.Size/2),
	}
}

func (b *BoardView) SetSnapshot(snap gameuc.Snapshot) {
	b.mu.Lock()
	b.snap = snap
	b.mu.Unlock()
}

// Cursor is the index of the selected intersection.
func (b *BoardView) Cursor() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor
}

// MoveCursor shifts the cursor, stopping at the edges.
func (b *BoardView) MoveCursor(dRow, dCol int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	row, col := game.ToRowCol(b.cursor)
	row = clamp(row+dRow, 0, game.Size-1)
	col = clamp(col+dCol, 0, game.Size-1)
	b.cursor = game.ToIndex(row, col)
}

func (b *BoardView) Draw(screen tcell.Screen) {
	b.Box.DrawForSubclass(screen, b)
	x, y, _, _ := b.GetInnerRect()

	b.mu.Lock()
	snap, cursor := b.snap, b.cursor
	b.mu.Unlock()

	var board game.Board
	if snap.State != nil {
		board = snap.State.Board
	}

	grid := tcell.StyleDefault.Background(boardColor).Foreground(lineColor)
	for pos := 0; pos < game.Total; pos++ {
		row, col := game.ToRowCol(pos)
		style := grid
		r := gridRune(pos)
		switch board[pos] {
		case game.Black:
			r = '●'
			style = style.Foreground(tcell.ColorBlack)
		case game.White:
			r = '○'
			style = style.Foreground(tcell.ColorWhite)
		}
		if pos == snap.LastMove && snap.State != nil {
			style = style.Background(lastMoveColor)
		}
		if pos == cursor {
			style = style.Background(cursorColor)
		}

		cx := x + labelWidth + col*2
		screen.SetContent(cx, y+row, r, nil, style)
		right := '─'
		if col == game.Size-1 {
			right = ' '
		}
		screen.SetContent(cx+1, y+row, right, nil, grid)
	}

	for i := 0; i < game.Size; i++ {
		screen.SetContent(x+1, y+i, rune('0'+game.Size-i), nil, tcell.StyleDefault)
		screen.SetContent(x+labelWidth+i*2, y+game.Size, rune(columnLabels[i]), nil, tcell.StyleDefault)
	}
}

// gridRune is the box drawing character for an empty intersection.
func gridRune(pos int) rune {
	if game.IsStarPoint(pos) {
		return '╋'
	}
	row, col := game.ToRowCol(pos)
	top, bottom := row == 0, row == game.Size-1
	left, right := col == 0, col == game.Size-1
	switch {
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top:
		return '┬'
	case bottom:
		return '┴'
	case left:
		return '├'
	case right:
		return '┤'
	}
	return '┼'
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
