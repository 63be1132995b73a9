package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"goboard/internal/domain/game"
	"goboard/internal/domain/sgf"
	gameuc "goboard/internal/usecase/game"
)

// Board diagram geometry, millimetres on A4 portrait.
const (
	boardLeft   = 40.0
	boardTop    = 50.0
	cellSize    = 14.0
	stoneRadius = 6.2
	starRadius  = 1.0
)

// column letters skip I, as on a real board
const columnLabels = "ABCDEFGHJ"

// FileName is the download name for a report created on day t.
func FileName(t time.Time) string {
	return "go-game-" + t.Format("2006-01-02") + ".pdf"
}

// Label renders a board index the way players read it, e.g. 40 -> "E5".
func Label(pos int) string {
	row, col := game.ToRowCol(pos)
	return fmt.Sprintf("%c%d", columnLabels[col], game.Size-row)
}

// MoveList is the numbered, human readable move sequence.
func MoveList(moves []game.Move) []string {
	out := make([]string, 0, len(moves))
	for i, m := range moves {
		who := "B"
		if m.Color == game.White {
			who = "W"
		}
		var what string
		switch {
		case m.IsPlace():
			what = Label(m.Pos)
		case m.IsPass():
			what = "pass"
		default:
			what = "resigns"
		}
		out = append(out, fmt.Sprintf("%d. %s %s", i+1, who, what))
	}
	return out
}

// GameReport writes a one page PDF with the game header, the final (or
// current) position and the move list.
func GameReport(w io.Writer, st *game.State, info gameuc.MatchInfo) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Go game "+st.ID, true)
	pdf.AddPage()

	writeHeader(pdf, st, info)
	drawBoard(pdf, &st.Board, st.LastPlaced())
	writeMoves(pdf, st.MoveHistory)

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func writeHeader(pdf *gofpdf.Fpdf, st *game.State, info gameuc.MatchInfo) {
	black, white := gameuc.HumanName, gameuc.AIName
	blackRank, whiteRank := sgf.Rank(info.HumanSkill), sgf.Rank(info.AISkill)
	if info.HumanColor == game.White {
		black, white = white, black
		blackRank, whiteRank = whiteRank, blackRank
	}
	date := info.Date
	if date.IsZero() {
		date = st.StartedAt
	}
	result := st.Result()
	if result == "" {
		result = "in progress (" + st.Estimate().String() + ")"
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Go 9x9", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Date: "+date.Format("2006-01-02"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Black: %s (%s)   White: %s (%s)", black, blackRank, white, whiteRank), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Komi: %.1f   Captures: B %d, W %d", game.Komi, st.Captures.Black, st.Captures.White), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Result: "+result, "", 1, "L", false, 0, "")
}

func drawBoard(pdf *gofpdf.Fpdf, b *game.Board, last int) {
	span := cellSize * (game.Size - 1)

	pdf.SetFillColor(222, 184, 135)
	pdf.Rect(boardLeft-cellSize/2, boardTop-cellSize/2, span+cellSize, span+cellSize, "F")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	for i := 0; i < game.Size; i++ {
		offset := float64(i) * cellSize
		pdf.Line(boardLeft, boardTop+offset, boardLeft+span, boardTop+offset)
		pdf.Line(boardLeft+offset, boardTop, boardLeft+offset, boardTop+span)
	}

	pdf.SetFont("Helvetica", "", 8)
	for i := 0; i < game.Size; i++ {
		offset := float64(i) * cellSize
		pdf.Text(boardLeft+offset-1, boardTop+span+cellSize*0.9, string(columnLabels[i]))
		pdf.Text(boardLeft-cellSize*0.95, boardTop+offset+1, fmt.Sprint(game.Size-i))
	}

	pdf.SetFillColor(0, 0, 0)
	for _, p := range game.StarPoints {
		x, y := point(p)
		pdf.Circle(x, y, starRadius, "F")
	}

	for pos, c := range b {
		if c == game.Empty {
			continue
		}
		x, y := point(pos)
		if c == game.Black {
			pdf.SetFillColor(0, 0, 0)
			pdf.Circle(x, y, stoneRadius, "F")
		} else {
			pdf.SetFillColor(255, 255, 255)
			pdf.Circle(x, y, stoneRadius, "FD")
		}
	}

	if game.OnBoard(last) && b[last] != game.Empty {
		x, y := point(last)
		if b[last] == game.Black {
			pdf.SetDrawColor(255, 255, 255)
		}
		pdf.Circle(x, y, stoneRadius/2.5, "D")
		pdf.SetDrawColor(0, 0, 0)
	}
}

func writeMoves(pdf *gofpdf.Fpdf, moves []game.Move) {
	pdf.SetXY(10, boardTop+cellSize*game.Size+6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Moves", "", 1, "L", false, 0, "")
	pdf.SetFont("Courier", "", 9)
	if len(moves) == 0 {
		pdf.MultiCell(0, 4.5, "none", "", "L", false)
		return
	}
	pdf.MultiCell(0, 4.5, strings.Join(MoveList(moves), "   "), "", "L", false)
}

func point(pos int) (float64, float64) {
	row, col := game.ToRowCol(pos)
	return boardLeft + float64(col)*cellSize, boardTop + float64(row)*cellSize
}
