package game

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"goboard/internal/domain/game"
	"goboard/internal/domain/sgf"
)

const (
	HumanName = "Human"
	AIName    = "AI"
)

// MatchInfo carries the player details written into an exported record.
type MatchInfo struct {
	HumanColor game.Color
	AISkill    int
	HumanSkill int
	Date       time.Time
}

// ExportSGF serializes the move history of state. No move is re-validated.
func ExportSGF(state *game.State, info MatchInfo) string {
	record := PrepareSgfFile(state, info)
	AddMovesToSgf(record.Root, state.MoveHistory)
	return SerializeSGF(&record)
}

// SGFFileName is the download name for a record exported on day t.
func SGFFileName(t time.Time) string {
	return "go-game-" + t.Format("2006-01-02") + ".sgf"
}

// PrepareSgfFile собирает корневой узел с информацией о партии
func PrepareSgfFile(state *game.State, info MatchInfo) sgf.SGF {
	blackName, whiteName := HumanName, AIName
	blackRank, whiteRank := sgf.Rank(info.HumanSkill), sgf.Rank(info.AISkill)
	if info.HumanColor == game.White {
		blackName, whiteName = whiteName, blackName
		blackRank, whiteRank = whiteRank, blackRank
	}

	date := info.Date
	if date.IsZero() {
		date = state.StartedAt
	}

	props := map[string]string{
		"GM": "1",
		"FF": "4",
		"CA": "UTF-8",
		"AP": "goboard:1.0",
		"SZ": strconv.Itoa(game.Size),
		"KM": strconv.FormatFloat(game.Komi, 'f', 1, 64),
		"RU": "Japanese",
		"PB": blackName,
		"PW": whiteName,
		"BR": blackRank,
		"WR": whiteRank,
		"DT": date.Format("2006-01-02"),
	}
	if result := state.Result(); result != "" {
		props["RE"] = result
	}

	return sgf.SGF{
		Root: &sgf.GameTree{
			Nodes: []sgf.Node{sgf.NewNode(props)},
		},
	}
}

// AddMovesToSgf добавляет по узлу на каждый ход или пас. Для сдачи узла нет,
// она видна только в RE.
func AddMovesToSgf(tree *sgf.GameTree, moves []game.Move) {
	for _, move := range moves {
		if move.IsResign() {
			continue
		}
		key := "B"
		if move.Color == game.White {
			key = "W"
		}
		value := ""
		if move.IsPlace() {
			row, col := game.ToRowCol(move.Pos)
			value = sgf.Coord(row, col)
		}
		tree.Nodes = append(tree.Nodes, sgf.NewNode(map[string]string{key: value}))
	}
}

// фиксированный порядок свойств SGF, остальные идут по алфавиту
var orderedKeys = []string{"GM", "FF", "CA", "AP", "SZ", "KM", "RU", "PB", "PW", "BR", "WR", "DT", "RE", "C", "B", "W"}

func SerializeSGF(s *sgf.SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	serializeGameTree(&builder, s.Root)
	builder.WriteString(")\n")
	return builder.String()
}

func serializeGameTree(builder *strings.Builder, tree *sgf.GameTree) {
	for i, node := range tree.Nodes {
		builder.WriteString(";")

		used := make(map[string]bool)
		for _, key := range orderedKeys {
			if values, ok := node.Properties[key]; ok {
				used[key] = true
				writeProperty(builder, key, values)
			}
		}

		rest := make([]string, 0, len(node.Properties))
		for key := range node.Properties {
			if !used[key] {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			writeProperty(builder, key, node.Properties[key])
		}

		if i == 0 && len(tree.Nodes) > 1 {
			builder.WriteString("\n")
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}

func writeProperty(builder *strings.Builder, key string, values []string) {
	builder.WriteString(key)
	for _, v := range values {
		builder.WriteString(fmt.Sprintf("[%s]", escapeValue(v)))
	}
}

// escapeValue escapes the characters SGF reserves inside property values.
func escapeValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, "]", `\]`)
}
