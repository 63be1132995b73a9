package sgf

// GameTree представляет одно дерево в SGF (основная линия + варианты)
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

// Node представляет один узел SGF. Свойства могут повторяться (AB[aa][bb])
type Node struct {
	Properties map[string][]string
}

// NewNode builds a node holding a single value for each given property.
func NewNode(props map[string]string) Node {
	n := Node{Properties: make(map[string][]string, len(props))}
	for k, v := range props {
		n.Properties[k] = []string{v}
	}
	return n
}

// SGF представляет корневой элемент SGF-файла с одной партией
type SGF struct {
	Root *GameTree
}

// Coord переводит строку и столбец в точку SGF: сначала буква столбца,
// потом строки. (4,4) -> "ee".
func Coord(row, col int) string {
	return string(rune('a'+col)) + string(rune('a'+row))
}

// ParseCoord is the inverse of Coord. ok is false for the empty (pass) value
// or malformed input.
func ParseCoord(s string, size int) (row, col int, ok bool) {
	if len(s) != 2 {
		return 0, 0, false
	}
	col = int(s[0] - 'a')
	row = int(s[1] - 'a')
	if col < 0 || col >= size || row < 0 || row >= size {
		return 0, 0, false
	}
	return row, col, true
}
