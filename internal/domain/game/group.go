package game

// Group is a maximal set of same-colored, orthogonally connected stones
// together with the empty cells touching it.
type Group struct {
	Color     Color
	Stones    map[int]struct{}
	Liberties map[int]struct{}
}

// Contains reports whether index is one of the group's stones.
func (g *Group) Contains(index int) bool {
	_, ok := g.Stones[index]
	return ok
}

// Size is the number of stones in the group.
func (g *Group) Size() int { return len(g.Stones) }

// InAtari reports whether the group has exactly one liberty left.
func (g *Group) InAtari() bool { return len(g.Liberties) == 1 }

// GroupAndLiberties flood-fills from seed over same-colored neighbors.
// It returns false when the seed cell is empty. Nothing is cached: the
// board changes every move.
func GroupAndLiberties(b *Board, seed int) (Group, bool) {
	color := b[seed]
	if color == Empty {
		return Group{}, false
	}
	g := Group{
		Color:     color,
		Stones:    make(map[int]struct{}),
		Liberties: make(map[int]struct{}),
	}
	stack := []int{seed}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := g.Stones[cur]; seen {
			continue
		}
		g.Stones[cur] = struct{}{}
		for _, n := range Neighbors(cur) {
			switch b[n] {
			case Empty:
				g.Liberties[n] = struct{}{}
			case color:
				if _, seen := g.Stones[n]; !seen {
					stack = append(stack, n)
				}
			}
		}
	}
	return g, true
}

// LibertyCount is the liberty count of the group at index, or 0 if empty.
func LibertyCount(b *Board, index int) int {
	g, ok := GroupAndLiberties(b, index)
	if !ok {
		return 0
	}
	return len(g.Liberties)
}

// Groups partitions every stone of the board into its groups, scanning
// indices in ascending order.
func Groups(b *Board) []Group {
	visited := make(map[int]struct{})
	var groups []Group
	for i := 0; i < Total; i++ {
		if b[i] == Empty {
			continue
		}
		if _, seen := visited[i]; seen {
			continue
		}
		g, _ := GroupAndLiberties(b, i)
		for s := range g.Stones {
			visited[s] = struct{}{}
		}
		groups = append(groups, g)
	}
	return groups
}

// TotalLiberties sums the liberty counts of every group of color c. A cell
// shared by two groups is counted once per group.
func TotalLiberties(b *Board, c Color) int {
	total := 0
	for _, g := range Groups(b) {
		if g.Color == c {
			total += len(g.Liberties)
		}
	}
	return total
}
