package searcher

import (
	"gametree/game"

	"golang.org/x/exp/rand"
)

// mockNode is a node of an explicit game tree. Values are scored from maxPlayer's perspective.
type mockNode struct {
	value    float64
	win      bool
	children []*mockNode
}

const (
	maxPlayer = "max"
	minPlayer = "min"
)

type mockPosition struct {
	node *mockNode
	turn string
}

func (m mockPosition) Turn() string {
	return m.turn
}

func (m mockPosition) Play(move int) game.Position[int, string] {
	next := maxPlayer
	if m.turn == maxPlayer {
		next = minPlayer
	}
	return mockPosition{node: m.node.children[move], turn: next}
}

func (m mockPosition) LegalMoves() []int {
	moves := make([]int, len(m.node.children))
	for i := range moves {
		moves[i] = i
	}
	return moves
}

func (m mockPosition) IsWin() bool {
	return m.node.win
}

func (m mockPosition) Evaluate(player string) float64 {
	if player == maxPlayer {
		return m.node.value
	}
	return -m.node.value
}

func leaf(value float64) *mockNode {
	return &mockNode{value: value}
}

func tree(children ...*mockNode) *mockNode {
	return &mockNode{children: children}
}

// randomTree builds a tree of the given height with 1 to maxBranching children per inner node
// and small integer values so that ties are common.
func randomTree(rng *rand.Rand, height, maxBranching int) *mockNode {
	n := &mockNode{value: float64(rng.Intn(11) - 5)}
	if height == 0 {
		return n
	}
	if rng.Intn(10) == 0 { // Occasionally a decided position before the bottom
		n.win = true
		return n
	}
	branching := 1 + rng.Intn(maxBranching)
	for i := 0; i < branching; i++ {
		n.children = append(n.children, randomTree(rng, height-1, maxBranching))
	}
	return n
}

// uniformTree builds a tree of the given height where every inner node has branching children
// and every node has the same value.
func uniformTree(height, branching int, value float64) *mockNode {
	n := &mockNode{value: value}
	if height == 0 {
		return n
	}
	for i := 0; i < branching; i++ {
		n.children = append(n.children, uniformTree(height-1, branching, value))
	}
	return n
}

// reversed returns a copy of n with the children of every node in reverse order.
func reversed(n *mockNode) *mockNode {
	out := &mockNode{value: n.value, win: n.win}
	for i := len(n.children) - 1; i >= 0; i-- {
		out.children = append(out.children, reversed(n.children[i]))
	}
	return out
}
