package searcher

import (
	"gametree/game"
	"gametree/game/tictactoe"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/**
Tests alpha-beta against the unpruned minimax reference
- agreement: same root value for any tree, depth, side to move and move order
- terminal: win, draw and depth 0 return the evaluation for the searching player
- bounds: siblings see bounds refined by earlier siblings only
- pruning: strictly fewer evaluations than minimax on trees with branching >= 2 and depth >= 3
*/

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	t.Run("random trees at every depth and side to move", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 300; i++ {
			root := mockPosition{node: randomTree(rng, 6, 4), turn: maxPlayer}
			for depth := 0; depth <= 6; depth++ {
				for _, maximizing := range []bool{true, false} {
					want := Minimax[int, string](root, maximizing, maxPlayer, depth)
					got := AlphaBeta[int, string](root, maximizing, maxPlayer, depth, negInf, posInf)
					require.Equal(t, want, got, "tree %d depth %d maximizing %v", i, depth, maximizing)
				}
			}
		}
	})

	t.Run("reversing move order changes nothing", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 100; i++ {
			node := randomTree(rng, 5, 3)
			root := mockPosition{node: node, turn: maxPlayer}
			mirrored := mockPosition{node: reversed(node), turn: maxPlayer}
			for depth := 0; depth <= 5; depth++ {
				want := Minimax[int, string](root, true, maxPlayer, depth)
				require.Equal(t, want, AlphaBeta[int, string](root, true, maxPlayer, depth, negInf, posInf))
				require.Equal(t, want, AlphaBeta[int, string](mirrored, true, maxPlayer, depth, negInf, posInf))
			}
		}
	})

	t.Run("scoring from the minimizing player's perspective", func(t *testing.T) {
		rng := rand.New(rand.NewSource(99))
		for i := 0; i < 100; i++ {
			root := mockPosition{node: randomTree(rng, 4, 3), turn: minPlayer}
			for depth := 0; depth <= 4; depth++ {
				want := Minimax[int, string](root, true, minPlayer, depth)
				got := AlphaBeta[int, string](root, true, minPlayer, depth, negInf, posInf)
				require.Equal(t, want, got)
			}
		}
	})

	t.Run("shallow tic-tac-toe positions", func(t *testing.T) {
		for _, pos := range reachableTicTacToe(t) {
			for depth := 0; depth <= 2; depth++ {
				want := Minimax[int, tictactoe.Mark](pos, true, pos.Turn(), depth)
				got := AlphaBeta[int, tictactoe.Mark](pos, true, pos.Turn(), depth, negInf, posInf)
				require.Equal(t, want, got, "position %s depth %d", pos.Encode(), depth)
			}
		}
	})

	t.Run("full-depth tic-tac-toe from the empty board", func(t *testing.T) {
		root := tictactoe.New()
		want := Minimax[int, tictactoe.Mark](root, true, tictactoe.X, 9)
		got := AlphaBeta[int, tictactoe.Mark](root, true, tictactoe.X, 9, negInf, posInf)
		require.Equal(t, want, got)
		require.Equal(t, 0.0, got, "Perfect play draws")
	})
}

func TestAlphaBetaTerminal(t *testing.T) {
	t.Run("depth 0 evaluates the position itself", func(t *testing.T) {
		root := mockPosition{node: tree(leaf(5), leaf(9)), turn: maxPlayer}
		root.node.value = 3

		require.Equal(t, 3.0, AlphaBeta[int, string](root, true, maxPlayer, 0, negInf, posInf))
		require.Equal(t, -3.0, AlphaBeta[int, string](root, true, minPlayer, 0, negInf, posInf))
	})

	t.Run("won position is not expanded", func(t *testing.T) {
		node := tree(leaf(100))
		node.value = -7
		node.win = true
		root := mockPosition{node: node, turn: maxPlayer}

		require.Equal(t, -7.0, AlphaBeta[int, string](root, true, maxPlayer, 3, negInf, posInf))
		require.Equal(t, -7.0, Minimax[int, string](root, true, maxPlayer, 3))
	})

	t.Run("drawn position is evaluated", func(t *testing.T) {
		root := mockPosition{node: leaf(0.5), turn: minPlayer}
		require.True(t, game.IsDraw[int, string](root))

		require.Equal(t, 0.5, AlphaBeta[int, string](root, false, maxPlayer, 4, negInf, posInf))
	})

	t.Run("player perspective stays fixed through the recursion", func(t *testing.T) {
		// max to move picks the larger child, min then the smaller grandchild
		root := mockPosition{node: tree(
			tree(leaf(1), leaf(8)),
			tree(leaf(4), leaf(6)),
		), turn: maxPlayer}

		require.Equal(t, 4.0, AlphaBeta[int, string](root, true, maxPlayer, 2, negInf, posInf))
		require.Equal(t, 4.0, Minimax[int, string](root, true, maxPlayer, 2))
	})
}

func TestAlphaBetaPruning(t *testing.T) {
	t.Run("cutoff skips the remaining siblings", func(t *testing.T) {
		// After the first min child returns 3, the second min child is cut off as soon as it
		// sees 2: max already has 3 guaranteed.
		root := mockPosition{node: tree(
			tree(leaf(3), leaf(12), leaf(8)),
			tree(leaf(2), leaf(4), leaf(6)),
			tree(leaf(14), leaf(5), leaf(2)),
		), turn: maxPlayer}

		metrics := NewCollector()
		metrics.Start(2)
		got := alphaBeta[int, string](root, true, maxPlayer, 2, negInf, posInf, metrics)
		metric := metrics.Complete()

		require.Equal(t, 3.0, got)
		require.Equal(t, int64(7), metric.Evaluations, "Should skip 4 and 6 under the second child")
		require.Equal(t, int64(1), metric.Cutoffs)
	})

	t.Run("bounds narrowed in one subtree do not leak into its siblings", func(t *testing.T) {
		// A subtree returning a bound must only influence its parent through its value.
		root := mockPosition{node: tree(
			tree(tree(leaf(5), leaf(6)), tree(leaf(7), leaf(4))),
			tree(tree(leaf(3), leaf(0)), tree(leaf(9), leaf(1))),
		), turn: maxPlayer}

		want := Minimax[int, string](root, true, maxPlayer, 3)
		got := AlphaBeta[int, string](root, true, maxPlayer, 3, negInf, posInf)
		require.Equal(t, want, got)
		require.Equal(t, 6.0, got)
	})

	t.Run("fewer evaluations than minimax on a uniform tree", func(t *testing.T) {
		root := mockPosition{node: uniformTree(3, 2, 0), turn: maxPlayer}
		requireFewerEvaluations[int, string](t, root, maxPlayer, 3)
	})

	t.Run("fewer evaluations than minimax on the empty tic-tac-toe board", func(t *testing.T) {
		for depth := 3; depth <= 5; depth++ {
			requireFewerEvaluations[int, tictactoe.Mark](t, tictactoe.New(), tictactoe.X, depth)
		}
	})
}

func requireFewerEvaluations[M, P comparable](t *testing.T, root game.Position[M, P], player P, depth int) {
	t.Helper()

	pruned := NewCollector()
	pruned.Start(depth)
	got := alphaBeta(root, true, player, depth, negInf, posInf, pruned)

	full := NewCollector()
	full.Start(depth)
	want := minimax(root, true, player, depth, full)

	require.Equal(t, want, got, "Pruning must not change the root value")
	require.Less(t, pruned.Complete().Evaluations, full.Complete().Evaluations)
	require.Less(t, pruned.Complete().Nodes, full.Complete().Nodes)
}

// reachableTicTacToe enumerates every position reachable from the empty board.
func reachableTicTacToe(t *testing.T) []tictactoe.Position {
	t.Helper()

	seen := map[string]bool{}
	var out []tictactoe.Position
	var visit func(pos tictactoe.Position)
	visit = func(pos tictactoe.Position) {
		key := pos.Encode()
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, pos)
		for _, move := range pos.LegalMoves() {
			visit(pos.Play(move).(tictactoe.Position))
		}
	}
	visit(tictactoe.New())

	require.Equal(t, 5478, len(out), "Tic-tac-toe has 5478 reachable positions")
	return out
}
