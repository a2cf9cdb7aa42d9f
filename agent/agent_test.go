package agent

import (
	"bytes"
	"gametree/game"
	"gametree/game/tictactoe"
	"gametree/searcher"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) tictactoe.Position {
	t.Helper()
	p, err := tictactoe.Parse(s)
	require.NoError(t, err)
	return p
}

func TestSearchAgent(t *testing.T) {
	t.Run("plays the searched move with its metrics", func(t *testing.T) {
		a := NewSearchAgent[int, tictactoe.Mark](2, searcher.WithMetrics())

		move, metric, err := a.FindMove(mustParse(t, "XX....... X"))
		require.NoError(t, err)
		require.Equal(t, 2, move)
		require.Equal(t, 2, metric.Depth)
		require.Positive(t, metric.Nodes)
	})

	t.Run("no legal move", func(t *testing.T) {
		a := NewSearchAgent[int, tictactoe.Mark](2)
		_, _, err := a.FindMove(mustParse(t, "XXXOO.... O"))
		require.ErrorIs(t, err, searcher.ErrNoLegalMove)
	})
}

func TestRandomAgent(t *testing.T) {
	t.Run("plays legal moves", func(t *testing.T) {
		a := NewRandomAgent[int, tictactoe.Mark](1)
		var pos game.Position[int, tictactoe.Mark] = tictactoe.New()
		for !game.IsOver(pos) {
			move, _, err := a.FindMove(pos)
			require.NoError(t, err)
			require.Contains(t, pos.LegalMoves(), move)
			pos = pos.Play(move)
		}
	})

	t.Run("same seed plays the same moves", func(t *testing.T) {
		first := NewRandomAgent[int, tictactoe.Mark](9)
		second := NewRandomAgent[int, tictactoe.Mark](9)
		pos := tictactoe.New()
		for i := 0; i < 10; i++ {
			a, _, err := first.FindMove(pos)
			require.NoError(t, err)
			b, _, err := second.FindMove(pos)
			require.NoError(t, err)
			require.Equal(t, a, b)
		}
	})

	t.Run("no legal move", func(t *testing.T) {
		a := NewRandomAgent[int, tictactoe.Mark](1)
		_, _, err := a.FindMove(mustParse(t, "XXXOO.... O"))
		require.ErrorIs(t, err, searcher.ErrNoLegalMove)
	})
}

func TestHumanAgent(t *testing.T) {
	t.Run("asks again until the move is legal", func(t *testing.T) {
		var out bytes.Buffer
		in := strings.NewReader("centre\n0\n4\n")
		a := NewHumanAgent[int, tictactoe.Mark](in, &out, tictactoe.ParseMove)

		move, _, err := a.FindMove(mustParse(t, "X........ O"))
		require.NoError(t, err)
		require.Equal(t, 4, move)
		require.Contains(t, out.String(), game.ErrParse.Error())
		require.Contains(t, out.String(), game.ErrIllegalMove.Error())
		require.Equal(t, 3, strings.Count(out.String(), "your move"))
	})

	t.Run("reads one move per call", func(t *testing.T) {
		a := NewHumanAgent[int, tictactoe.Mark](strings.NewReader("4\n0\n"), io.Discard, tictactoe.ParseMove)

		first, _, err := a.FindMove(tictactoe.New())
		require.NoError(t, err)
		second, _, err := a.FindMove(tictactoe.New())
		require.NoError(t, err)
		require.Equal(t, []int{4, 0}, []int{first, second})
	})

	t.Run("end of input", func(t *testing.T) {
		a := NewHumanAgent[int, tictactoe.Mark](strings.NewReader("9\n"), io.Discard, tictactoe.ParseMove)
		_, _, err := a.FindMove(tictactoe.New())
		require.ErrorIs(t, err, io.EOF)
	})
}
