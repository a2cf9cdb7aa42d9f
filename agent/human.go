package agent

import (
	"bufio"
	"fmt"
	"gametree/game"
	"gametree/searcher"
	"gametree/utils"
	"io"
)

// ParseMove turns a line typed by a human into a move.
type ParseMove[M comparable] func(line string) (M, error)

type humanAgent[M, P comparable] struct {
	in    *bufio.Scanner
	out   io.Writer
	parse ParseMove[M]
}

// NewHumanAgent returns an agent that prints the position to out and reads moves from in, one
// per line, until it gets a legal one.
func NewHumanAgent[M, P comparable](in io.Reader, out io.Writer, parse ParseMove[M]) Agent[M, P] {
	return &humanAgent[M, P]{in: bufio.NewScanner(in), out: out, parse: parse}
}

func (a *humanAgent[M, P]) FindMove(pos game.Position[M, P]) (M, searcher.SearchMetric, error) {
	var none M
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return none, searcher.SearchMetric{}, searcher.ErrNoLegalMove
	}

	fmt.Fprintf(a.out, "%v\n", pos)
	for {
		fmt.Fprintf(a.out, "your move %v: ", moves)
		if !a.in.Scan() {
			err := a.in.Err()
			if err == nil {
				err = io.EOF
			}
			return none, searcher.SearchMetric{}, fmt.Errorf("failed to read move: %w", err)
		}

		move, err := a.parse(a.in.Text())
		if err != nil {
			fmt.Fprintf(a.out, "%v\n", err)
			continue
		}
		if !utils.Contains(moves, move) {
			fmt.Fprintf(a.out, "%v: %v\n", game.ErrIllegalMove, move)
			continue
		}
		return move, searcher.SearchMetric{}, nil
	}
}
