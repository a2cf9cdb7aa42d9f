// Package tictactoe implements noughts and crosses on a 3x3 board.
package tictactoe

import (
	"fmt"
	"gametree/game"
	"strings"

	"golang.org/x/exp/rand"
)

// Mark is the content of a cell and identifies a player.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) Opposite() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

const NumCells = 9

// Cells are indexed row-major from the top left corner.
type Board [NumCells]Mark

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// Position is a tic-tac-toe state. It is a value type: Play copies the board.
type Position struct {
	board Board
	turn  Mark
	rng   *rand.Rand
}

// New returns an empty board with X to move.
func New() Position {
	return Position{turn: X}
}

// FromBoard returns a position with the given board and player to move.
func FromBoard(board Board, turn Mark) Position {
	return Position{board: board, turn: turn}
}

// Shuffled returns a copy of p whose LegalMoves, and those of every position reached from it,
// come in an order drawn from rng.
func (p Position) Shuffled(rng *rand.Rand) Position {
	p.rng = rng
	return p
}

func (p Position) Board() Board {
	return p.board
}

func (p Position) Turn() Mark {
	return p.turn
}

func (p Position) Play(move int) game.Position[int, Mark] {
	if move < 0 || move >= NumCells || p.board[move] != Empty || p.IsWin() {
		panic(fmt.Sprintf("%v: cell %d", game.ErrIllegalMove, move))
	}
	next := p
	next.board[move] = p.turn
	next.turn = p.turn.Opposite()
	return next
}

func (p Position) LegalMoves() []int {
	if p.IsWin() {
		return nil
	}
	moves := make([]int, 0, NumCells)
	for cell, mark := range p.board {
		if mark == Empty {
			moves = append(moves, cell)
		}
	}
	if p.rng != nil {
		p.rng.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })
	}
	return moves
}

func (p Position) IsWin() bool {
	return p.Winner() != Empty
}

// Winner returns the mark that completed a line, or Empty.
func (p Position) Winner() Mark {
	for _, line := range lines {
		first := p.board[line[0]]
		if first != Empty && first == p.board[line[1]] && first == p.board[line[2]] {
			return first
		}
	}
	return Empty
}

// Evaluate scores a won position ±(1 + 0.1 per empty cell) so that quicker wins and slower
// losses are preferred. Undecided positions score 0.
func (p Position) Evaluate(player Mark) float64 {
	winner := p.Winner()
	if winner == Empty {
		return 0
	}
	score := 1 + 0.1*float64(p.empty())
	if winner != player {
		return -score
	}
	return score
}

func (p Position) empty() int {
	n := 0
	for _, mark := range p.board {
		if mark == Empty {
			n++
		}
	}
	return n
}

// Encode returns the compact form read by Parse: nine cells using X, O and '.', a space, then
// the player to move.
func (p Position) Encode() string {
	var sb strings.Builder
	for _, mark := range p.board {
		if mark == Empty {
			sb.WriteByte('.')
		} else {
			sb.WriteString(mark.String())
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(p.turn.String())
	return sb.String()
}

func (p Position) String() string {
	b := p.board
	return fmt.Sprintf("%v|%v|%v\n-----\n%v|%v|%v\n-----\n%v|%v|%v",
		b[0], b[1], b[2], b[3], b[4], b[5], b[6], b[7], b[8])
}

// Parse reads the form written by Encode. The player to move may be omitted, in which case
// it is inferred from the mark counts with X moving first.
func Parse(s string) (Position, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return Position{}, fmt.Errorf("%w: want \"<cells> [turn]\", got %q", game.ErrParse, s)
	}
	cells := fields[0]
	if len(cells) != NumCells {
		return Position{}, fmt.Errorf("%w: want %d cells, got %d", game.ErrParse, NumCells, len(cells))
	}

	var board Board
	xCount, oCount := 0, 0
	for i, c := range cells {
		switch c {
		case 'X', 'x':
			board[i] = X
			xCount++
		case 'O', 'o':
			board[i] = O
			oCount++
		case '.', '-', '_':
			board[i] = Empty
		default:
			return Position{}, fmt.Errorf("%w: unexpected cell %q", game.ErrParse, c)
		}
	}

	turn := X
	if xCount > oCount {
		turn = O
	}
	if len(fields) == 2 {
		mark, err := ParseMark(fields[1])
		if err != nil {
			return Position{}, err
		}
		turn = mark
	}
	return FromBoard(board, turn), nil
}

func ParseMark(s string) (Mark, error) {
	switch strings.ToUpper(s) {
	case "X":
		return X, nil
	case "O":
		return O, nil
	default:
		return Empty, fmt.Errorf("%w: unknown mark %q", game.ErrParse, s)
	}
}

// ParseMove reads a cell index typed by a human player.
func ParseMove(s string) (int, error) {
	var cell int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &cell); err != nil {
		return 0, fmt.Errorf("%w: cell %q", game.ErrParse, s)
	}
	return cell, nil
}
