// Package connect4 implements four-in-a-row on a 7x6 board with gravity.
package connect4

import (
	"fmt"
	"gametree/game"
	"strings"

	"golang.org/x/exp/rand"
)

const (
	NumColumns    = 7
	NumRows       = 6
	SegmentLength = 4

	// WinScore exceeds any sum of segment scores, so a decided position always outranks an
	// undecided one.
	WinScore = 1_000_000
)

// Piece is the content of a slot and identifies a player.
type Piece uint8

const (
	Empty Piece = iota
	Black
	Red
)

func (p Piece) Opposite() Piece {
	switch p {
	case Black:
		return Red
	case Red:
		return Black
	default:
		return Empty
	}
}

func (p Piece) String() string {
	switch p {
	case Black:
		return "B"
	case Red:
		return "R"
	default:
		return " "
	}
}

type slot struct {
	column, row int
}

// segments lists every run of SegmentLength slots in a line.
var segments = generateSegments()

func generateSegments() [][SegmentLength]slot {
	var out [][SegmentLength]slot
	directions := []slot{
		{0, 1},  // vertical
		{1, 0},  // horizontal
		{1, 1},  // rising diagonal
		{1, -1}, // falling diagonal
	}
	for _, d := range directions {
		for c := 0; c < NumColumns; c++ {
			for r := 0; r < NumRows; r++ {
				lastColumn := c + d.column*(SegmentLength-1)
				lastRow := r + d.row*(SegmentLength-1)
				if lastColumn >= NumColumns || lastRow < 0 || lastRow >= NumRows {
					continue
				}
				var segment [SegmentLength]slot
				for t := 0; t < SegmentLength; t++ {
					segment[t] = slot{c + d.column*t, r + d.row*t}
				}
				out = append(out, segment)
			}
		}
	}
	return out
}

// Position is a four-in-a-row state. Columns are filled from row 0 upwards.
type Position struct {
	columns [NumColumns][NumRows]Piece
	heights [NumColumns]int
	turn    Piece
	rng     *rand.Rand
}

// New returns an empty board with Black to move.
func New() Position {
	return Position{turn: Black}
}

// Shuffled returns a copy of p whose LegalMoves, and those of every position reached from it,
// come in an order drawn from rng.
func (p Position) Shuffled(rng *rand.Rand) Position {
	p.rng = rng
	return p
}

func (p Position) Turn() Piece {
	return p.turn
}

// At returns the piece in column c at row r, counting rows from the bottom.
func (p Position) At(c, r int) Piece {
	return p.columns[c][r]
}

func (p Position) Play(column int) game.Position[int, Piece] {
	if column < 0 || column >= NumColumns || p.heights[column] == NumRows || p.IsWin() {
		panic(fmt.Sprintf("%v: column %d", game.ErrIllegalMove, column))
	}
	next := p
	next.columns[column][p.heights[column]] = p.turn
	next.heights[column]++
	next.turn = p.turn.Opposite()
	return next
}

func (p Position) LegalMoves() []int {
	if p.IsWin() {
		return nil
	}
	moves := make([]int, 0, NumColumns)
	for c := 0; c < NumColumns; c++ {
		if p.heights[c] < NumRows {
			moves = append(moves, c)
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

// Winner returns the colour owning a full segment, or Empty.
func (p Position) Winner() Piece {
	for _, segment := range segments {
		blacks, reds := p.countSegment(segment)
		if blacks == SegmentLength {
			return Black
		}
		if reds == SegmentLength {
			return Red
		}
	}
	return Empty
}

func (p Position) countSegment(segment [SegmentLength]slot) (blacks, reds int) {
	for _, s := range segment {
		switch p.columns[s.column][s.row] {
		case Black:
			blacks++
		case Red:
			reds++
		}
	}
	return blacks, reds
}

// Evaluate sums segment scores for player: a segment holding only one colour is worth 1 with
// two pieces and 100 with three, positive for player's colour and negative otherwise. A won
// position scores ±(WinScore + empty slots).
func (p Position) Evaluate(player Piece) float64 {
	if winner := p.Winner(); winner != Empty {
		score := WinScore + float64(p.empty())
		if winner != player {
			return -score
		}
		return score
	}

	total := 0.0
	for _, segment := range segments {
		total += p.evaluateSegment(segment, player)
	}
	return total
}

func (p Position) evaluateSegment(segment [SegmentLength]slot, player Piece) float64 {
	blacks, reds := p.countSegment(segment)
	if blacks > 0 && reds > 0 { // Mixed segments are neutral
		return 0
	}

	var score float64
	switch max(blacks, reds) {
	case 2:
		score = 1
	case 3:
		score = 100
	default:
		return 0
	}

	owner := Black
	if reds > blacks {
		owner = Red
	}
	if owner != player {
		return -score
	}
	return score
}

func (p Position) empty() int {
	n := 0
	for _, h := range p.heights {
		n += NumRows - h
	}
	return n
}

// Encode returns the form read by Parse: rows from top to bottom separated by '/', using B, R
// and '.', then a space and the player to move.
func (p Position) Encode() string {
	var sb strings.Builder
	for r := NumRows - 1; r >= 0; r-- {
		for c := 0; c < NumColumns; c++ {
			if piece := p.columns[c][r]; piece == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteString(piece.String())
			}
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(p.turn.String())
	return sb.String()
}

func (p Position) String() string {
	var sb strings.Builder
	for r := NumRows - 1; r >= 0; r-- {
		sb.WriteByte('|')
		for c := 0; c < NumColumns; c++ {
			sb.WriteString(p.columns[c][r].String())
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(" 0 1 2 3 4 5 6")
	return sb.String()
}

// Parse reads the form written by Encode. The player to move may be omitted, in which case it
// is inferred from the piece counts with Black moving first.
func Parse(s string) (Position, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return Position{}, fmt.Errorf("%w: want \"<rows> [turn]\", got %q", game.ErrParse, s)
	}
	rows := strings.Split(fields[0], "/")
	if len(rows) != NumRows {
		return Position{}, fmt.Errorf("%w: want %d rows, got %d", game.ErrParse, NumRows, len(rows))
	}

	var p Position
	blacks, reds := 0, 0
	for i, row := range rows {
		if len(row) != NumColumns {
			return Position{}, fmt.Errorf("%w: row %d has %d columns", game.ErrParse, i, len(row))
		}
		r := NumRows - 1 - i
		for c, ch := range row {
			switch ch {
			case 'B', 'b':
				p.columns[c][r] = Black
				blacks++
			case 'R', 'r':
				p.columns[c][r] = Red
				reds++
			case '.':
			default:
				return Position{}, fmt.Errorf("%w: unexpected slot %q", game.ErrParse, ch)
			}
		}
	}

	// Pieces must rest on the bottom or on another piece
	for c := 0; c < NumColumns; c++ {
		h := 0
		for h < NumRows && p.columns[c][h] != Empty {
			h++
		}
		for r := h; r < NumRows; r++ {
			if p.columns[c][r] != Empty {
				return Position{}, fmt.Errorf("%w: floating piece in column %d", game.ErrParse, c)
			}
		}
		p.heights[c] = h
	}

	p.turn = Black
	if blacks > reds {
		p.turn = Red
	}
	if len(fields) == 2 {
		piece, err := ParsePiece(fields[1])
		if err != nil {
			return Position{}, err
		}
		p.turn = piece
	}
	return p, nil
}

func ParsePiece(s string) (Piece, error) {
	switch strings.ToUpper(s) {
	case "B":
		return Black, nil
	case "R":
		return Red, nil
	default:
		return Empty, fmt.Errorf("%w: unknown piece %q", game.ErrParse, s)
	}
}

// ParseMove reads a column index typed by a human player.
func ParseMove(s string) (int, error) {
	var column int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &column); err != nil {
		return 0, fmt.Errorf("%w: column %q", game.ErrParse, s)
	}
	return column, nil
}
