package game

import "errors"

// Position is an immutable game state that a searcher can explore. Operations on a Position
// never mutate it - Play always returns a new copy.
//
// M identifies a move (e.g. a cell or column index) and P identifies a player.
type Position[M comparable, P comparable] interface {
	// Turn returns the player to move next.
	Turn() P
	// Play returns the position after move is applied and the turn advanced. Play panics if
	// move is not one of LegalMoves().
	Play(move M) Position[M, P]
	// LegalMoves returns the moves playable from this position. The order is observable: the
	// searcher breaks ties in favour of earlier moves.
	LegalMoves() []M
	// IsWin reports whether the position is terminal and decided in favour of the player who
	// moved last.
	IsWin() bool
	// Evaluate scores the position from player's perspective: a decisive win for player scores
	// above any heuristic advantage, which scores above neutral, and so on down to a decisive loss.
	Evaluate(player P) float64
}

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrParse       = errors.New("cannot parse position")
)

// IsDraw reports whether pos is terminal without a winner.
func IsDraw[M, P comparable](pos Position[M, P]) bool {
	return !pos.IsWin() && len(pos.LegalMoves()) == 0
}

// IsOver reports whether pos is terminal, either decided or drawn.
func IsOver[M, P comparable](pos Position[M, P]) bool {
	return pos.IsWin() || len(pos.LegalMoves()) == 0
}

