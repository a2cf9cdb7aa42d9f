package searcher

import (
	"gametree/game"
	"math"
)

// Minimax returns the value of pos for player, exploring every line to depth plies without
// pruning. It is the reference the pruned search must agree with.
func Minimax[M, P comparable](pos game.Position[M, P], maximizing bool, player P, depth int) float64 {
	return minimax(pos, maximizing, player, depth, dummy)
}

func minimax[M, P comparable](pos game.Position[M, P], maximizing bool, player P, depth int, metrics Collector) float64 {
	metrics.AddNode()

	// Terminal position or maximum depth reached
	if depth <= 0 || pos.IsWin() {
		metrics.AddEvaluation()
		return pos.Evaluate(player)
	}
	moves := pos.LegalMoves()
	if len(moves) == 0 { // Draw
		metrics.AddEvaluation()
		return pos.Evaluate(player)
	}

	if maximizing {
		best := math.Inf(-1)
		for _, move := range moves {
			best = math.Max(best, minimax(pos.Play(move), false, player, depth-1, metrics))
		}
		return best
	}

	worst := math.Inf(1)
	for _, move := range moves {
		worst = math.Min(worst, minimax(pos.Play(move), true, player, depth-1, metrics))
	}
	return worst
}
